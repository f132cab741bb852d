package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a portfolio transaction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus is the lifecycle state of a portfolio transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// MapQueueStatus maps a queue entry status to the portfolio transaction status
// recorded during reconciliation.
func MapQueueStatus(s QueueStatus) TransactionStatus {
	switch s {
	case QueueStatusProcessing:
		return TransactionStatusPending
	case QueueStatusDone:
		return TransactionStatusCompleted
	case QueueStatusFailed:
		return TransactionStatusFailed
	default:
		return TransactionStatusPending
	}
}

// PortfolioTransaction is the projection of a queue entry into the portfolio
// store. QueueEntryID is the propagated idempotency key: reconciliation upserts
// by it, so a queue entry never produces two transactions.
type PortfolioTransaction struct {
	ID           string
	PortfolioID  string
	QueueEntryID string
	Type         TransactionType
	Tier1Change  decimal.Decimal
	Tier2Change  decimal.Decimal
	Tier3Change  decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       TransactionStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransactionFromEntry builds the portfolio transaction projected from a queue
// entry. Withdrawal amounts are recorded with a negative sign.
func TransactionFromEntry(e *QueueEntry, portfolioID, transactionID string) *PortfolioTransaction {
	txn := &PortfolioTransaction{
		ID:           transactionID,
		PortfolioID:  portfolioID,
		QueueEntryID: e.ID,
		Tier1Change:  e.Tier1Amount,
		Tier2Change:  e.Tier2Amount,
		Tier3Change:  e.Tier3Amount,
		TotalAmount:  e.TotalAmount(),
		Status:       MapQueueStatus(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	switch e.Purpose {
	case PurposeWithdraw:
		txn.Type = TransactionTypeWithdrawal
		txn.Tier1Change = txn.Tier1Change.Neg()
		txn.Tier2Change = txn.Tier2Change.Neg()
		txn.Tier3Change = txn.Tier3Change.Neg()
		txn.TotalAmount = txn.TotalAmount.Neg()
	default:
		txn.Type = TransactionTypeDeposit
	}

	return txn
}

// TransactionStats holds per-type and per-status counts over the portfolio
// transaction store.
type TransactionStats struct {
	Total       int64
	Deposits    int64
	Withdrawals int64
	Pending     int64
	Completed   int64
	Failed      int64
}

// UserPortfolio holds the current per-tier values for one account.
// Invariant: Tier1Value + Tier2Value + Tier3Value == TotalValue.
type UserPortfolio struct {
	ID         string
	AccountID  string
	Tier1Value decimal.Decimal
	Tier2Value decimal.Decimal
	Tier3Value decimal.Decimal
	TotalValue decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ApplyMarketDelta scales the portfolio's tier values by the market delta,
// positive-side for deposits and negative-side for withdrawals, and recomputes
// the total.
func (p *UserPortfolio) ApplyMarketDelta(delta MarketDelta, txnType TransactionType) {
	one := decimal.NewFromInt(1)

	t1 := one.Add(delta.Tier1)
	t2 := one.Add(delta.Tier2)
	t3 := one.Add(delta.Tier3)
	if txnType == TransactionTypeWithdrawal {
		t1 = one.Sub(delta.Tier1)
		t2 = one.Sub(delta.Tier2)
		t3 = one.Sub(delta.Tier3)
	}

	p.Tier1Value = p.Tier1Value.Mul(t1)
	p.Tier2Value = p.Tier2Value.Mul(t2)
	p.Tier3Value = p.Tier3Value.Mul(t3)
	p.TotalValue = p.Tier1Value.Add(p.Tier2Value).Add(p.Tier3Value)
}
