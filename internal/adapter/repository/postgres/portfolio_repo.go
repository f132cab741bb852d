package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

const (
	sqlGetPortfolioByAccount = `
		select id, account_id, tier1_value, tier2_value, tier3_value, total_value,
			created_at, updated_at
		from user_portfolios
		where account_id = $1
	`

	sqlGetPortfolioForUpdate = `
		select id, account_id, tier1_value, tier2_value, tier3_value, total_value,
			created_at, updated_at
		from user_portfolios
		where id = $1
		for update
	`

	sqlGetTransactionByQueueEntry = `
		select id, portfolio_id, queue_entry_id, transaction_type,
			tier1_change, tier2_change, tier3_change, total_amount,
			status, created_at, updated_at
		from portfolio_transactions
		where queue_entry_id = $1
		for update
	`

	sqlInsertTransaction = `
		insert into portfolio_transactions (
			id, portfolio_id, queue_entry_id, transaction_type,
			tier1_change, tier2_change, tier3_change, total_amount,
			status, created_at, updated_at
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	sqlUpdateTransactionStatus = `
		update portfolio_transactions
		set status = $1, updated_at = $2
		where id = $3
	`

	sqlUpdatePortfolioValues = `
		update user_portfolios
		set tier1_value = $1, tier2_value = $2, tier3_value = $3,
			total_value = $4, updated_at = $5
		where id = $6
	`

	sqlTransactionStats = `
		select
			count(*),
			count(*) filter (where transaction_type = 'DEPOSIT'),
			count(*) filter (where transaction_type = 'WITHDRAWAL'),
			count(*) filter (where status = 'PENDING'),
			count(*) filter (where status = 'COMPLETED'),
			count(*) filter (where status = 'FAILED')
		from portfolio_transactions
	`
)

// PortfolioRepository implements usecase.PortfolioRepository.
type PortfolioRepository struct {
	pool queryPool
}

// NewPortfolioRepository creates a new PortfolioRepository.
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return newPortfolioRepositoryWithPool(pool)
}

func newPortfolioRepositoryWithPool(pool queryPool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// GetPortfolioByAccount retrieves a portfolio by account ID.
func (r *PortfolioRepository) GetPortfolioByAccount(ctx context.Context, accountID string) (*domain.UserPortfolio, error) {
	portfolio, err := scanPortfolio(r.pool.QueryRow(ctx, sqlGetPortfolioByAccount, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPortfolioNotFound
		}

		return nil, err
	}

	return portfolio, nil
}

// GetPortfolioForUpdate retrieves a portfolio by ID with a FOR UPDATE lock.
func (r *PortfolioRepository) GetPortfolioForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.UserPortfolio, error) {
	pgxTx := tx.(*Tx).PgxTx()

	portfolio, err := scanPortfolio(pgxTx.QueryRow(ctx, sqlGetPortfolioForUpdate, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPortfolioNotFound
		}

		return nil, err
	}

	return portfolio, nil
}

// GetTransactionByQueueEntry retrieves the transaction projected from the
// given queue entry, locking it for the rest of the reconcile transaction.
func (r *PortfolioRepository) GetTransactionByQueueEntry(ctx context.Context, tx usecase.Transaction, queueEntryID string) (*domain.PortfolioTransaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var (
		txn                  domain.PortfolioTransaction
		t1, t2, t3, total    pgtype.Numeric
		txnType, status      string
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := pgxTx.QueryRow(ctx, sqlGetTransactionByQueueEntry, queueEntryID).Scan(
		&txn.ID, &txn.PortfolioID, &txn.QueueEntryID, &txnType,
		&t1, &t2, &t3, &total,
		&status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Tier1Change = numericToDecimal(t1)
	txn.Tier2Change = numericToDecimal(t2)
	txn.Tier3Change = numericToDecimal(t3)
	txn.TotalAmount = numericToDecimal(total)
	txn.Status = domain.TransactionStatus(status)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	return &txn, nil
}

// CreateTransaction inserts a new portfolio transaction.
func (r *PortfolioRepository) CreateTransaction(ctx context.Context, tx usecase.Transaction, txn *domain.PortfolioTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, sqlInsertTransaction,
		txn.ID,
		txn.PortfolioID,
		txn.QueueEntryID,
		string(txn.Type),
		decimalToNumeric(txn.Tier1Change),
		decimalToNumeric(txn.Tier2Change),
		decimalToNumeric(txn.Tier3Change),
		decimalToNumeric(txn.TotalAmount),
		string(txn.Status),
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return err
}

// UpdateTransactionStatus updates the status of a portfolio transaction.
func (r *PortfolioRepository) UpdateTransactionStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, sqlUpdateTransactionStatus, string(status), timeToPgTimestamptz(updatedAt), id)

	return err
}

// UpdatePortfolioValues writes the recomputed tier values of a portfolio.
func (r *PortfolioRepository) UpdatePortfolioValues(ctx context.Context, tx usecase.Transaction, portfolio *domain.UserPortfolio) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, sqlUpdatePortfolioValues,
		decimalToNumeric(portfolio.Tier1Value),
		decimalToNumeric(portfolio.Tier2Value),
		decimalToNumeric(portfolio.Tier3Value),
		decimalToNumeric(portfolio.TotalValue),
		timeToPgTimestamptz(time.Now().UTC()),
		portfolio.ID,
	)

	return err
}

// TransactionStats returns per-type and per-status counts.
func (r *PortfolioRepository) TransactionStats(ctx context.Context) (*domain.TransactionStats, error) {
	stats := &domain.TransactionStats{}

	err := r.pool.QueryRow(ctx, sqlTransactionStats).Scan(
		&stats.Total,
		&stats.Deposits,
		&stats.Withdrawals,
		&stats.Pending,
		&stats.Completed,
		&stats.Failed,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func scanPortfolio(row pgx.Row) (*domain.UserPortfolio, error) {
	var (
		p                    domain.UserPortfolio
		t1, t2, t3, total    pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&p.ID, &p.AccountID, &t1, &t2, &t3, &total, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Tier1Value = numericToDecimal(t1)
	p.Tier2Value = numericToDecimal(t2)
	p.Tier3Value = numericToDecimal(t3)
	p.TotalValue = numericToDecimal(total)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
