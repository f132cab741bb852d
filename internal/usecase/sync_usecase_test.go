package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
	"github.com/bankofanthos/investpipe/internal/usecase/mocks"
)

func newSyncFixture() (*mocks.MockQueueRepository, *mocks.MockPortfolioRepository, *mocks.MockMarketSource, *usecase.SyncUseCase) {
	queueRepo := mocks.NewMockQueueRepository()
	portfolioRepo := mocks.NewMockPortfolioRepository()
	market := &mocks.MockMarketSource{}

	uc := usecase.NewSyncUseCase(
		queueRepo,
		portfolioRepo,
		mocks.NewMockTransactionManager(),
		market,
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
		nil,
	)

	return queueRepo, portfolioRepo, market, uc
}

func terminalEntry(id, account string, tier1 int64, purpose domain.Purpose, status domain.QueueStatus, updatedAt time.Time) *domain.QueueEntry {
	return &domain.QueueEntry{
		ID:          id,
		AccountID:   account,
		Tier1Amount: decimal.NewFromInt(tier1),
		Purpose:     purpose,
		Status:      status,
		CreatedAt:   updatedAt.Add(-time.Minute),
		UpdatedAt:   updatedAt,
	}
}

func TestSyncUseCase_CreatesTransactionAndUpdatesPortfolio(t *testing.T) {
	queueRepo, portfolioRepo, market, uc := newSyncFixture()

	now := time.Now().UTC()
	queueRepo.Create(context.Background(), terminalEntry("e1", "acct-1", 100, domain.PurposeInvest, domain.QueueStatusDone, now))

	portfolioRepo.AddPortfolio(&domain.UserPortfolio{
		ID:         "pf-1",
		AccountID:  "acct-1",
		Tier1Value: decimal.NewFromInt(1000),
		TotalValue: decimal.NewFromInt(1000),
	})

	// +10% market move on tier1.
	market.DeltaFunc = func() domain.MarketDelta {
		return domain.MarketDelta{Tier1: decimal.NewFromFloat(0.1)}
	}

	stats, err := uc.SyncCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 1 || stats.Created != 1 || stats.PortfoliosUpdated != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	txn := portfolioRepo.TransactionByQueueEntry("e1")
	if txn == nil {
		t.Fatal("expected projected transaction")
	}
	if txn.Status != domain.TransactionStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", txn.Status)
	}
	if txn.Type != domain.TransactionTypeDeposit {
		t.Errorf("expected DEPOSIT, got %s", txn.Type)
	}

	portfolio, _ := portfolioRepo.GetPortfolioByAccount(context.Background(), "acct-1")
	if !portfolio.Tier1Value.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected tier1 1100, got %s", portfolio.Tier1Value)
	}

	if !uc.Watermark().Equal(now) {
		t.Errorf("expected watermark %s, got %s", now, uc.Watermark())
	}
}

func TestSyncUseCase_RescanDoesNotReapplyValues(t *testing.T) {
	queueRepo, portfolioRepo, market, uc := newSyncFixture()

	now := time.Now().UTC()
	queueRepo.Create(context.Background(), terminalEntry("e1", "acct-1", 100, domain.PurposeInvest, domain.QueueStatusDone, now))

	portfolioRepo.AddPortfolio(&domain.UserPortfolio{
		ID:         "pf-1",
		AccountID:  "acct-1",
		Tier1Value: decimal.NewFromInt(1000),
		TotalValue: decimal.NewFromInt(1000),
	})

	market.DeltaFunc = func() domain.MarketDelta {
		return domain.MarketDelta{Tier1: decimal.NewFromFloat(0.1)}
	}

	if _, err := uc.SyncCycle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same terminal entry surfaces again: the transaction status is refreshed
	// but the portfolio must not be scaled a second time.
	queueRepo.ListUpdatedSinceFunc = func(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error) {
		e, _ := queueRepo.GetByID(ctx, "e1")
		return []*domain.QueueEntry{e}, nil
	}

	stats, err := uc.SyncCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Updated != 1 || stats.Created != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.PortfoliosUpdated != 0 {
		t.Fatal("portfolio must only be scaled on the transition into COMPLETED")
	}

	portfolio, _ := portfolioRepo.GetPortfolioByAccount(context.Background(), "acct-1")
	if !portfolio.Tier1Value.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected tier1 to stay 1100, got %s", portfolio.Tier1Value)
	}
}

func TestSyncUseCase_FailedEntryNoValueChange(t *testing.T) {
	queueRepo, portfolioRepo, market, uc := newSyncFixture()

	now := time.Now().UTC()
	queueRepo.Create(context.Background(), terminalEntry("e1", "acct-1", 100, domain.PurposeWithdraw, domain.QueueStatusFailed, now))

	portfolioRepo.AddPortfolio(&domain.UserPortfolio{
		ID:         "pf-1",
		AccountID:  "acct-1",
		Tier1Value: decimal.NewFromInt(1000),
		TotalValue: decimal.NewFromInt(1000),
	})

	market.DeltaFunc = func() domain.MarketDelta {
		return domain.MarketDelta{Tier1: decimal.NewFromFloat(0.1)}
	}

	stats, err := uc.SyncCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Created != 1 || stats.PortfoliosUpdated != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	txn := portfolioRepo.TransactionByQueueEntry("e1")
	if txn.Status != domain.TransactionStatusFailed {
		t.Errorf("expected FAILED, got %s", txn.Status)
	}

	portfolio, _ := portfolioRepo.GetPortfolioByAccount(context.Background(), "acct-1")
	if !portfolio.Tier1Value.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected untouched tier1 1000, got %s", portfolio.Tier1Value)
	}
}

func TestSyncUseCase_MissingPortfolioSkipsEntry(t *testing.T) {
	queueRepo, _, _, uc := newSyncFixture()

	now := time.Now().UTC()
	queueRepo.Create(context.Background(), terminalEntry("e1", "ghost", 100, domain.PurposeInvest, domain.QueueStatusDone, now))

	stats, err := uc.SyncCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Skipped != 1 || stats.Errors != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// A deliberate skip still advances the watermark.
	if !uc.Watermark().Equal(now) {
		t.Errorf("expected watermark %s, got %s", now, uc.Watermark())
	}
}

func TestSyncUseCase_FailingEntryHoldsWatermark(t *testing.T) {
	queueRepo, portfolioRepo, _, uc := newSyncFixture()

	t1 := time.Now().UTC()
	t2 := t1.Add(time.Second)
	first := terminalEntry("e1", "acct-1", 100, domain.PurposeInvest, domain.QueueStatusDone, t1)
	second := terminalEntry("e2", "acct-1", 50, domain.PurposeInvest, domain.QueueStatusDone, t2)

	queueRepo.ListUpdatedSinceFunc = func(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error) {
		return []*domain.QueueEntry{first, second}, nil
	}

	portfolioRepo.AddPortfolio(&domain.UserPortfolio{
		ID:        "pf-1",
		AccountID: "acct-1",
	})
	portfolioRepo.CreateTransactionFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.PortfolioTransaction) error {
		if txn.QueueEntryID == "e1" {
			return errors.New("store unavailable")
		}
		return nil
	}

	stats, err := uc.SyncCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Errors != 1 {
		t.Fatalf("expected 1 error, got %+v", stats)
	}

	// e2 reconciled but the watermark stays behind e1 so it is re-scanned.
	if !uc.Watermark().IsZero() {
		t.Fatalf("expected zero watermark, got %s", uc.Watermark())
	}
}
