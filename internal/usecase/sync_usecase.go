package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
)

// SyncUseCase projects terminal queue entries into the portfolio store and
// keeps portfolio tier values consistent with completed requests. Cycles are
// driven by a process-local watermark over the queue store's updated_at.
type SyncUseCase struct {
	queueRepo     QueueRepository
	portfolioRepo PortfolioRepository
	txManager     TransactionManager
	market        MarketSource
	idGen         IDGenerator
	logger        zerolog.Logger
	metrics       *metrics.Metrics

	mu        sync.Mutex
	watermark time.Time
}

// NewSyncUseCase creates a new SyncUseCase. metrics may be nil.
func NewSyncUseCase(
	queueRepo QueueRepository,
	portfolioRepo PortfolioRepository,
	txManager TransactionManager,
	market MarketSource,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *SyncUseCase {
	return &SyncUseCase{
		queueRepo:     queueRepo,
		portfolioRepo: portfolioRepo,
		txManager:     txManager,
		market:        market,
		idGen:         idGen,
		logger:        logger,
		metrics:       m,
	}
}

// SyncStats summarizes one reconciliation cycle.
type SyncStats struct {
	Processed         int `json:"processed"`
	Created           int `json:"created"`
	Updated           int `json:"updated"`
	PortfoliosUpdated int `json:"portfolios_updated"`
	Skipped           int `json:"skipped"`
	Errors            int `json:"errors"`
}

// SyncCycle runs one reconciliation pass. Entry failures are isolated: each is
// logged, counted and skipped without aborting the cycle. The watermark only
// advances past entries that reconciled (or were deliberately skipped), so a
// failing entry is re-scanned on every cycle until it succeeds.
func (uc *SyncUseCase) SyncCycle(ctx context.Context) (*SyncStats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := &SyncStats{}

	entries, err := uc.queueRepo.ListUpdatedSince(ctx, uc.watermark)
	if err != nil {
		return stats, err
	}

	if len(entries) == 0 {
		return stats, nil
	}

	delta := uc.market.Delta()

	advance := true
	for _, entry := range entries {
		stats.Processed++

		if err := uc.reconcileEntry(ctx, entry, delta, stats); err != nil {
			stats.Errors++
			advance = false

			uc.logger.Error().
				Err(err).
				Str("entry_id", entry.ID).
				Str("account_id", entry.AccountID).
				Msg("failed to reconcile queue entry")

			continue
		}

		if advance {
			uc.watermark = entry.UpdatedAt
		}
	}

	if uc.metrics != nil {
		uc.metrics.SyncEntriesHandled.WithLabelValues("created").Add(float64(stats.Created))
		uc.metrics.SyncEntriesHandled.WithLabelValues("updated").Add(float64(stats.Updated))
		uc.metrics.SyncEntriesHandled.WithLabelValues("skipped").Add(float64(stats.Skipped))
		uc.metrics.SyncEntriesHandled.WithLabelValues("error").Add(float64(stats.Errors))
		uc.metrics.PortfoliosUpdated.Add(float64(stats.PortfoliosUpdated))
		if !uc.watermark.IsZero() {
			uc.metrics.SyncWatermarkAgeSec.Set(time.Since(uc.watermark).Seconds())
		}
	}

	return stats, nil
}

// Watermark returns the updated_at of the last reconciled entry.
func (uc *SyncUseCase) Watermark() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.watermark
}

// reconcileEntry upserts the portfolio transaction for one queue entry and,
// on a transition to COMPLETED, rescales the owning portfolio's tier values.
// Everything runs in one portfolio-store transaction.
func (uc *SyncUseCase) reconcileEntry(ctx context.Context, entry *domain.QueueEntry, delta domain.MarketDelta, stats *SyncStats) error {
	portfolio, err := uc.portfolioRepo.GetPortfolioByAccount(ctx, entry.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			// No auto-creation: the entry stays unsynced until the portfolio
			// exists out-of-band.
			stats.Skipped++
			uc.logger.Warn().
				Str("entry_id", entry.ID).
				Str("account_id", entry.AccountID).
				Msg("no portfolio for account, skipping entry")

			return nil
		}

		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	mapped := domain.MapQueueStatus(entry.Status)
	now := time.Now().UTC()

	var (
		txnType      domain.TransactionType
		wasCompleted bool
	)

	existing, err := uc.portfolioRepo.GetTransactionByQueueEntry(ctx, tx, entry.ID)
	switch {
	case err == nil:
		txnType = existing.Type
		wasCompleted = existing.Status == domain.TransactionStatusCompleted

		if err := uc.portfolioRepo.UpdateTransactionStatus(ctx, tx, existing.ID, mapped, now); err != nil {
			return err
		}
		stats.Updated++

	case errors.Is(err, domain.ErrTransactionNotFound):
		txn := domain.TransactionFromEntry(entry, portfolio.ID, uc.idGen.Generate())
		txnType = txn.Type

		if err := uc.portfolioRepo.CreateTransaction(ctx, tx, txn); err != nil {
			return err
		}
		stats.Created++

	default:
		return err
	}

	// Portfolio values move exactly once per queue entry: only on the
	// transition into COMPLETED, which keeps re-scans idempotent.
	if mapped == domain.TransactionStatusCompleted && !wasCompleted {
		locked, err := uc.portfolioRepo.GetPortfolioForUpdate(ctx, tx, portfolio.ID)
		if err != nil {
			return err
		}

		locked.ApplyMarketDelta(delta, txnType)

		if err := uc.portfolioRepo.UpdatePortfolioValues(ctx, tx, locked); err != nil {
			return err
		}
		stats.PortfoliosUpdated++
	}

	return tx.Commit(ctx)
}
