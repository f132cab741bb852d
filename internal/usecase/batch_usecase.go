package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
)

// DefaultBatchSize is the number of entries netted into one valuation call.
const DefaultBatchSize = 10

// positiveTokens is the set of valuation status tokens treated as success.
var positiveTokens = map[string]bool{
	"SUCCESS":   true,
	"DONE":      true,
	"COMPLETED": true,
}

// BatchUseCase claims full batches of pending entries, nets their tier deltas
// and applies the external valuation verdict to every entry in the batch.
type BatchUseCase struct {
	txManager TransactionManager
	queueRepo QueueRepository
	valuation ValuationClient
	batchSize int
	metrics   *metrics.Metrics
}

// NewBatchUseCase creates a new BatchUseCase. metrics may be nil.
func NewBatchUseCase(
	txManager TransactionManager,
	queueRepo QueueRepository,
	valuation ValuationClient,
	batchSize int,
	m *metrics.Metrics,
) *BatchUseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &BatchUseCase{
		txManager: txManager,
		queueRepo: queueRepo,
		valuation: valuation,
		batchSize: batchSize,
		metrics:   m,
	}
}

// BatchResult describes one processed batch.
type BatchResult struct {
	EntryIDs  []string
	Delta     domain.AggregateDelta
	Token     string
	Succeeded bool
}

// ProcessBatch claims one full batch and drives it to a terminal state.
// Returns domain.ErrBatchUnavailable when fewer than batchSize entries are
// pending; the caller retries on its next poll.
func (uc *BatchUseCase) ProcessBatch(ctx context.Context) (*BatchResult, error) {
	start := time.Now()

	batch, err := uc.claimBatch(ctx)
	if err != nil {
		return nil, err
	}

	delta := batch.Aggregate()
	ids := batch.EntryIDs()

	valuationStart := time.Now()
	token, err := uc.valuation.Evaluate(ctx, delta)
	succeeded := err == nil && positiveTokens[token]

	if uc.metrics != nil {
		uc.metrics.ValuationDuration.Observe(time.Since(valuationStart).Seconds())
		outcome := "rejected"
		if err != nil {
			outcome = "error"
		} else if succeeded {
			outcome = "accepted"
		}
		uc.metrics.ValuationCalls.WithLabelValues(outcome).Inc()
	}

	status := domain.QueueStatusFailed
	if succeeded {
		status = domain.QueueStatusDone
	}

	// One statement for the whole batch: every entry gets the same verdict.
	if err := uc.queueRepo.MarkStatus(ctx, ids, status, time.Now().UTC()); err != nil {
		// Entries stay PROCESSING and are picked up by the reconciliation
		// sweeper; they are never re-claimed here.
		return nil, fmt.Errorf("failed to write batch verdict: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.BatchesProcessed.WithLabelValues(string(status)).Inc()
		uc.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}

	return &BatchResult{
		EntryIDs:  ids,
		Delta:     delta,
		Token:     token,
		Succeeded: succeeded,
	}, nil
}

// claimBatch atomically moves exactly batchSize PENDING entries to PROCESSING.
// Row locks with skip-locked semantics guarantee no entry is claimed twice by
// concurrent aggregators.
func (uc *BatchUseCase) claimBatch(ctx context.Context) (*domain.Batch, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entries, err := uc.queueRepo.SelectPendingForUpdate(ctx, tx, uc.batchSize)
	if err != nil {
		return nil, err
	}

	if len(entries) < uc.batchSize {
		// No partial batches; releasing the locks is the whole rollback.
		return nil, domain.ErrBatchUnavailable
	}

	batch := &domain.Batch{Entries: entries}

	now := time.Now().UTC()
	if err := uc.queueRepo.MarkStatusTx(ctx, tx, batch.EntryIDs(), domain.QueueStatusProcessing, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for _, e := range entries {
		e.Status = domain.QueueStatusProcessing
		e.UpdatedAt = now
	}

	return batch, nil
}
