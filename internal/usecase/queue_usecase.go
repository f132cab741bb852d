package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
)

// QueueUseCase handles queue entry ingestion and lookup.
type QueueUseCase struct {
	queueRepo QueueRepository
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewQueueUseCase creates a new QueueUseCase. metrics may be nil.
func NewQueueUseCase(queueRepo QueueRepository, idGen IDGenerator, m *metrics.Metrics) *QueueUseCase {
	return &QueueUseCase{
		queueRepo: queueRepo,
		idGen:     idGen,
		metrics:   m,
	}
}

// EnqueueInput represents input for enqueueing a request.
type EnqueueInput struct {
	AccountID   string
	Tier1Amount decimal.Decimal
	Tier2Amount decimal.Decimal
	Tier3Amount decimal.Decimal
	Purpose     string
}

// Enqueue validates and inserts a new queue entry in PENDING state.
func (uc *QueueUseCase) Enqueue(ctx context.Context, input EnqueueInput) (*domain.QueueEntry, error) {
	purpose, err := domain.ParsePurpose(input.Purpose)
	if err != nil {
		uc.countRejected()
		return nil, err
	}

	now := time.Now().UTC()
	entry := &domain.QueueEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Tier1Amount: input.Tier1Amount,
		Tier2Amount: input.Tier2Amount,
		Tier3Amount: input.Tier3Amount,
		Purpose:     purpose,
		Status:      domain.QueueStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := entry.Validate(); err != nil {
		uc.countRejected()
		return nil, err
	}

	if err := uc.queueRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesEnqueued.WithLabelValues(string(purpose)).Inc()
	}

	return entry, nil
}

// GetEntry retrieves a queue entry by ID.
func (uc *QueueUseCase) GetEntry(ctx context.Context, id string) (*domain.QueueEntry, error) {
	return uc.queueRepo.GetByID(ctx, id)
}

// Stats returns per-status counts for the queue store.
func (uc *QueueUseCase) Stats(ctx context.Context) (*domain.QueueStats, error) {
	stats, err := uc.queueRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.QueueDepth.Set(float64(stats.Pending))
	}

	return stats, nil
}

func (uc *QueueUseCase) countRejected() {
	if uc.metrics != nil {
		uc.metrics.EnqueueErrors.Inc()
	}
}
