package usecase

import (
	"context"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
)

// QueueRepository defines data access for the queue store.
type QueueRepository interface {
	Create(ctx context.Context, entry *domain.QueueEntry) error
	GetByID(ctx context.Context, id string) (*domain.QueueEntry, error)
	// SelectPendingForUpdate locks up to limit PENDING entries, oldest first.
	// Locked rows held by concurrent claimers are skipped, never shared.
	SelectPendingForUpdate(ctx context.Context, tx Transaction, limit int) ([]*domain.QueueEntry, error)
	MarkStatusTx(ctx context.Context, tx Transaction, ids []string, status domain.QueueStatus, updatedAt time.Time) error
	// MarkStatus applies one verdict to all ids in a single statement.
	MarkStatus(ctx context.Context, ids []string, status domain.QueueStatus, updatedAt time.Time) error
	// ListUpdatedSince returns non-PENDING entries whose updated_at is strictly
	// after the watermark, ordered by updated_at ascending.
	ListUpdatedSince(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error)
	Stats(ctx context.Context) (*domain.QueueStats, error)
}

// PortfolioRepository defines data access for the portfolio store.
type PortfolioRepository interface {
	GetPortfolioByAccount(ctx context.Context, accountID string) (*domain.UserPortfolio, error)
	GetPortfolioForUpdate(ctx context.Context, tx Transaction, id string) (*domain.UserPortfolio, error)
	GetTransactionByQueueEntry(ctx context.Context, tx Transaction, queueEntryID string) (*domain.PortfolioTransaction, error)
	CreateTransaction(ctx context.Context, tx Transaction, txn *domain.PortfolioTransaction) error
	UpdateTransactionStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	UpdatePortfolioValues(ctx context.Context, tx Transaction, portfolio *domain.UserPortfolio) error
	TransactionStats(ctx context.Context) (*domain.TransactionStats, error)
}

// ValuationClient sends an aggregate delta to the external decision service
// and returns the raw status token from its response.
type ValuationClient interface {
	Evaluate(ctx context.Context, delta domain.AggregateDelta) (string, error)
}

// MarketSource supplies the current market delta used to scale portfolio
// values during reconciliation.
type MarketSource interface {
	Delta() domain.MarketDelta
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines a simple key-value cache with TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
