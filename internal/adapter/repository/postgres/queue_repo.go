package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// queryPool is the slice of pgxpool.Pool the repositories use.
type queryPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	sqlInsertQueueEntry = `
		insert into queue_entries (
			id, account_id, tier1_amount, tier2_amount, tier3_amount,
			purpose, status, created_at, updated_at
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	sqlGetQueueEntry = `
		select id, account_id, tier1_amount, tier2_amount, tier3_amount,
			purpose, status, created_at, updated_at
		from queue_entries
		where id = $1
	`

	// Oldest-first claim with skip-locked semantics: rows already locked by a
	// concurrent claimer are skipped, never shared between batches.
	sqlSelectPendingForUpdate = `
		select id, account_id, tier1_amount, tier2_amount, tier3_amount,
			purpose, status, created_at, updated_at
		from queue_entries
		where status = 'PENDING'
		order by created_at asc
		limit $1
		for update skip locked
	`

	sqlMarkQueueStatus = `
		update queue_entries
		set status = $1, updated_at = $2
		where id = any($3)
	`

	sqlListUpdatedSince = `
		select id, account_id, tier1_amount, tier2_amount, tier3_amount,
			purpose, status, created_at, updated_at
		from queue_entries
		where status <> 'PENDING' and updated_at > $1
		order by updated_at asc
	`

	sqlQueueStats = `
		select
			count(*),
			count(*) filter (where status = 'PENDING'),
			count(*) filter (where status = 'PROCESSING'),
			count(*) filter (where status = 'DONE'),
			count(*) filter (where status = 'FAILED')
		from queue_entries
	`
)

// QueueRepository implements usecase.QueueRepository.
type QueueRepository struct {
	pool queryPool
}

// NewQueueRepository creates a new QueueRepository.
func NewQueueRepository(pool *pgxpool.Pool) *QueueRepository {
	return newQueueRepositoryWithPool(pool)
}

func newQueueRepositoryWithPool(pool queryPool) *QueueRepository {
	return &QueueRepository{pool: pool}
}

// Create inserts a new queue entry.
func (r *QueueRepository) Create(ctx context.Context, entry *domain.QueueEntry) error {
	_, err := r.pool.Exec(ctx, sqlInsertQueueEntry,
		entry.ID,
		entry.AccountID,
		decimalToNumeric(entry.Tier1Amount),
		decimalToNumeric(entry.Tier2Amount),
		decimalToNumeric(entry.Tier3Amount),
		string(entry.Purpose),
		string(entry.Status),
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)

	return err
}

// GetByID retrieves a queue entry by ID.
func (r *QueueRepository) GetByID(ctx context.Context, id string) (*domain.QueueEntry, error) {
	entry, err := scanQueueEntry(r.pool.QueryRow(ctx, sqlGetQueueEntry, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// SelectPendingForUpdate locks up to limit PENDING entries, oldest first.
func (r *QueueRepository) SelectPendingForUpdate(ctx context.Context, tx usecase.Transaction, limit int) ([]*domain.QueueEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, sqlSelectPendingForUpdate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQueueEntries(rows)
}

// MarkStatusTx updates the status of the given entries inside a transaction.
func (r *QueueRepository) MarkStatusTx(ctx context.Context, tx usecase.Transaction, ids []string, status domain.QueueStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, sqlMarkQueueStatus, string(status), timeToPgTimestamptz(updatedAt), ids)

	return err
}

// MarkStatus applies one status to all ids in a single statement.
func (r *QueueRepository) MarkStatus(ctx context.Context, ids []string, status domain.QueueStatus, updatedAt time.Time) error {
	_, err := r.pool.Exec(ctx, sqlMarkQueueStatus, string(status), timeToPgTimestamptz(updatedAt), ids)

	return err
}

// ListUpdatedSince returns non-PENDING entries updated after the watermark.
func (r *QueueRepository) ListUpdatedSince(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, sqlListUpdatedSince, timeToPgTimestamptz(watermark))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQueueEntries(rows)
}

// Stats returns per-status counts.
func (r *QueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	stats := &domain.QueueStats{}

	err := r.pool.QueryRow(ctx, sqlQueueStats).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Processing,
		&stats.Done,
		&stats.Failed,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func scanQueueEntries(rows pgx.Rows) ([]*domain.QueueEntry, error) {
	var entries []*domain.QueueEntry
	for rows.Next() {
		entry, err := scanQueueEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanQueueEntry(row pgx.Row) (*domain.QueueEntry, error) {
	var (
		e                    domain.QueueEntry
		tier1, tier2, tier3  pgtype.Numeric
		purpose, status      string
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&e.ID, &e.AccountID, &tier1, &tier2, &tier3, &purpose, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.Tier1Amount = numericToDecimal(tier1)
	e.Tier2Amount = numericToDecimal(tier2)
	e.Tier3Amount = numericToDecimal(tier3)
	e.Purpose = domain.Purpose(purpose)
	e.Status = domain.QueueStatus(status)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
