package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purpose identifies the direction of a queued request.
type Purpose string

const (
	PurposeInvest   Purpose = "INVEST"
	PurposeWithdraw Purpose = "WITHDRAW"
)

// ParsePurpose maps a raw string to a Purpose, rejecting unknown values.
func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(s) {
	case PurposeInvest, PurposeWithdraw:
		return Purpose(s), nil
	default:
		return "", ErrInvalidPurpose
	}
}

// QueueStatus is the lifecycle state of a queue entry.
type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "PENDING"
	QueueStatusProcessing QueueStatus = "PROCESSING"
	QueueStatusDone       QueueStatus = "DONE"
	QueueStatusFailed     QueueStatus = "FAILED"
)

// Terminal reports whether the status is a terminal state.
func (s QueueStatus) Terminal() bool {
	return s == QueueStatusDone || s == QueueStatusFailed
}

// QueueEntry represents one investment or withdrawal request in the queue store.
// Tier amounts are immutable after creation; only Status and UpdatedAt mutate.
type QueueEntry struct {
	ID          string
	AccountID   string
	Tier1Amount decimal.Decimal
	Tier2Amount decimal.Decimal
	Tier3Amount decimal.Decimal
	Purpose     Purpose
	Status      QueueStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks a queue entry before insertion.
func (e *QueueEntry) Validate() error {
	if e.AccountID == "" {
		return ErrMissingAccountID
	}

	if _, err := ParsePurpose(string(e.Purpose)); err != nil {
		return err
	}

	for _, amount := range []decimal.Decimal{e.Tier1Amount, e.Tier2Amount, e.Tier3Amount} {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}

	if e.Tier1Amount.IsZero() && e.Tier2Amount.IsZero() && e.Tier3Amount.IsZero() {
		return ErrEmptyRequest
	}

	return nil
}

// TotalAmount returns the sum of the three tier amounts.
func (e *QueueEntry) TotalAmount() decimal.Decimal {
	return e.Tier1Amount.Add(e.Tier2Amount).Add(e.Tier3Amount)
}

// QueueStats holds per-status counts over the queue store.
type QueueStats struct {
	Total      int64
	Pending    int64
	Processing int64
	Done       int64
	Failed     int64
}
