package domain

import "errors"

var (
	// Queue errors
	ErrEntryNotFound    = errors.New("queue entry not found")
	ErrMissingAccountID = errors.New("account id is required")
	ErrInvalidPurpose   = errors.New("purpose must be INVEST or WITHDRAW")
	ErrNegativeAmount   = errors.New("tier amounts must be non-negative")
	ErrEmptyRequest     = errors.New("at least one tier amount must be positive")
	ErrBatchUnavailable = errors.New("not enough pending entries for a full batch")

	// Portfolio errors
	ErrPortfolioNotFound   = errors.New("portfolio not found for account")
	ErrTransactionNotFound = errors.New("portfolio transaction not found")

	// Market errors
	ErrInvalidTierValue = errors.New("tier pool and market values must be positive")
)
