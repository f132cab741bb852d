package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// QueueEntryResponse represents a queue entry in API responses.
// The entry ID travels as "uuid" on the wire.
type QueueEntryResponse struct {
	UUID        string          `json:"uuid"`
	AccountID   string          `json:"accountid"`
	Tier1Amount decimal.Decimal `json:"tier1"`
	Tier2Amount decimal.Decimal `json:"tier2"`
	Tier3Amount decimal.Decimal `json:"tier3"`
	Purpose     string          `json:"purpose"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// QueueEntryFromDomain converts a domain queue entry to a response.
func QueueEntryFromDomain(e *domain.QueueEntry) *QueueEntryResponse {
	return &QueueEntryResponse{
		UUID:        e.ID,
		AccountID:   e.AccountID,
		Tier1Amount: e.Tier1Amount,
		Tier2Amount: e.Tier2Amount,
		Tier3Amount: e.Tier3Amount,
		Purpose:     string(e.Purpose),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// QueueStatsResponse represents queue store counts in API responses.
type QueueStatsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Done       int64 `json:"done"`
	Failed     int64 `json:"failed"`
}

// QueueStatsFromDomain converts domain queue stats to a response.
func QueueStatsFromDomain(s *domain.QueueStats) *QueueStatsResponse {
	return &QueueStatsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		Processing: s.Processing,
		Done:       s.Done,
		Failed:     s.Failed,
	}
}

// TransactionStatsResponse represents portfolio transaction counts.
type TransactionStatsResponse struct {
	Total       int64 `json:"total"`
	Deposits    int64 `json:"deposits"`
	Withdrawals int64 `json:"withdrawals"`
	Pending     int64 `json:"pending"`
	Completed   int64 `json:"completed"`
	Failed      int64 `json:"failed"`
}

// TransactionStatsFromDomain converts domain transaction stats to a response.
func TransactionStatsFromDomain(s *domain.TransactionStats) *TransactionStatsResponse {
	return &TransactionStatsResponse{
		Total:       s.Total,
		Deposits:    s.Deposits,
		Withdrawals: s.Withdrawals,
		Pending:     s.Pending,
		Completed:   s.Completed,
		Failed:      s.Failed,
	}
}

// CombinedStatsResponse joins counts from both stores.
type CombinedStatsResponse struct {
	Queue        *QueueStatsResponse       `json:"queue"`
	Transactions *TransactionStatsResponse `json:"transactions"`
}

// CombinedStatsFromUseCase converts combined stats to a response.
func CombinedStatsFromUseCase(s *usecase.CombinedStats) *CombinedStatsResponse {
	return &CombinedStatsResponse{
		Queue:        QueueStatsFromDomain(s.Queue),
		Transactions: TransactionStatsFromDomain(s.Transactions),
	}
}

// SyncResponse summarizes one triggered reconciliation cycle.
type SyncResponse struct {
	Status string         `json:"status"`
	Stats  SyncCycleStats `json:"stats"`
}

// SyncCycleStats carries per-cycle reconciliation counters.
type SyncCycleStats struct {
	Processed         int `json:"processed"`
	Created           int `json:"created"`
	Updated           int `json:"updated"`
	PortfoliosUpdated int `json:"portfolios_updated"`
	Skipped           int `json:"skipped"`
	Errors            int `json:"errors"`
}

// SyncFromUseCase converts cycle stats to a response.
func SyncFromUseCase(s *usecase.SyncStats) *SyncResponse {
	return &SyncResponse{
		Status: "success",
		Stats: SyncCycleStats{
			Processed:         s.Processed,
			Created:           s.Created,
			Updated:           s.Updated,
			PortfoliosUpdated: s.PortfoliosUpdated,
			Skipped:           s.Skipped,
			Errors:            s.Errors,
		},
	}
}

// TierValuesResponse represents the configured tier values and the market
// delta they currently produce.
type TierValuesResponse struct {
	Tier1Pool   decimal.Decimal `json:"tier1_pool_value"`
	Tier1Market decimal.Decimal `json:"tier1_market_value"`
	Tier2Pool   decimal.Decimal `json:"tier2_pool_value"`
	Tier2Market decimal.Decimal `json:"tier2_market_value"`
	Tier3Pool   decimal.Decimal `json:"tier3_pool_value"`
	Tier3Market decimal.Decimal `json:"tier3_market_value"`
	Tier1Delta  decimal.Decimal `json:"tier1_delta"`
	Tier2Delta  decimal.Decimal `json:"tier2_delta"`
	Tier3Delta  decimal.Decimal `json:"tier3_delta"`
}

// TierValuesFromDomain converts tier values to a response.
func TierValuesFromDomain(v domain.TierValues) *TierValuesResponse {
	delta := v.Delta()

	return &TierValuesResponse{
		Tier1Pool:   v.Tier1Pool,
		Tier1Market: v.Tier1Market,
		Tier2Pool:   v.Tier2Pool,
		Tier2Market: v.Tier2Market,
		Tier3Pool:   v.Tier3Pool,
		Tier3Market: v.Tier3Market,
		Tier1Delta:  delta.Tier1,
		Tier2Delta:  delta.Tier2,
		Tier3Delta:  delta.Tier3,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
