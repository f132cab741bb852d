package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/usecase"
)

// EnqueueRequest represents a request to queue an investment or withdrawal.
// Field names match the upstream callers' wire format.
type EnqueueRequest struct {
	AccountID   string          `json:"accountid"`
	Tier1Amount decimal.Decimal `json:"tier1"`
	Tier2Amount decimal.Decimal `json:"tier2"`
	Tier3Amount decimal.Decimal `json:"tier3"`
	Purpose     string          `json:"purpose"`
}

// ToUseCaseInput converts to use case input.
func (r *EnqueueRequest) ToUseCaseInput() usecase.EnqueueInput {
	return usecase.EnqueueInput{
		AccountID:   r.AccountID,
		Tier1Amount: r.Tier1Amount,
		Tier2Amount: r.Tier2Amount,
		Tier3Amount: r.Tier3Amount,
		Purpose:     r.Purpose,
	}
}

// UpdateTierValuesRequest carries partial replacements for the configured
// tier pool and market values. Omitted fields keep their current value.
type UpdateTierValuesRequest struct {
	Tier1Pool   *decimal.Decimal `json:"tier1_pool_value,omitempty"`
	Tier1Market *decimal.Decimal `json:"tier1_market_value,omitempty"`
	Tier2Pool   *decimal.Decimal `json:"tier2_pool_value,omitempty"`
	Tier2Market *decimal.Decimal `json:"tier2_market_value,omitempty"`
	Tier3Pool   *decimal.Decimal `json:"tier3_pool_value,omitempty"`
	Tier3Market *decimal.Decimal `json:"tier3_market_value,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTierValuesRequest) ToUseCaseInput() usecase.UpdateTierValuesInput {
	return usecase.UpdateTierValuesInput{
		Tier1Pool:   r.Tier1Pool,
		Tier1Market: r.Tier1Market,
		Tier2Pool:   r.Tier2Pool,
		Tier2Market: r.Tier2Market,
		Tier3Pool:   r.Tier3Pool,
		Tier3Market: r.Tier3Market,
	}
}
