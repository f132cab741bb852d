package usecase

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/domain"
)

// MarketUseCase holds the configured tier pool and market values and serves
// the derived market delta to the reconciliation sweeper. Values start from
// configuration and can be replaced at runtime through the API.
type MarketUseCase struct {
	mu     sync.RWMutex
	values domain.TierValues
}

// NewMarketUseCase creates a MarketUseCase seeded with the given tier values.
func NewMarketUseCase(values domain.TierValues) (*MarketUseCase, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}

	return &MarketUseCase{values: values}, nil
}

// Values returns the current tier pool and market values.
func (uc *MarketUseCase) Values() domain.TierValues {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.values
}

// Delta computes the current per-tier market delta.
func (uc *MarketUseCase) Delta() domain.MarketDelta {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return uc.values.Delta()
}

// UpdateTierValuesInput carries optional replacements for each tier value.
type UpdateTierValuesInput struct {
	Tier1Pool   *decimal.Decimal
	Tier1Market *decimal.Decimal
	Tier2Pool   *decimal.Decimal
	Tier2Market *decimal.Decimal
	Tier3Pool   *decimal.Decimal
	Tier3Market *decimal.Decimal
}

// Update replaces any provided tier values, validating the result as a whole.
func (uc *MarketUseCase) Update(input UpdateTierValuesInput) (domain.TierValues, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.values
	if input.Tier1Pool != nil {
		next.Tier1Pool = *input.Tier1Pool
	}
	if input.Tier1Market != nil {
		next.Tier1Market = *input.Tier1Market
	}
	if input.Tier2Pool != nil {
		next.Tier2Pool = *input.Tier2Pool
	}
	if input.Tier2Market != nil {
		next.Tier2Market = *input.Tier2Market
	}
	if input.Tier3Pool != nil {
		next.Tier3Pool = *input.Tier3Pool
	}
	if input.Tier3Market != nil {
		next.Tier3Market = *input.Tier3Market
	}

	if err := next.Validate(); err != nil {
		return uc.values, err
	}

	uc.values = next

	return uc.values, nil
}
