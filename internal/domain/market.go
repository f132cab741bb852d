package domain

import "github.com/shopspring/decimal"

// TierValues holds the configured pool and market value for each tier.
type TierValues struct {
	Tier1Pool   decimal.Decimal
	Tier1Market decimal.Decimal
	Tier2Pool   decimal.Decimal
	Tier2Market decimal.Decimal
	Tier3Pool   decimal.Decimal
	Tier3Market decimal.Decimal
}

// Validate rejects non-positive pool or market values.
func (v TierValues) Validate() error {
	for _, d := range []decimal.Decimal{
		v.Tier1Pool, v.Tier1Market,
		v.Tier2Pool, v.Tier2Market,
		v.Tier3Pool, v.Tier3Market,
	} {
		if !d.IsPositive() {
			return ErrInvalidTierValue
		}
	}

	return nil
}

// MarketDelta is the fractional change between each tier's pool value and its
// current market value, used to scale portfolio tier values during
// reconciliation.
type MarketDelta struct {
	Tier1 decimal.Decimal
	Tier2 decimal.Decimal
	Tier3 decimal.Decimal
}

// Delta computes per-tier market deltas: (market - pool) / pool.
// A zero pool value yields a zero delta for that tier.
func (v TierValues) Delta() MarketDelta {
	return MarketDelta{
		Tier1: tierDelta(v.Tier1Pool, v.Tier1Market),
		Tier2: tierDelta(v.Tier2Pool, v.Tier2Market),
		Tier3: tierDelta(v.Tier3Pool, v.Tier3Market),
	}
}

func tierDelta(pool, market decimal.Decimal) decimal.Decimal {
	if pool.IsZero() {
		return decimal.Zero
	}

	return market.Sub(pool).Div(pool)
}
