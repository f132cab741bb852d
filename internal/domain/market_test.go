package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTierValuesValidate(t *testing.T) {
	valid := TierValues{
		Tier1Pool: decimal.NewFromInt(100), Tier1Market: decimal.NewFromInt(110),
		Tier2Pool: decimal.NewFromInt(100), Tier2Market: decimal.NewFromInt(90),
		Tier3Pool: decimal.NewFromInt(100), Tier3Market: decimal.NewFromInt(100),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalid := valid
	invalid.Tier2Market = decimal.Zero
	if err := invalid.Validate(); !errors.Is(err, ErrInvalidTierValue) {
		t.Fatalf("expected ErrInvalidTierValue, got %v", err)
	}
}

func TestTierValuesDelta(t *testing.T) {
	v := TierValues{
		Tier1Pool: decimal.NewFromInt(1000), Tier1Market: decimal.NewFromInt(1100),
		Tier2Pool: decimal.NewFromInt(1000), Tier2Market: decimal.NewFromInt(900),
		Tier3Pool: decimal.NewFromInt(1000), Tier3Market: decimal.NewFromInt(1000),
	}

	delta := v.Delta()

	if !delta.Tier1.Equal(decimal.NewFromFloat(0.1)) {
		t.Errorf("tier1: expected 0.1, got %s", delta.Tier1)
	}
	if !delta.Tier2.Equal(decimal.NewFromFloat(-0.1)) {
		t.Errorf("tier2: expected -0.1, got %s", delta.Tier2)
	}
	if !delta.Tier3.IsZero() {
		t.Errorf("tier3: expected 0, got %s", delta.Tier3)
	}
}

func TestTierValuesDeltaZeroPool(t *testing.T) {
	v := TierValues{Tier1Market: decimal.NewFromInt(500)}

	if !v.Delta().Tier1.IsZero() {
		t.Fatal("expected zero delta for zero pool value")
	}
}
