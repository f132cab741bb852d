package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

func defaultTierValues() domain.TierValues {
	million := decimal.NewFromInt(1_000_000)
	return domain.TierValues{
		Tier1Pool: million, Tier1Market: million,
		Tier2Pool: million, Tier2Market: million,
		Tier3Pool: million, Tier3Market: million,
	}
}

func TestMarketUseCase_RejectsInvalidSeed(t *testing.T) {
	values := defaultTierValues()
	values.Tier1Pool = decimal.Zero

	if _, err := usecase.NewMarketUseCase(values); !errors.Is(err, domain.ErrInvalidTierValue) {
		t.Fatalf("expected ErrInvalidTierValue, got %v", err)
	}
}

func TestMarketUseCase_Update(t *testing.T) {
	uc, err := usecase.NewMarketUseCase(defaultTierValues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	market := decimal.NewFromInt(1_100_000)
	values, err := uc.Update(usecase.UpdateTierValuesInput{Tier1Market: &market})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !values.Tier1Market.Equal(market) {
		t.Fatalf("expected tier1 market %s, got %s", market, values.Tier1Market)
	}

	delta := uc.Delta()
	if !delta.Tier1.Equal(decimal.NewFromFloat(0.1)) {
		t.Errorf("expected tier1 delta 0.1, got %s", delta.Tier1)
	}
	if !delta.Tier2.IsZero() {
		t.Errorf("expected tier2 delta 0, got %s", delta.Tier2)
	}
}

func TestMarketUseCase_UpdateRejectsNonPositive(t *testing.T) {
	uc, err := usecase.NewMarketUseCase(defaultTierValues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := decimal.NewFromInt(-5)
	if _, err := uc.Update(usecase.UpdateTierValuesInput{Tier2Pool: &bad}); !errors.Is(err, domain.ErrInvalidTierValue) {
		t.Fatalf("expected ErrInvalidTierValue, got %v", err)
	}

	// Rejected updates leave the current values untouched.
	if !uc.Values().Tier2Pool.Equal(decimal.NewFromInt(1_000_000)) {
		t.Fatal("expected tier2 pool to stay unchanged")
	}
}
