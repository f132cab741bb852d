package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankofanthos/investpipe/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.QueueDatabaseURL == "" || cfg.PortfolioDatabaseURL == "" {
		t.Fatal("expected default database URLs to be set")
	}

	if cfg.BatchSize != 10 {
		t.Fatalf("expected default batch size 10, got %d", cfg.BatchSize)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if !cfg.Tier1PoolValue.Equal(decimal.NewFromInt(1_000_000)) {
		t.Fatalf("expected default tier1 pool value 1000000, got %s", cfg.Tier1PoolValue)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUEUE_DATABASE_URL", "postgres://queue-example")
	t.Setenv("PORTFOLIO_DATABASE_URL", "postgres://portfolio-example")
	t.Setenv("VALUATION_URL", "http://valuation:7000/evaluate")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("TIER2_MARKET_VALUE", "1250000.50")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.QueueDatabaseURL != "postgres://queue-example" {
		t.Fatalf("expected custom queue URL, got %s", cfg.QueueDatabaseURL)
	}

	if cfg.PortfolioDatabaseURL != "postgres://portfolio-example" {
		t.Fatalf("expected custom portfolio URL, got %s", cfg.PortfolioDatabaseURL)
	}

	if cfg.ValuationURL != "http://valuation:7000/evaluate" {
		t.Fatalf("expected valuation URL override, got %s", cfg.ValuationURL)
	}

	if cfg.BatchSize != 25 || cfg.PollInterval != 2*time.Second {
		t.Fatalf("expected worker overrides, got size=%d interval=%s", cfg.BatchSize, cfg.PollInterval)
	}

	if !cfg.Tier2MarketValue.Equal(decimal.RequireFromString("1250000.50")) {
		t.Fatalf("expected tier2 market value override, got %s", cfg.Tier2MarketValue)
	}
}

func TestLoadInvalidDecimal(t *testing.T) {
	t.Setenv("TIER1_POOL_VALUE", "not-a-number")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid decimal")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("SYNC_INTERVAL", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
