package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// Syncer runs one reconciliation cycle over the two stores.
type Syncer interface {
	SyncCycle(ctx context.Context) (*usecase.SyncStats, error)
}

// Sweeper periodically reconciles terminal queue entries into the portfolio
// store. A cycle that fails leaves the watermark where it was, so nothing is
// lost between ticks.
type Sweeper struct {
	syncer   Syncer
	retrier  usecase.Retrier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration
}

// SweeperConfig for Sweeper.
type SweeperConfig struct {
	Syncer   Syncer
	Retrier  usecase.Retrier
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration // Reconciliation interval
}

// NewSweeper creates a new Sweeper.
func NewSweeper(cfg SweeperConfig) *Sweeper {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Sweeper{
		syncer:   cfg.Syncer,
		retrier:  cfg.Retrier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: cfg.Interval,
	}
}

// Start begins the reconciliation worker.
// It runs continuously until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("reconciliation sweeper started",
		slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Reconcile immediately on start
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reconciliation sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Sweeper) runCycle(ctx context.Context) {
	var stats *usecase.SyncStats

	op := func() error {
		var err error
		stats, err = s.syncer.SyncCycle(ctx)
		return err
	}

	var err error
	if s.retrier != nil {
		err = s.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if err != nil {
		if s.metrics != nil {
			s.metrics.SyncCycles.WithLabelValues("error").Inc()
		}
		s.logger.Error("reconciliation cycle failed", slog.String("error", err.Error()))

		return
	}

	if s.metrics != nil {
		s.metrics.SyncCycles.WithLabelValues("ok").Inc()
	}

	if stats.Processed > 0 {
		s.logger.Info("reconciliation cycle completed",
			slog.Int("processed", stats.Processed),
			slog.Int("created", stats.Created),
			slog.Int("updated", stats.Updated),
			slog.Int("portfolios_updated", stats.PortfoliosUpdated),
			slog.Int("skipped", stats.Skipped),
			slog.Int("errors", stats.Errors))
	}
}
