package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// BatchProcessor drives one claimed batch to a terminal state.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) (*usecase.BatchResult, error)
}

// Aggregator polls the queue store and processes full batches of pending
// entries. It drains all available batches on every tick.
type Aggregator struct {
	processor BatchProcessor
	retrier   usecase.Retrier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	interval  time.Duration
}

// AggregatorConfig for Aggregator.
type AggregatorConfig struct {
	Processor BatchProcessor
	Retrier   usecase.Retrier
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Interval  time.Duration // Polling interval
}

// NewAggregator creates a new Aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Aggregator{
		processor: cfg.Processor,
		retrier:   cfg.Retrier,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		interval:  cfg.Interval,
	}
}

// Start begins the aggregation worker.
// It runs continuously until the context is cancelled.
func (a *Aggregator) Start(ctx context.Context) error {
	a.logger.Info("batch aggregator started",
		slog.Duration("interval", a.interval))

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	// Process immediately on start
	a.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("batch aggregator shutting down")
			return ctx.Err()
		case <-ticker.C:
			a.drain(ctx)
		}
	}
}

// drain processes batches until fewer than a full batch remains pending.
func (a *Aggregator) drain(ctx context.Context) {
	for {
		var result *usecase.BatchResult

		op := func() error {
			var err error
			result, err = a.processor.ProcessBatch(ctx)
			return err
		}

		var err error
		if a.retrier != nil {
			err = a.retrier.Retry(ctx, op)
		} else {
			err = op()
		}

		if err != nil {
			if errors.Is(err, domain.ErrBatchUnavailable) {
				if a.metrics != nil {
					a.metrics.BatchesSkipped.Inc()
				}
				return
			}

			a.logger.Error("error processing batch", slog.String("error", err.Error()))
			return
		}

		a.logger.Info("batch processed",
			slog.Int("entries", len(result.EntryIDs)),
			slog.String("token", result.Token),
			slog.Bool("succeeded", result.Succeeded))
	}
}
