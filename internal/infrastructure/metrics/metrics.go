package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Queue metrics
	EntriesEnqueued  *prometheus.CounterVec
	QueueDepth       prometheus.Gauge
	EnqueueErrors    prometheus.Counter

	// Batch metrics
	BatchesProcessed *prometheus.CounterVec
	BatchDuration    prometheus.Histogram
	BatchesSkipped   prometheus.Counter

	// Valuation metrics
	ValuationCalls    *prometheus.CounterVec
	ValuationDuration prometheus.Histogram

	// Reconciliation metrics
	SyncCycles          *prometheus.CounterVec
	SyncEntriesHandled  *prometheus.CounterVec
	PortfoliosUpdated   prometheus.Counter
	SyncWatermarkAgeSec prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Queue metrics
		EntriesEnqueued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investpipe_entries_enqueued_total",
				Help: "Total number of queue entries accepted",
			},
			[]string{"purpose"},
		),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "investpipe_queue_pending_entries",
			Help: "Current number of pending queue entries",
		}),
		EnqueueErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investpipe_enqueue_errors_total",
			Help: "Total number of rejected enqueue requests",
		}),

		// Batch metrics
		BatchesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investpipe_batches_processed_total",
				Help: "Total number of batches by verdict",
			},
			[]string{"verdict"},
		),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "investpipe_batch_duration_seconds",
			Help:    "Duration of batch processing",
			Buckets: prometheus.DefBuckets,
		}),
		BatchesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investpipe_batches_skipped_total",
			Help: "Polls that found fewer than a full batch of pending entries",
		}),

		// Valuation metrics
		ValuationCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investpipe_valuation_calls_total",
				Help: "Total valuation service calls by outcome",
			},
			[]string{"outcome"},
		),
		ValuationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "investpipe_valuation_duration_seconds",
			Help:    "Valuation call duration",
			Buckets: prometheus.DefBuckets,
		}),

		// Reconciliation metrics
		SyncCycles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investpipe_sync_cycles_total",
				Help: "Total reconciliation cycles by outcome",
			},
			[]string{"outcome"},
		),
		SyncEntriesHandled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investpipe_sync_entries_total",
				Help: "Queue entries handled during reconciliation by result",
			},
			[]string{"result"},
		),
		PortfoliosUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "investpipe_portfolios_updated_total",
			Help: "Total portfolio value updates applied",
		}),
		SyncWatermarkAgeSec: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "investpipe_sync_watermark_age_seconds",
			Help: "Age of the reconciliation watermark",
		}),
	}
}
