package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/bankofanthos/investpipe/internal/adapter/http/handler"
	"github.com/bankofanthos/investpipe/internal/adapter/http/middleware"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	QueueHandler     *handler.QueueHandler
	SyncHandler      *handler.SyncHandler
	MarketHandler    *handler.MarketHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Queue
		r.Route("/queue", func(r chi.Router) {
			r.Post("/", cfg.QueueHandler.Enqueue)
			r.Get("/stats", cfg.QueueHandler.Stats)
			r.Get("/status/{uuid}", cfg.QueueHandler.GetStatus)
		})

		// Reconciliation and combined stats
		r.Post("/sync", cfg.SyncHandler.Trigger)
		r.Get("/stats", cfg.SyncHandler.Stats)

		// Tier values
		r.Route("/market/tiers", func(r chi.Router) {
			r.Get("/", cfg.MarketHandler.Get)
			r.Put("/", cfg.MarketHandler.Update)
		})
	})

	return r
}
