package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles health check requests against both stores.
type HealthHandler struct {
	queuePool     *pgxpool.Pool
	portfolioPool *pgxpool.Pool
	redisClient   *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(queuePool, portfolioPool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		queuePool:     queuePool,
		portfolioPool: portfolioPool,
		redisClient:   redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.queuePool.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "queue store unhealthy", err.Error())
		return
	}

	if err := h.portfolioPool.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "portfolio store unhealthy", err.Error())
		return
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ready",
		"queue":     "ok",
		"portfolio": "ok",
		"redis":     "ok",
	})
}
