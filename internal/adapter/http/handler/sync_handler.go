package handler

import (
	"context"
	"net/http"

	"github.com/bankofanthos/investpipe/internal/adapter/http/dto"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// SyncService defines the behavior needed by SyncHandler.
type SyncService interface {
	SyncCycle(ctx context.Context) (*usecase.SyncStats, error)
}

// StatsService defines the behavior needed for combined stats.
type StatsService interface {
	Collect(ctx context.Context) (*usecase.CombinedStats, error)
}

// SyncHandler handles manual reconciliation triggers and combined stats.
type SyncHandler struct {
	syncUC  SyncService
	statsUC StatsService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncUC SyncService, statsUC StatsService) *SyncHandler {
	return &SyncHandler{
		syncUC:  syncUC,
		statsUC: statsUC,
	}
}

// Trigger runs one reconciliation cycle on demand.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	stats, err := h.syncUC.SyncCycle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reconciliation cycle failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SyncFromUseCase(stats))
}

// Stats returns counts from both stores.
func (h *SyncHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.Collect(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to collect stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CombinedStatsFromUseCase(stats))
}
