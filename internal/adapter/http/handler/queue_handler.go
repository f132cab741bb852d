package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bankofanthos/investpipe/internal/adapter/http/dto"
	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// QueueService defines the behavior needed by QueueHandler.
type QueueService interface {
	Enqueue(ctx context.Context, input usecase.EnqueueInput) (*domain.QueueEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.QueueEntry, error)
	Stats(ctx context.Context) (*domain.QueueStats, error)
}

// QueueHandler handles queue-related HTTP requests.
type QueueHandler struct {
	queueUC QueueService
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(queueUC QueueService) *QueueHandler {
	return &QueueHandler{queueUC: queueUC}
}

// Enqueue accepts a new investment or withdrawal request.
func (h *QueueHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req dto.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.queueUC.Enqueue(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to enqueue request", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.QueueEntryFromDomain(entry))
}

// GetStatus retrieves a queue entry by its UUID.
func (h *QueueHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	// The id column is a uuid; a malformed segment can never match an entry,
	// so reject it here instead of letting the store fail to encode it.
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "queue entry not found", domain.ErrEntryNotFound.Error())
		return
	}

	entry, err := h.queueUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get queue entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.QueueEntryFromDomain(entry))
}

// Stats returns per-status counts for the queue store.
func (h *QueueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queueUC.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get queue stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.QueueStatsFromDomain(stats))
}
