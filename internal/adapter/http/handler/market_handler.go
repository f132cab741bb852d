package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bankofanthos/investpipe/internal/adapter/http/dto"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// MarketHandler handles tier value reads and updates.
type MarketHandler struct {
	marketUC *usecase.MarketUseCase
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketUC *usecase.MarketUseCase) *MarketHandler {
	return &MarketHandler{marketUC: marketUC}
}

// Get returns the configured tier values and the current market delta.
func (h *MarketHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.TierValuesFromDomain(h.marketUC.Values()))
}

// Update replaces any provided tier values.
func (h *MarketHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTierValuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	values, err := h.marketUC.Update(req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update tier values", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TierValuesFromDomain(values))
}
