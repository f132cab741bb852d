package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bankofanthos/investpipe/internal/adapter/http/dto"
	"github.com/bankofanthos/investpipe/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPortfolioNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingAccountID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPurpose):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTierValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
