package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tallyworks/wipengine/internal/adapter/http/dto"
	"github.com/tallyworks/wipengine/internal/domain"
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
	case errors.Is(err, domain.ErrUnknownEntityKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownDimension):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnknownTransactionKind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseDateQuery parses a YYYY-MM-DD query parameter. Missing values yield
// the zero time.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", val)
}
