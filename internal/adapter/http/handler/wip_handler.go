package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tallyworks/wipengine/internal/adapter/http/dto"
	"github.com/tallyworks/wipengine/internal/domain"
)

// WipService defines the behavior needed by WipHandler.
type WipService interface {
	GetSnapshot(ctx context.Context, kind domain.EntityKind, id string, dim domain.Dimension) (*domain.SnapshotResult, error)
	GetProfitability(ctx context.Context, kind domain.EntityKind, id string) (*domain.Profitability, error)
	GetAging(ctx context.Context, kind domain.EntityKind, id string, asOf time.Time) (*domain.AgingBuckets, error)
}

// WipHandler handles snapshot, profitability and aging requests.
type WipHandler struct {
	wipUC WipService
}

// NewWipHandler creates a new WipHandler.
func NewWipHandler(wipUC WipService) *WipHandler {
	return &WipHandler{wipUC: wipUC}
}

// GetSnapshot returns the balance snapshot of an entity along a dimension.
func (h *WipHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := entityParams(w, r)
	if !ok {
		return
	}

	dim, err := domain.ParseDimension(r.URL.Query().Get("dimension"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dimension", err.Error())
		return
	}

	res, err := h.wipUC.GetSnapshot(r.Context(), kind, id, dim)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get snapshot", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotResultFromDomain(res))
}

// GetProfitability returns profitability metrics derived from the overall
// snapshot.
func (h *WipHandler) GetProfitability(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := entityParams(w, r)
	if !ok {
		return
	}

	p, err := h.wipUC.GetProfitability(r.Context(), kind, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get profitability", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfitabilityFromDomain(p))
}

// GetAging returns debtor aging buckets as of an optional date.
func (h *WipHandler) GetAging(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := entityParams(w, r)
	if !ok {
		return
	}

	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	buckets, err := h.wipUC.GetAging(r.Context(), kind, id, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get aging", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AgingFromDomain(buckets))
}

// entityParams extracts and validates the entity kind and ID path
// parameters, writing the error response itself on failure.
func entityParams(w http.ResponseWriter, r *http.Request) (domain.EntityKind, string, bool) {
	kind, err := domain.ParseEntityKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entity kind", err.Error())
		return "", "", false
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entity ID", "")
		return "", "", false
	}

	return kind, id, true
}
