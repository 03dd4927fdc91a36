package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tallyworks/wipengine/internal/adapter/http/dto"
	"github.com/tallyworks/wipengine/internal/domain"
)

// InvalidationService defines the behavior needed by CacheHandler.
type InvalidationService interface {
	Invalidate(ctx context.Context, kind domain.EntityKind, id string) (int, error)
}

// HealthService reports the distributed cache tier's state.
type HealthService interface {
	CacheHealth(ctx context.Context) domain.CacheHealth
}

// CacheHandler handles cache invalidation and health requests.
type CacheHandler struct {
	invalidator InvalidationService
	health      HealthService
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(invalidator InvalidationService, health HealthService) *CacheHandler {
	return &CacheHandler{
		invalidator: invalidator,
		health:      health,
	}
}

// Invalidate evicts every cached entry of one entity. Write-side callers
// must invoke this after their ledger write is durably committed, before
// acknowledging the write.
func (h *CacheHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req dto.InvalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	kind, err := domain.ParseEntityKind(req.EntityKind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entity kind", err.Error())
		return
	}
	if req.EntityID == "" {
		writeError(w, http.StatusBadRequest, "missing entity ID", "")
		return
	}

	evicted, err := h.invalidator.Invalidate(r.Context(), kind, req.EntityID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to invalidate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvalidateResponse{
		EntityKind: req.EntityKind,
		EntityID:   req.EntityID,
		Evicted:    evicted,
	})
}

// Health reports whether the distributed tier is configured and reachable.
func (h *CacheHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.health.CacheHealth(r.Context())
	writeJSON(w, http.StatusOK, dto.CacheHealthResponse{
		Configured: health.Configured,
		Connected:  health.Connected,
	})
}
