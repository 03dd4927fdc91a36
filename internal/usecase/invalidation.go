package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/infrastructure/metrics"
)

// Invalidator evicts every cached entry derived from one entity, across all
// dimensions and both cache tiers. Write-side collaborators call it
// synchronously after their ledger write commits.
type Invalidator struct {
	cache    CacheStore
	versions VersionStore
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewInvalidator creates a new Invalidator.
func NewInvalidator(cache CacheStore, versions VersionStore, m *metrics.Metrics, logger zerolog.Logger) *Invalidator {
	return &Invalidator{
		cache:    cache,
		versions: versions,
		metrics:  m,
		logger:   logger,
	}
}

// Invalidate bumps the entity version, then deletes the entity's key prefix
// from both tiers. The bump must come first: once the version moves, every
// new read keys past the old entries, so a computation that started before
// this call can only ever write back under a version no reader uses again.
// The prefix delete reclaims space; correctness does not depend on it.
// Invalidating an entity with no cached entries is a no-op.
func (inv *Invalidator) Invalidate(ctx context.Context, kind domain.EntityKind, id string) (int, error) {
	if _, err := domain.ParseEntityKind(string(kind)); err != nil {
		return 0, err
	}

	version := inv.versions.Bump(ctx, kind, id)

	evicted, err := inv.cache.DeletePrefix(ctx, entityPrefix(kind, id))
	if err != nil {
		// Version bump already stranded the stale entries; they expire by TTL.
		inv.logger.Warn().Err(err).
			Str("entity_kind", string(kind)).
			Str("entity_id", id).
			Msg("prefix delete failed, stale entries left to expire")
	}

	if inv.metrics != nil {
		inv.metrics.Invalidations.WithLabelValues(string(kind)).Inc()
		inv.metrics.CacheEvictions.Add(float64(evicted))
	}
	inv.logger.Info().
		Str("entity_kind", string(kind)).
		Str("entity_id", id).
		Int64("version", version).
		Int("evicted", evicted).
		Msg("entity invalidated")

	return evicted, nil
}
