package cache

import (
	"context"
	"time"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/infrastructure/metrics"
)

// TieredStore implements usecase.CacheStore over a local tier and an
// optional distributed tier. Reads check local first; a distributed hit
// backfills the local tier so repeat reads stay in-process.
type TieredStore struct {
	local   *LocalStore
	remote  *RedisStore
	metrics *metrics.Metrics
}

// NewTieredStore creates a new TieredStore. remote may be nil, leaving a
// local-only cache.
func NewTieredStore(local *LocalStore, remote *RedisStore, m *metrics.Metrics) *TieredStore {
	return &TieredStore{
		local:   local,
		remote:  remote,
		metrics: m,
	}
}

// Get retrieves an entry, local tier first.
func (s *TieredStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok, _ := s.local.Get(ctx, key); ok {
		s.hit("local")
		return value, true, nil
	}

	if s.remote != nil {
		if value, ok, _ := s.remote.Get(ctx, key); ok {
			// Backfill so repeat reads skip the network; the local tier
			// applies its own shorter TTL.
			_ = s.local.Set(ctx, key, value, 0)
			s.hit("distributed")
			return value, true, nil
		}
	}

	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
	return nil, false, nil
}

// Set stores an entry in both tiers.
func (s *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = s.local.Set(ctx, key, value, ttl)
	if s.remote != nil {
		return s.remote.Set(ctx, key, value, ttl)
	}
	return nil
}

// DeletePrefix evicts the prefix from both tiers and returns the combined
// count.
func (s *TieredStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	deleted, _ := s.local.DeletePrefix(ctx, prefix)
	if s.remote != nil {
		n, err := s.remote.DeletePrefix(ctx, prefix)
		return deleted + n, err
	}
	return deleted, nil
}

// Health reports the distributed tier's state; the local tier has no
// failure mode worth reporting.
func (s *TieredStore) Health(ctx context.Context) domain.CacheHealth {
	if s.remote == nil {
		return domain.CacheHealth{}
	}
	return s.remote.Health(ctx)
}

func (s *TieredStore) hit(tier string) {
	if s.metrics != nil {
		s.metrics.CacheHits.WithLabelValues(tier).Inc()
	}
}
