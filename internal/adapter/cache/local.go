package cache

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/tallyworks/wipengine/internal/domain"
)

const localEvictionPercentage = 10

// LocalStore is the in-process cache tier. It is always available, holds
// serialized entries with a single short client-wide TTL, and claims no
// consistency across processes beyond that TTL.
type LocalStore struct {
	client *sturdyc.Client[[]byte]
}

// NewLocalStore creates a new LocalStore.
func NewLocalStore(capacity, shards int, ttl time.Duration) *LocalStore {
	return &LocalStore{
		client: sturdyc.New[[]byte](capacity, shards, ttl, localEvictionPercentage),
	}
}

// Get retrieves an entry by key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s.client.Get(key)
	return value, ok, nil
}

// Set stores an entry. The ttl argument is ignored: the local tier uses its
// client-wide TTL, which is configured shorter than any distributed TTL.
func (s *LocalStore) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	s.client.Set(key, value)
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix.
func (s *LocalStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	deleted := 0
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}

// Health reports the local tier as always available.
func (s *LocalStore) Health(ctx context.Context) domain.CacheHealth {
	return domain.CacheHealth{Configured: true, Connected: true}
}
