package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tallyworks/wipengine/internal/domain"
)

const versionKeyPrefix = "wip:ver:"

// VersionStore implements usecase.VersionStore. Versions live in Redis so
// every service instance keys the same generation; an in-process floor map
// keeps invalidations visible to this process even while Redis is down.
// Version keys never expire: cached entries always outlive their TTL by
// less than any plausible Redis retention.
type VersionStore struct {
	client    *redis.Client
	opTimeout time.Duration
	logger    zerolog.Logger

	mu    sync.Mutex
	floor map[string]int64
}

// NewVersionStore creates a new VersionStore. client may be nil, leaving
// purely in-process versioning.
func NewVersionStore(client *redis.Client, opTimeout time.Duration, logger zerolog.Logger) *VersionStore {
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &VersionStore{
		client:    client,
		opTimeout: opTimeout,
		logger:    logger,
		floor:     make(map[string]int64),
	}
}

// Current returns the entity's version. Entities that were never
// invalidated are version zero.
func (s *VersionStore) Current(ctx context.Context, kind domain.EntityKind, id string) int64 {
	key := versionKey(kind, id)

	if s.client != nil {
		ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
		defer cancel()

		version, err := s.client.Get(ctx, key).Int64()
		switch {
		case err == nil:
			return s.raiseFloor(key, version)
		case errors.Is(err, redis.Nil):
			return s.raiseFloor(key, 0)
		default:
			s.logger.Warn().Err(err).Str("key", key).Msg("version read failed, using local floor")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floor[key]
}

// Bump advances the entity's version. The local floor moves first so reads
// in this process can never observe the old version again, whatever Redis
// does.
func (s *VersionStore) Bump(ctx context.Context, kind domain.EntityKind, id string) int64 {
	key := versionKey(kind, id)

	s.mu.Lock()
	s.floor[key]++
	local := s.floor[key]
	s.mu.Unlock()

	if s.client == nil {
		return local
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	version, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("version bump failed, using local floor")
		return local
	}

	return s.raiseFloor(key, version)
}

func (s *VersionStore) raiseFloor(key string, version int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version > s.floor[key] {
		s.floor[key] = version
	}
	return s.floor[key]
}

func versionKey(kind domain.EntityKind, id string) string {
	return versionKeyPrefix + string(kind) + ":" + id
}
