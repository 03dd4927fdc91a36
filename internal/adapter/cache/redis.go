package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tallyworks/wipengine/internal/domain"
	"github.com/tallyworks/wipengine/internal/infrastructure/metrics"
)

// DefaultOpTimeout bounds every distributed-tier call. Past it the tier is
// treated as unavailable for that operation, not retried inline.
const DefaultOpTimeout = 250 * time.Millisecond

const deleteScanCount = 200

// RedisStore is the distributed cache tier. A nil client means the tier is
// not configured. Every failure degrades to a miss or a no-op; the caller
// of a read never sees a cache error.
type RedisStore struct {
	client    *redis.Client
	opTimeout time.Duration
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewRedisStore creates a new RedisStore. client may be nil.
func NewRedisStore(client *redis.Client, opTimeout time.Duration, m *metrics.Metrics, logger zerolog.Logger) *RedisStore {
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &RedisStore{
		client:    client,
		opTimeout: opTimeout,
		metrics:   m,
		logger:    logger,
	}
}

// Get retrieves an entry. An unreachable tier reads as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.degraded("get", key, err)
		}
		return nil, false, nil
	}

	return value, true, nil
}

// Set stores an entry with a TTL. An unreachable tier makes this a no-op.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.degraded("set", key, err)
	}
	return nil
}

// DeletePrefix scans for keys matching prefix and deletes them in batches.
// Returns the number of keys deleted before any failure.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if s.client == nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 4*s.opTimeout)
	defer cancel()

	deleted := 0
	iter := s.client.Scan(ctx, 0, prefix+"*", deleteScanCount).Iterator()

	batch := make([]string, 0, deleteScanCount)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.client.Del(ctx, batch...).Result()
		deleted += int(n)
		batch = batch[:0]
		return err
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == deleteScanCount {
			if err := flush(); err != nil {
				s.degraded("delete", prefix, err)
				return deleted, nil
			}
		}
	}
	if err := iter.Err(); err != nil {
		s.degraded("delete", prefix, err)
		return deleted, nil
	}
	if err := flush(); err != nil {
		s.degraded("delete", prefix, err)
	}

	return deleted, nil
}

// Health pings the tier with a bounded timeout.
func (s *RedisStore) Health(ctx context.Context) domain.CacheHealth {
	if s.client == nil {
		return domain.CacheHealth{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	return domain.CacheHealth{
		Configured: true,
		Connected:  s.client.Ping(ctx).Err() == nil,
	}
}

func (s *RedisStore) degraded(op, key string, err error) {
	if s.metrics != nil {
		s.metrics.CacheDegraded.WithLabelValues(op).Inc()
	}
	s.logger.Warn().Err(err).
		Str("operation", op).
		Str("key", key).
		Msg("distributed cache unavailable, degrading")
}
