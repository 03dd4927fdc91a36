package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a new Redis client. A failed ping returns the client
// alongside the error: the cache tier is allowed to start degraded and
// recover once Redis comes back, so the caller decides whether to keep it.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return client, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
