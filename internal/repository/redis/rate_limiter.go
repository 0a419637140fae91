package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter shared by every API instance.
type RateLimiter struct {
	client *redis.Client
	prefix string
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: keyPrefix + "rl:",
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	key := rl.prefix + identifier

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline failed: %w", err)
	}

	count, err := incr.Result()
	if err != nil {
		return false, fmt.Errorf("redis incr failed: %w", err)
	}

	return count <= int64(limit), nil
}
