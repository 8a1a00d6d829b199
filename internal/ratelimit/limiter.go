// Package ratelimit throttles abuse-prone operations such as login and
// password reset using fixed windows counted in Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts one hit against key and decides whether it may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RedisLimiter allows Limit hits per Window for a key. A key that goes over
// the limit is blocked for Block, regardless of the window.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	block  time.Duration
	prefix string
}

func NewRedisLimiter(client redis.Cmdable, limit int, window, block time.Duration, prefix string) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		block:  block,
		prefix: prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	key = l.prefix + ":" + key
	blockKey := key + ":blocked"

	blocked, err := l.client.Get(ctx, blockKey).Result()
	if err != nil && err != redis.Nil {
		return Decision{}, err
	}
	if blocked == "1" {
		ttl, _ := l.client.TTL(ctx, blockKey).Result()
		return Decision{Limit: l.limit, RetryAfter: positive(ttl, l.block)}, nil
	}

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err = l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return Decision{}, err
		}
	}

	if count > int64(l.limit) {
		if err = l.client.Set(ctx, blockKey, "1", l.block).Err(); err != nil {
			return Decision{}, err
		}
		return Decision{Limit: l.limit, RetryAfter: l.block}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - int(count),
	}, nil
}

func positive(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
