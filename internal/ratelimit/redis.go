package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter on INCR+EXPIRE, keyed by window
// start so every instance sharing the Redis sees the same count.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxRequests: maxRequests, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	windowStart := time.Now().Truncate(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart.Unix())

	// increment and expire atomically: a key that gained a count but no TTL
	// would throttle the client forever
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// expiry a little past the window end covers clock skew
	pipe.Expire(ctx, redisKey, l.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}
	count := incr.Val()

	if count > int64(l.maxRequests) {
		retry := time.Until(windowStart.Add(l.window))
		if retry < time.Second {
			retry = time.Second
		}
		return Result{Allowed: false, RetryAfter: retry}, nil
	}
	return Result{Allowed: true}, nil
}
