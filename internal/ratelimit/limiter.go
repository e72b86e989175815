// Package ratelimit provides an injectable per-client request limiter.
// The in-memory limiter serves single-instance deployments; the Redis
// limiter shares its window across instances.
package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
