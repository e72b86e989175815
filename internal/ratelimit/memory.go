package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps a token bucket per client key. Entries idle for
// longer than three windows are swept periodically so the map does not
// grow without bound.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry

	maxRequests int
	window      time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

func NewMemoryLimiter(maxRequests int, window, cleanupInterval time.Duration) *MemoryLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	l := &MemoryLimiter{
		clients:     make(map[string]*clientEntry),
		maxRequests: maxRequests,
		window:      window,
		stop:        make(chan struct{}),
	}
	go l.sweep(cleanupInterval)
	return l
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	l.mu.Lock()
	entry, ok := l.clients[key]
	if !ok {
		entry = &clientEntry{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.maxRequests)), l.maxRequests),
		}
		l.clients[key] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	now := time.Now()
	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Result{Allowed: false, RetryAfter: l.window}, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Result{Allowed: false, RetryAfter: delay}, nil
	}
	return Result{Allowed: true}, nil
}

func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *MemoryLimiter) sweep(interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-3 * l.window)
			l.mu.Lock()
			for key, entry := range l.clients {
				if entry.lastSeen.Before(cutoff) {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
