package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Limiter is implemented by backends that admit or reject keys per window.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, resetAt time.Time, err error)
}

// MemoryLimiter throttles requests with an in-process counter store. State is
// per instance and resets on restart, matching the rest of the service.
type MemoryLimiter struct {
	store limiter.Store
}

// NewMemoryLimiter constructs a limiter backed by an in-memory store.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: memory.NewStore()}
}

// Allow consumes one slot for key and reports whether the request fits in the
// current window.
func (l *MemoryLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if l == nil || l.store == nil {
		return true, max, time.Now().Add(window), nil
	}
	rate := limiter.Rate{Period: window, Limit: int64(max)}
	res, err := limiter.New(l.store, rate).Get(ctx, key)
	if err != nil {
		return false, 0, time.Time{}, err
	}
	return !res.Reached, int(res.Remaining), time.Unix(res.Reset, 0), nil
}
