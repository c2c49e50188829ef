package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// FakeRateLimiter keeps fixed windows in memory.
type FakeRateLimiter struct {
	Now         func() time.Time
	ReturnError error
	Keys        []string
	windows     map[string]Window
	lock        sync.Mutex
}

func NewFakeRateLimiter(now func() time.Time) *FakeRateLimiter {
	return &FakeRateLimiter{Now: now, windows: make(map[string]Window)}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) (Result, error) {
	rl.lock.Lock()
	defer rl.lock.Unlock()
	rl.Keys = append(rl.Keys, key)
	if rl.ReturnError != nil {
		return Result{}, rl.ReturnError
	}
	window, result := rl.windows[key].Hit(rl.Now(), limit)
	rl.windows[key] = window
	return result, nil
}
