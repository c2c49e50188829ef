package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// Limit allows at most Value requests per fixed Window.
type Limit struct {
	Value  uint32
	Window time.Duration
}

type Result struct {
	IsAllowed bool
	Limit     uint32
	Remaining uint32
	ResetAt   time.Time
}

type LimitExceededError struct {
	Key    string
	Result Result
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s until %s", e.Key, e.Result.ResetAt.Format(time.RFC3339))
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// RateLimiter counts requests per key. A returned error means the counter
// could not be read or written; callers decide whether to fail open or closed.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) (Result, error)
}

// Evaluate turns a post-increment counter into a Result.
func Evaluate(count int64, resetAt time.Time, limit Limit) Result {
	result := Result{Limit: limit.Value, ResetAt: resetAt}
	if count > int64(limit.Value) {
		return result
	}
	result.IsAllowed = true
	result.Remaining = limit.Value - uint32(count)
	return result
}

// Window is a fixed window counter.
type Window struct {
	Count   int64
	ResetAt time.Time
}

// Hit registers one request at now. A window that has elapsed is discarded
// and a new one starts at now.
func (w Window) Hit(now time.Time, limit Limit) (Window, Result) {
	if w.ResetAt.IsZero() || !now.Before(w.ResetAt) {
		w = Window{ResetAt: now.Add(limit.Window)}
	}
	w.Count++
	return w, Evaluate(w.Count, w.ResetAt, limit)
}
