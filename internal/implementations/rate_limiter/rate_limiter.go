package ratelimiter

import (
	"context"
	"fmt"
	e "kedilabs/internal/core/domain/errors"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"time"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "ratelimit:"

// fixedWindow increments the counter and starts its window on the first hit.
// A counter that lost its expiry is given a fresh one.
var fixedWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type Redis struct {
	redisClient *redis.Client
	now         func() time.Time
	timeout     time.Duration
}

func NewRedis(redisClient *redis.Client, now func() time.Time, timeout time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, now: now, timeout: timeout}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) (ratelimiter.Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	now := r.now()
	values, err := fixedWindow.Run(
		ctx,
		r.redisClient,
		[]string{keyPrefix + key},
		limit.Window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return ratelimiter.Result{}, fmt.Errorf("could not increment rate limit counter: %w", err)
	}
	if len(values) != 2 {
		return ratelimiter.Result{}, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}

	resetAt := now.Add(time.Duration(values[1]) * time.Millisecond)
	return ratelimiter.Evaluate(values[0], resetAt, limit), nil
}
