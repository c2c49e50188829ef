package ratelimiting

import (
	"context"
	"fmt"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/services"
)

type hasRateLimitKey interface {
	GetRateLimitKey() string
}

// hasRateLimit is implemented by results that expose the counter state,
// so that callers can report it even on success.
type hasRateLimit[S any] interface {
	WithRateLimit(r ratelimiter.Result) S
}

type serviceWithRateLimiting[T hasRateLimitKey, S hasRateLimit[S]] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	rateLimit   ratelimiter.Limit
	inner       services.Service[T, S]
}

func WithRateLimiting[T hasRateLimitKey, S hasRateLimit[S]](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	rateLimit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithRateLimiting[T, S]{
		log:         log,
		rateLimiter: rateLimiter,
		rateLimit:   rateLimit,
		inner:       inner,
	}
}

func (s *serviceWithRateLimiting[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	rateLimitKey := input.GetRateLimitKey()
	rate, err := s.rateLimiter.CheckLimit(ctx, rateLimitKey, s.rateLimit)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not check rate limit.",
			logging.Entry("key", rateLimitKey),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("could not check rate limit: %w", err)
	}
	if !rate.IsAllowed {
		s.log.Warning(ctx, "Rate limit exceeded.", logging.Entry("key", rateLimitKey))
		return result, &ratelimiter.LimitExceededError{Key: rateLimitKey, Result: rate}
	}

	result, err = s.inner.Run(ctx, input)
	return result.WithRateLimit(rate), err
}
