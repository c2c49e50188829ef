package ratelimiting

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/logging"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Value string
}

func (i input) GetRateLimitKey() string {
	return "test-rate-limiting-key:" + i.Value
}

type result struct {
	RateLimit ratelimiter.Result
}

func (r result) WithRateLimit(rate ratelimiter.Result) result {
	r.RateLimit = rate
	return r
}

type stubService struct {
	Calls int
}

func (s *stubService) Run(ctx context.Context, input input) (result result, err error) {
	s.Calls++
	return result, nil
}

type testRateLimitingSuite struct {
	suite.Suite
	Now         time.Time
	Logger      *logging.FakeLogger
	RateLimiter *ratelimiter.FakeRateLimiter
	Inner       *stubService
	Service     services.Service[input, result]
}

func (suite *testRateLimitingSuite) SetupTest() {
	suite.Now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.Logger = logging.NewFakeLogger()
	suite.RateLimiter = ratelimiter.NewFakeRateLimiter(func() time.Time { return suite.Now })
	suite.Inner = &stubService{}
	suite.Service = WithRateLimiting[input, result](
		suite.Logger,
		suite.RateLimiter,
		ratelimiter.Limit{Value: 2, Window: 15 * time.Minute},
		suite.Inner,
	)
}

func TestRateLimitingService(t *testing.T) {
	suite.Run(t, new(testRateLimitingSuite))
}

func (suite *testRateLimitingSuite) TestNotLimited() {
	res, err := suite.Service.Run(context.Background(), input{Value: "test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Inner.Calls)
	assert.True(res.RateLimit.IsAllowed)
	assert.Equal(uint32(1), res.RateLimit.Remaining)
	assert.Equal(uint32(2), res.RateLimit.Limit)
}

func (suite *testRateLimitingSuite) TestLimited() {
	ctx := context.Background()
	suite.Service.Run(ctx, input{Value: "test"})
	suite.Service.Run(ctx, input{Value: "test"})
	_, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.ErrorIs(err, ratelimiter.ErrRateLimitExceeded)
	limitErr := &ratelimiter.LimitExceededError{}
	assert.True(errors.As(err, &limitErr))
	assert.Equal(suite.Now.Add(15*time.Minute), limitErr.Result.ResetAt)
	assert.Equal(uint32(0), limitErr.Result.Remaining)
	assert.Equal(2, suite.Inner.Calls)
	assert.Len(suite.Logger.Records(logging.WARNING), 1)
}

func (suite *testRateLimitingSuite) TestWindowResets() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		suite.Service.Run(ctx, input{Value: "test"})
	}
	suite.Now = suite.Now.Add(15 * time.Minute)
	res, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(res.RateLimit.IsAllowed)
	assert.Equal(3, suite.Inner.Calls)
}

func (suite *testRateLimitingSuite) TestKeysAreIndependent() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		suite.Service.Run(ctx, input{Value: "a"})
	}
	_, err := suite.Service.Run(ctx, input{Value: "b"})

	suite.Require().Nil(err)
}

func (suite *testRateLimitingSuite) TestStoreFailureIsReported() {
	suite.RateLimiter.ReturnError = errors.New("connection refused")
	_, err := suite.Service.Run(context.Background(), input{Value: "test"})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(errors.Is(err, ratelimiter.ErrRateLimitExceeded))
	assert.Equal(0, suite.Inner.Calls)
	assert.Len(suite.Logger.Records(logging.ERROR), 1)
}
