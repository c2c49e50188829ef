package ratelimiter

import (
	"context"
	"kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/db"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Limiter *Redis
}

func (suite *testSuite) SetupTest() {
	client := db.CreateTestClient(suite.T())
	suite.Limiter = NewRedis(client, time.Now, time.Second)
}

func TestRedisRateLimiter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestFixedWindow() {
	ctx := context.Background()
	key := "test:" + uuid.NewString()
	limit := ratelimiter.Limit{Value: 3, Window: 300 * time.Millisecond}

	for i := 1; i <= 3; i++ {
		result, err := suite.Limiter.CheckLimit(ctx, key, limit)
		suite.Require().Nil(err)
		suite.True(result.IsAllowed)
		suite.Equal(uint32(3-i), result.Remaining)
	}

	result, err := suite.Limiter.CheckLimit(ctx, key, limit)
	suite.Require().Nil(err)
	suite.False(result.IsAllowed)
	suite.Equal(uint32(0), result.Remaining)
	suite.True(result.ResetAt.After(time.Now()))

	time.Sleep(350 * time.Millisecond)

	result, err = suite.Limiter.CheckLimit(ctx, key, limit)
	suite.Require().Nil(err)
	suite.True(result.IsAllowed)
	suite.Equal(uint32(2), result.Remaining)
}

func (suite *testSuite) TestKeysAreIndependent() {
	ctx := context.Background()
	limit := ratelimiter.Limit{Value: 1, Window: time.Minute}
	a := "test:" + uuid.NewString()
	b := "test:" + uuid.NewString()

	_, err := suite.Limiter.CheckLimit(ctx, a, limit)
	suite.Require().Nil(err)
	result, err := suite.Limiter.CheckLimit(ctx, a, limit)
	suite.Require().Nil(err)
	suite.False(result.IsAllowed)

	result, err = suite.Limiter.CheckLimit(ctx, b, limit)
	suite.Require().Nil(err)
	suite.True(result.IsAllowed)
}
