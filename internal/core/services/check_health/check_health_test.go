package checkhealth

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/health"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var NOW = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Repository *submission.TestRepository
	Config     *health.FakeConfigInspector
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Repository = submission.NewTestRepository()
	suite.Config = health.NewFakeConfigInspector()
	suite.Service = New(logging.NewFakeLogger(), suite.Repository, suite.Config, func() time.Time { return NOW })
}

func TestCheckHealthService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestHealthy() {
	_, err := suite.Repository.Create(context.Background(), submission.CreateInput{
		Form: submission.StudentForm{}, CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	report := result.Report
	assert.Equal(health.Healthy, report.Status)
	assert.Equal(Version, report.Version)
	assert.Equal("test", report.Environment)
	assert.Equal(health.Healthy, report.Database.Status)
	assert.Equal(health.Healthy, report.Email.Status)
	assert.Equal(health.Healthy, report.Env.Status)
	assert.NotNil(report.Statistics)
	assert.Equal(health.Statistics{TotalSubmissions: 1, TodaySubmissions: 1}, report.Statistics.Data)
}

func (suite *testSuite) TestStoreUnreachable() {
	suite.Repository.PingError = errors.New("dial tcp 10.1.2.3:6379: connection refused")

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(health.Unhealthy, result.Report.Status)
	assert.Equal(health.Unhealthy, result.Report.Database.Status)
	assert.Equal("unreachable", result.Report.Database.Error)
	assert.Nil(result.Report.Statistics)
}

func (suite *testSuite) TestStoreTimeout() {
	suite.Repository.PingError = context.DeadlineExceeded

	result, err := suite.Service.Run(context.Background(), Input{})

	suite.Require().Nil(err)
	suite.Equal("timeout", result.Report.Database.Error)
}

func (suite *testSuite) TestEmailMisconfiguredIsDegraded() {
	suite.Config.EmailIssues = []string{"FROM_EMAIL is not set"}

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(health.Degraded, result.Report.Status)
	assert.Equal([]string{"FROM_EMAIL is not set"}, result.Report.Email.Issues)
}

func (suite *testSuite) TestMissingVariablesIsUnhealthy() {
	suite.Config.Missing = []string{"JWT_SECRET", "SITE_URL"}

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(health.Unhealthy, result.Report.Status)
	assert.Equal("Missing environment variables: JWT_SECRET, SITE_URL", result.Report.Env.Message)
}

func (suite *testSuite) TestStatisticsFailureIsWarning() {
	suite.Repository.StatsError = errors.New("timeout")

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(health.Healthy, result.Report.Status)
	assert.Equal(health.Warning, result.Report.Statistics.Status)
}
