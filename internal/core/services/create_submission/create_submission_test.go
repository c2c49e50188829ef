package createsubmission

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var NOW = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

var FORM = submission.StudentForm{
	Base:               submission.Base{Email: "a@b.com", Message: "Interested in joining, ten+ chars."},
	FullName:           "Jane",
	Institution:        "X U",
	StudyLevel:         "undergraduate",
	FieldOfStudy:       "CS",
	GraduationYear:     2026,
	InterestedPrograms: []string{"internship"},
	Skills:             []string{"programming"},
}

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Validator  *submission.TestValidator
	Repository *submission.TestRepository
	Queue      *submission.TestNotificationQueue
	Publisher  *submission.TestEventPublisher
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Validator = submission.NewTestValidator(submission.ValidationResult{Form: FORM})
	suite.Repository = submission.NewTestRepository()
	suite.Queue = submission.NewTestNotificationQueue()
	suite.Publisher = submission.NewTestEventPublisher()
	suite.Service = NewWithEventPublishing(
		suite.Logger,
		suite.Publisher,
		NewWithNotifications(
			suite.Logger,
			suite.Queue,
			New(
				suite.Logger,
				suite.Validator,
				suite.Repository,
				func() time.Time { return NOW },
			),
		),
	)
}

func TestCreateSubmissionService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(
		context.Background(),
		Input{Raw: map[string]any{"stakeholderType": "student"}, IPAddress: "10.0.0.1", UserAgent: "test"},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEmpty(result.Submission.ID)
	assert.Equal(submission.StatusNew, result.Submission.Status)
	assert.Equal(FORM, result.Submission.Form)
	assert.Equal(NOW, result.Submission.CreatedAt)
	assert.Equal(submission.Metadata{
		IPAddress: "10.0.0.1",
		UserAgent: "test",
		Timestamp: NOW,
		Source:    submission.SourceWebsite,
	}, result.Submission.Metadata)

	stored, err := suite.Repository.GetByID(context.Background(), result.Submission.ID)
	assert.Nil(err)
	assert.Equal(submission.StatusNew, stored.Status)
	assert.Len(suite.Queue.Enqueued, 1)
	assert.Len(suite.Publisher.Published, 1)
}

func (suite *testSuite) TestValidationFailure() {
	suite.Validator.Result = submission.ValidationResult{
		Errors: []submission.FieldError{{Field: "fullName", Message: "Full name is required", Code: submission.CodeRequired}},
	}
	_, err := suite.Service.Run(context.Background(), Input{Raw: map[string]any{}})

	assert := suite.Require()
	validationErr := &submission.ValidationError{}
	assert.True(errors.As(err, &validationErr))
	assert.Equal("fullName", validationErr.Errors[0].Field)
	assert.Equal(0, suite.Repository.Count())
	assert.Len(suite.Queue.Enqueued, 0)
	assert.Len(suite.Publisher.Published, 0)
}

func (suite *testSuite) TestStoreFailure() {
	suite.Repository.CreateError = errors.New("connection refused")
	_, err := suite.Service.Run(context.Background(), Input{Raw: map[string]any{}})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Len(suite.Queue.Enqueued, 0)
	assert.Len(suite.Logger.Records(logging.ERROR), 1)
}

func (suite *testSuite) TestQueueFailureDoesNotFailSubmission() {
	suite.Queue.Error = errors.New("queue is full")
	result, err := suite.Service.Run(context.Background(), Input{Raw: map[string]any{}})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEmpty(result.Submission.ID)
	assert.Equal(1, suite.Repository.Count())
	assert.Len(suite.Logger.Records(logging.ERROR), 1)
}

func (suite *testSuite) TestPublishFailureDoesNotFailSubmission() {
	suite.Publisher.Error = errors.New("no stream")
	_, err := suite.Service.Run(context.Background(), Input{Raw: map[string]any{}})

	suite.Require().Nil(err)
	suite.Require().Len(suite.Queue.Enqueued, 1)
}
