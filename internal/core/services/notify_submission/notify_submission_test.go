package notifysubmission

import (
	"context"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	sendsubmissionnotifications "kedilabs/internal/core/services/send_submission_notifications"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Repository *submission.TestRepository
	Sender     *submission.TestEmailSender
	Recorder   *submission.TestNotificationRecorder
	Service    *service
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = submission.NewTestRepository()
	suite.Sender = submission.NewTestEmailSender()
	suite.Recorder = submission.NewTestNotificationRecorder()
	suite.Service = New(
		suite.Logger,
		suite.Repository,
		sendsubmissionnotifications.New(suite.Logger, suite.Sender, suite.Recorder, time.Second),
	).(*service)
}

func TestNotifySubmissionService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	stored, err := s.Repository.Create(context.Background(), submission.CreateInput{
		Form:      submission.MentorForm{Base: submission.Base{Email: "m@example.com"}, FullName: "M"},
		CreatedAt: time.Now(),
	})
	s.Require().Nil(err)

	result, err := s.Service.Run(context.Background(), Input{SubmissionID: stored.ID})
	s.Require().Nil(err)
	s.True(result.Notification.AdminEmail.Success)
	s.True(result.Notification.UserEmail.Success)
	s.Len(s.Sender.AdminNotified, 1)
	s.Len(s.Sender.UsersAcknowledged, 1)
}

func (s *testSuite) TestSubmissionDoesNotExist() {
	_, err := s.Service.Run(context.Background(), Input{SubmissionID: "missing"})
	s.ErrorIs(err, submission.ErrSubmissionDoesNotExist)
	s.Empty(s.Sender.AdminNotified)
	s.Len(s.Logger.Records(logging.ERROR), 1)
}
