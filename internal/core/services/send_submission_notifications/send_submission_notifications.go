package sendsubmissionnotifications

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	KindAdmin = "admin"
	KindUser  = "user"
)

type Input struct {
	Submission submission.Submission
}

type Result struct {
	Notification submission.NotificationResult
}

type service struct {
	log      logging.Logger
	sender   submission.EmailSender
	recorder submission.NotificationRecorder
	timeout  time.Duration
}

// New sends the admin notification and the acknowledgment concurrently.
// Each send is bounded by timeout and its failure is recorded in the result;
// Run itself never fails.
func New(
	log logging.Logger,
	sender submission.EmailSender,
	recorder submission.NotificationRecorder,
	timeout time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	return &service{log: log, sender: sender, recorder: recorder, timeout: timeout}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	sub := input.Submission
	var group errgroup.Group
	group.Go(func() error {
		result.Notification.AdminEmail = s.send(ctx, KindAdmin, sub, s.sender.SendAdminNotification)
		return nil
	})
	group.Go(func() error {
		result.Notification.UserEmail = s.send(ctx, KindUser, sub, s.sender.SendAcknowledgment)
		return nil
	})
	group.Wait()

	s.log.Info(
		ctx,
		"Submission notifications processed.",
		logging.Entry("submissionId", sub.ID),
		logging.Entry("adminEmail", result.Notification.AdminEmail.Success),
		logging.Entry("userEmail", result.Notification.UserEmail.Success),
	)
	return result, nil
}

func (s *service) send(
	ctx context.Context,
	kind string,
	sub submission.Submission,
	send func(context.Context, submission.Submission) error,
) submission.SendResult {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := send(ctx, sub)
	s.recorder.RecordNotification(kind, err == nil)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send notification email.",
			logging.Entry("kind", kind),
			logging.Entry("submissionId", sub.ID),
			logging.Entry("err", err),
		)
		return submission.SendResult{Error: err.Error()}
	}
	return submission.SendResult{Success: true}
}
