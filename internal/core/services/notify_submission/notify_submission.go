package notifysubmission

import (
	"context"
	"fmt"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	sendsubmissionnotifications "kedilabs/internal/core/services/send_submission_notifications"
)

type Input struct {
	SubmissionID submission.ID
}

type Result struct {
	Notification submission.NotificationResult
}

type service struct {
	log        logging.Logger
	repository submission.Repository
	notifier   services.Service[sendsubmissionnotifications.Input, sendsubmissionnotifications.Result]
}

// New loads a stored submission and sends its notifications. It is used by
// queue consumers that only receive the submission id.
func New(
	log logging.Logger,
	repository submission.Repository,
	notifier services.Service[sendsubmissionnotifications.Input, sendsubmissionnotifications.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	return &service{log: log, repository: repository, notifier: notifier}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	sub, err := s.repository.GetByID(ctx, input.SubmissionID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not load submission for notifications.",
			logging.Entry("submissionId", input.SubmissionID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("could not load submission %s: %w", input.SubmissionID, err)
	}

	notified, err := s.notifier.Run(ctx, sendsubmissionnotifications.Input{Submission: sub})
	if err != nil {
		return result, err
	}
	result.Notification = notified.Notification
	return result, nil
}
