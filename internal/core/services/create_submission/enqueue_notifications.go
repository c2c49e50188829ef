package createsubmission

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
)

type serviceWithNotifications struct {
	log   logging.Logger
	queue submission.NotificationQueue
	inner services.Service[Input, Result]
}

// NewWithNotifications hands stored submissions over to the notification
// queue. A queue failure is logged and does not fail the submission.
func NewWithNotifications(
	log logging.Logger,
	queue submission.NotificationQueue,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithNotifications{log: log, queue: queue, inner: inner}
}

func (s *serviceWithNotifications) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	if err := s.queue.Enqueue(ctx, result.Submission); err != nil {
		s.log.Error(
			ctx,
			"Could not enqueue submission notifications.",
			logging.Entry("submissionId", result.Submission.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}
	s.log.Debug(ctx, "Submission notifications enqueued.", logging.Entry("submissionId", result.Submission.ID))
	return result, nil
}
