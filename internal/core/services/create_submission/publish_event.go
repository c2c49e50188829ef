package createsubmission

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
)

type serviceWithEventPublishing struct {
	log       logging.Logger
	publisher submission.EventPublisher
	inner     services.Service[Input, Result]
}

func NewWithEventPublishing(
	log logging.Logger,
	publisher submission.EventPublisher,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithEventPublishing{log: log, publisher: publisher, inner: inner}
}

func (s *serviceWithEventPublishing) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}
	if err := s.publisher.PublishCreated(ctx, result.Submission); err != nil {
		s.log.Warning(
			ctx,
			"Could not publish submission event.",
			logging.Entry("submissionId", result.Submission.ID),
			logging.Entry("err", err),
		)
	}
	return result, nil
}
