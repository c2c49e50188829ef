package createsubmission

import (
	"context"
	"errors"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"time"
)

type Input struct {
	Raw       map[string]any
	IPAddress string
	UserAgent string
}

func (i Input) GetRateLimitKey() string {
	return "contact:" + i.IPAddress
}

type Result struct {
	Submission submission.Submission
	RateLimit  ratelimiter.Result
}

func (r Result) WithRateLimit(rate ratelimiter.Result) Result {
	r.RateLimit = rate
	return r
}

type service struct {
	log        logging.Logger
	validator  submission.Validator
	repository submission.Repository
	now        func() time.Time
}

func New(
	log logging.Logger,
	validator submission.Validator,
	repository submission.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if validator == nil {
		panic(e.NewNilArgumentError("validator"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		validator:  validator,
		repository: repository,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	validation := s.validator.Validate(input.Raw)
	if !validation.IsValid() {
		s.log.Info(
			ctx,
			"Submission rejected by validation.",
			logging.Entry("errors", len(validation.Errors)),
		)
		return result, submission.NewValidationError(validation.Errors)
	}

	now := s.now()
	sub, err := s.repository.Create(ctx, submission.CreateInput{
		Form: validation.Form,
		Metadata: submission.Metadata{
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
			Timestamp: now,
			Source:    submission.SourceWebsite,
		},
		CreatedAt: now,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not store submission.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"Submission stored.",
		logging.Entry("submissionId", sub.ID),
		logging.Entry("stakeholderType", sub.StakeholderType()),
	)
	return Result{Submission: sub}, nil
}
