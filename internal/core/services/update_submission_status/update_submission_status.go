package updatesubmissionstatus

import (
	"context"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"kedilabs/internal/core/services/auth"
	"time"
)

type Input struct {
	Session      admin.Claims
	SubmissionID submission.ID
	Status       submission.Status
}

func (i Input) WithAdminSession(claims admin.Claims) auth.Input {
	i.Session = claims
	return i
}

type Result struct {
	SubmissionID submission.ID
	Status       submission.Status
	UpdatedAt    time.Time
}

type service struct {
	log        logging.Logger
	repository submission.Repository
	now        func() time.Time
}

func New(
	log logging.Logger,
	repository submission.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, repository: repository, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Status == submission.StatusUnknown {
		return result, submission.ErrInvalidStatus
	}

	now := s.now()
	updated, err := s.repository.UpdateStatus(ctx, submission.UpdateStatusInput{
		ID:        input.SubmissionID,
		Status:    input.Status,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update submission status.",
			logging.Entry("submissionId", input.SubmissionID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !updated {
		return result, submission.ErrSubmissionDoesNotExist
	}

	s.log.Info(
		ctx,
		"Submission status updated.",
		logging.Entry("submissionId", input.SubmissionID),
		logging.Entry("status", input.Status),
	)
	return Result{SubmissionID: input.SubmissionID, Status: input.Status, UpdatedAt: now}, nil
}
