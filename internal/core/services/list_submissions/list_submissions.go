package listsubmissions

import (
	"context"
	"kedilabs/internal/core/domain/admin"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"kedilabs/internal/core/services/auth"
	"time"
)

type Input struct {
	Session         admin.Claims
	Page            int
	Limit           int
	Status          c.Optional[submission.Status]
	StakeholderType c.Optional[submission.StakeholderType]
	IncludeStats    bool
}

func (i Input) WithAdminSession(claims admin.Claims) auth.Input {
	i.Session = claims
	return i
}

type Result struct {
	Submissions []submission.Submission
	Pagination  submission.Pagination
	Stats       c.Optional[submission.Stats]
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
	listInput := submission.ListInput{
		Page:   input.Page,
		Limit:  input.Limit,
		Status: input.Status,
	}.Normalized()

	list, err := s.repository.List(ctx, listInput)
	if err != nil {
		s.log.Error(ctx, "Could not list submissions.", logging.Entry("err", err))
		return result, err
	}

	result.Pagination = list.Pagination
	result.Submissions = list.Submissions
	// Stakeholder type filtering only narrows the current page.
	if input.StakeholderType.IsPresent {
		result.Submissions = make([]submission.Submission, 0, len(list.Submissions))
		for _, sub := range list.Submissions {
			if sub.StakeholderType() == input.StakeholderType.Value {
				result.Submissions = append(result.Submissions, sub)
			}
		}
	}

	if input.IncludeStats {
		stats, err := s.repository.Stats(ctx, s.now())
		if err != nil {
			s.log.Error(ctx, "Could not read submission statistics.", logging.Entry("err", err))
			return result, err
		}
		result.Stats = c.NewOptional(stats, true)
	}

	s.log.Info(
		ctx,
		"Submissions listed.",
		logging.Entry("page", listInput.Page),
		logging.Entry("limit", listInput.Limit),
		logging.Entry("count", len(result.Submissions)),
		logging.Entry("session", input.Session.SessionID.Short()),
	)
	return result, nil
}
