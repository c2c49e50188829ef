package logoutadmin

import (
	"context"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/services"
	"kedilabs/internal/core/services/auth"
)

type Input struct {
	Session admin.Claims
}

func (i Input) WithAdminSession(claims admin.Claims) auth.Input {
	i.Session = claims
	return i
}

type Result struct{}

type service struct {
	log               logging.Logger
	sessionRepository admin.SessionRepository
}

func New(log logging.Logger, sessionRepository admin.SessionRepository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{log: log, sessionRepository: sessionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.sessionRepository.Delete(ctx, input.Session.SessionID); err != nil {
		s.log.Error(
			ctx,
			"Could not delete admin session.",
			logging.Entry("session", input.Session.SessionID.Short()),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.log.Info(ctx, "Admin logged out.", logging.Entry("session", input.Session.SessionID.Short()))
	return result, nil
}
