package getadminsession

import (
	"context"
	"kedilabs/internal/core/domain/admin"
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

type Result struct {
	Session admin.Claims
}

type service struct{}

// New returns the claims of the authenticated session. It is meant to be
// wrapped with auth.WithAuthentication.
func New() services.Service[Input, Result] {
	return &service{}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	return Result{Session: input.Session}, nil
}
