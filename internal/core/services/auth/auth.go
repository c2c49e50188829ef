package auth

import (
	"context"
	"errors"
	"fmt"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

func WithToken(ctx context.Context, token admin.Token) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

type Input interface {
	WithAdminSession(claims admin.Claims) Input
}

type service[T Input, S any] struct {
	log               logging.Logger
	tokenVerifier     admin.TokenVerifier
	sessionRepository admin.SessionRepository
	inner             services.Service[T, S]
}

// WithAuthentication requires a signed token in ctx whose session is still
// present in the session store.
func WithAuthentication[T Input, S any](
	log logging.Logger,
	tokenVerifier admin.TokenVerifier,
	sessionRepository admin.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenVerifier == nil {
		panic(e.NewNilArgumentError("tokenVerifier"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		log:               log,
		tokenVerifier:     tokenVerifier,
		sessionRepository: sessionRepository,
		inner:             inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	token, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(admin.Token)
	if !ok || token == "" {
		return result, admin.ErrUnauthenticated
	}
	claims, err := s.tokenVerifier.VerifyToken(token)
	if errors.Is(err, e.ErrNotConfigured) {
		s.log.Error(ctx, "Admin authentication is not configured.", logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Admin token rejected.", logging.Entry("err", err))
		return result, admin.ErrUnauthenticated
	}

	exists, err := s.sessionRepository.Exists(ctx, claims.SessionID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not check admin session.",
			logging.Entry("session", claims.SessionID.Short()),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("could not check admin session: %w", err)
	}
	if !exists {
		s.log.Info(ctx, "Admin session is expired or revoked.", logging.Entry("session", claims.SessionID.Short()))
		return result, admin.ErrUnauthenticated
	}

	return s.inner.Run(ctx, input.WithAdminSession(claims).(T))
}
