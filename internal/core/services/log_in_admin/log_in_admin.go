package loginadmin

import (
	"context"
	"errors"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/services"
	"time"
)

type Input struct {
	Password  string
	IPAddress string
}

func (i Input) GetRateLimitKey() string {
	return "admin_login:" + i.IPAddress
}

type Result struct {
	Token     admin.Token
	Session   admin.Session
	RateLimit ratelimiter.Result
}

func (r Result) WithRateLimit(rate ratelimiter.Result) Result {
	r.RateLimit = rate
	return r
}

type service struct {
	log                logging.Logger
	passwordVerifier   admin.PasswordVerifier
	sessionIDGenerator admin.SessionIDGenerator
	tokenIssuer        admin.TokenIssuer
	sessionRepository  admin.SessionRepository
	now                func() time.Time
}

func New(
	log logging.Logger,
	passwordVerifier admin.PasswordVerifier,
	sessionIDGenerator admin.SessionIDGenerator,
	tokenIssuer admin.TokenIssuer,
	sessionRepository admin.SessionRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if passwordVerifier == nil {
		panic(e.NewNilArgumentError("passwordVerifier"))
	}
	if sessionIDGenerator == nil {
		panic(e.NewNilArgumentError("sessionIDGenerator"))
	}
	if tokenIssuer == nil {
		panic(e.NewNilArgumentError("tokenIssuer"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		passwordVerifier:   passwordVerifier,
		sessionIDGenerator: sessionIDGenerator,
		tokenIssuer:        tokenIssuer,
		sessionRepository:  sessionRepository,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.tokenIssuer.Configured(); err != nil {
		s.log.Error(ctx, "Admin login is not configured.", logging.Entry("err", err))
		return result, err
	}

	ok, err := s.passwordVerifier.VerifyPassword(input.Password)
	if errors.Is(err, e.ErrNotConfigured) {
		s.log.Error(ctx, "Admin login is not configured.", logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not verify admin password.", logging.Entry("err", err))
		return result, err
	}
	if !ok {
		s.log.Warning(ctx, "Failed admin login attempt.", logging.Entry("ip", input.IPAddress))
		return result, admin.ErrInvalidCredentials
	}

	sessionID, err := s.sessionIDGenerator.GenerateSessionID()
	if err != nil {
		s.log.Error(ctx, "Could not generate admin session id.", logging.Entry("err", err))
		return result, err
	}
	session := admin.NewSession(sessionID, s.now())

	token, err := s.tokenIssuer.IssueToken(session)
	if err != nil {
		s.log.Error(ctx, "Could not issue admin token.", logging.Entry("err", err))
		return result, err
	}

	err = s.sessionRepository.Create(ctx, session)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not store admin session.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"Admin successfully authenticated, session created.",
		logging.Entry("session", sessionID.Short()),
		logging.Entry("ip", input.IPAddress),
	)
	return Result{Token: token, Session: session}, nil
}
