package checkhealth

import (
	"context"
	"errors"
	"fmt"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/health"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"strings"
	"time"
)

const Version = "1.0.0"

type Input struct{}

type Result struct {
	Report health.Report
}

type service struct {
	log        logging.Logger
	repository submission.Repository
	config     health.ConfigInspector
	now        func() time.Time
}

func New(
	log logging.Logger,
	repository submission.Repository,
	config health.ConfigInspector,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if config == nil {
		panic(e.NewNilArgumentError("config"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, repository: repository, config: config, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	startedAt := s.now()
	report := health.Report{
		Timestamp:   startedAt,
		Version:     Version,
		Environment: s.config.Environment(),
	}

	report.Database = s.checkDatabase(ctx, startedAt)
	report.Email = s.checkEmail()
	report.Env = s.checkEnvironment()
	report.Status = health.Overall(report.Database.Check, report.Email.Check, report.Env.Check)

	if report.Database.Status == health.Healthy {
		report.Statistics = s.readStatistics(ctx, startedAt)
	}
	report.ResponseTime = s.now().Sub(startedAt)

	if report.Status != health.Healthy {
		s.log.Warning(
			ctx,
			"System is not healthy.",
			logging.Entry("status", report.Status),
			logging.Entry("database", report.Database.Status),
			logging.Entry("email", report.Email.Status),
			logging.Entry("missingVariables", report.Env.MissingVariables),
		)
	}
	return Result{Report: report}, nil
}

func (s *service) checkDatabase(ctx context.Context, startedAt time.Time) health.DatabaseCheck {
	err := s.repository.Ping(ctx)
	check := health.DatabaseCheck{ResponseTime: s.now().Sub(startedAt)}
	if err != nil {
		s.log.Error(ctx, "Store ping failed.", logging.Entry("err", err))
		check.Status = health.Unhealthy
		check.Message = "KV database connection failed"
		check.Error = describe(err)
		return check
	}
	check.Status = health.Healthy
	check.Message = "KV database connection successful"
	return check
}

func (s *service) checkEmail() health.EmailCheck {
	issues := s.config.EmailConfigIssues()
	if len(issues) > 0 {
		return health.EmailCheck{
			Check:  health.Check{Status: health.Unhealthy, Message: "Email configuration issues"},
			Issues: issues,
		}
	}
	return health.EmailCheck{
		Check:  health.Check{Status: health.Healthy, Message: "Email configuration valid"},
		Issues: []string{},
	}
}

func (s *service) checkEnvironment() health.EnvironmentCheck {
	missing := s.config.MissingRequired()
	if len(missing) > 0 {
		return health.EnvironmentCheck{
			Check: health.Check{
				Status:  health.Unhealthy,
				Message: fmt.Sprintf("Missing environment variables: %s", strings.Join(missing, ", ")),
			},
			MissingVariables: missing,
		}
	}
	return health.EnvironmentCheck{
		Check:            health.Check{Status: health.Healthy, Message: "All required environment variables present"},
		MissingVariables: []string{},
	}
}

func (s *service) readStatistics(ctx context.Context, now time.Time) *health.StatisticsCheck {
	stats, err := s.repository.Stats(ctx, now)
	if err != nil {
		s.log.Warning(ctx, "Could not read statistics for health check.", logging.Entry("err", err))
		return &health.StatisticsCheck{
			Check: health.Check{
				Status:  health.Warning,
				Message: "Could not retrieve statistics",
				Error:   describe(err),
			},
		}
	}
	return &health.StatisticsCheck{
		Check: health.Check{Status: health.Healthy},
		Data: health.Statistics{
			TotalSubmissions: stats.Total,
			TodaySubmissions: stats.Today,
		},
	}
}

// describe hides driver messages that could carry connection details.
func describe(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unreachable"
	}
}
