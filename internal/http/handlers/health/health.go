package health

import (
	"fmt"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/health"
	"kedilabs/internal/core/services"
	checkhealth "kedilabs/internal/core/services/check_health"
	"kedilabs/internal/http/handlers/response"
	"net/http"
	"time"
)

type Handler struct {
	service services.Service[checkhealth.Input, checkhealth.Result]
	now     func() time.Time
}

func New(
	service services.Service[checkhealth.Input, checkhealth.Result],
	now func() time.Time,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{service: service, now: now}
}

type DatabaseCheck struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
	ResponseTime string `json:"responseTime"`
}

type EmailCheck struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Issues  []string `json:"issues"`
}

type EnvironmentCheck struct {
	Status           string   `json:"status"`
	Message          string   `json:"message"`
	MissingVariables []string `json:"missingVariables"`
}

type StatisticsData struct {
	TotalSubmissions int64 `json:"totalSubmissions"`
	TodaySubmissions int64 `json:"todaySubmissions"`
}

type StatisticsCheck struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    *StatisticsData `json:"data,omitempty"`
}

type Checks struct {
	Database    DatabaseCheck    `json:"database"`
	Email       EmailCheck       `json:"email"`
	Environment EnvironmentCheck `json:"environment"`
	Statistics  *StatisticsCheck `json:"statistics,omitempty"`
}

type Result struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Version      string `json:"version"`
	Environment  string `json:"environment"`
	Checks       Checks `json:"checks"`
	ResponseTime string `json:"responseTime"`
}

type failure struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.SetNoCache(rw)

	result, err := h.service.Run(r.Context(), checkhealth.Input{})
	if err != nil {
		response.Render(rw, failure{
			Status:    health.Unhealthy.String(),
			Timestamp: c.FormatTime(h.now()),
			Error:     "Health check failed",
			Message:   "Unable to complete health checks",
		}, http.StatusInternalServerError)
		return
	}

	report := result.Report
	response.Render(rw, fromReport(report), statusCode(report.Status))
}

func statusCode(status health.Status) int {
	switch status {
	case health.Healthy:
		return http.StatusOK
	case health.Degraded:
		return http.StatusPartialContent
	default:
		return http.StatusInternalServerError
	}
}

func fromReport(report health.Report) Result {
	result := Result{
		Status:      report.Status.String(),
		Timestamp:   c.FormatTime(report.Timestamp),
		Version:     report.Version,
		Environment: report.Environment,
		Checks: Checks{
			Database: DatabaseCheck{
				Status:       report.Database.Status.String(),
				Message:      report.Database.Message,
				Error:        report.Database.Error,
				ResponseTime: millis(report.Database.ResponseTime),
			},
			Email: EmailCheck{
				Status:  report.Email.Status.String(),
				Message: report.Email.Message,
				Issues:  nonNil(report.Email.Issues),
			},
			Environment: EnvironmentCheck{
				Status:           report.Env.Status.String(),
				Message:          report.Env.Message,
				MissingVariables: nonNil(report.Env.MissingVariables),
			},
		},
		ResponseTime: millis(report.ResponseTime),
	}

	if stats := report.Statistics; stats != nil {
		check := &StatisticsCheck{
			Status:  stats.Status.String(),
			Message: stats.Message,
			Error:   stats.Error,
		}
		if stats.Status == health.Healthy {
			check.Data = &StatisticsData{
				TotalSubmissions: stats.Data.TotalSubmissions,
				TodaySubmissions: stats.Data.TodaySubmissions,
			}
		}
		result.Checks.Statistics = check
	}
	return result
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
