package health

import (
	"context"
	"encoding/json"
	"errors"
	"kedilabs/internal/core/domain/health"
	checkhealth "kedilabs/internal/core/services/check_health"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type stubService struct {
	report health.Report
	err    error
}

func (s *stubService) Run(ctx context.Context, input checkhealth.Input) (checkhealth.Result, error) {
	return checkhealth.Result{Report: s.report}, s.err
}

func healthyReport() health.Report {
	return health.Report{
		Status:      health.Healthy,
		Timestamp:   Now,
		Version:     checkhealth.Version,
		Environment: "production",
		Database: health.DatabaseCheck{
			Check:        health.Check{Status: health.Healthy, Message: "KV database connection successful"},
			ResponseTime: 12 * time.Millisecond,
		},
		Email: health.EmailCheck{
			Check: health.Check{Status: health.Healthy, Message: "Email configuration valid"},
		},
		Env: health.EnvironmentCheck{
			Check: health.Check{Status: health.Healthy, Message: "All required environment variables present"},
		},
		Statistics: &health.StatisticsCheck{
			Check: health.Check{Status: health.Healthy},
			Data:  health.Statistics{TotalSubmissions: 42, TodaySubmissions: 3},
		},
		ResponseTime: 15 * time.Millisecond,
	}
}

func serve(s *stubService) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	New(s, func() time.Time { return Now }).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := make(map[string]any)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealthy(t *testing.T) {
	rr := serve(&stubService{report: healthyReport()})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
	assert.Equal(t, "0", rr.Header().Get("Expires"))

	body := decode(t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "2026-03-10T12:00:00.000Z", body["timestamp"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "production", body["environment"])
	assert.Equal(t, "15ms", body["responseTime"])

	checks := body["checks"].(map[string]any)
	assert.Equal(t, map[string]any{
		"status":       "healthy",
		"message":      "KV database connection successful",
		"responseTime": "12ms",
	}, checks["database"])
	assert.Equal(t, map[string]any{
		"status":  "healthy",
		"message": "Email configuration valid",
		"issues":  []any{},
	}, checks["email"])
	assert.Equal(t, []any{}, checks["environment"].(map[string]any)["missingVariables"])
	assert.Equal(t, map[string]any{
		"status": "healthy",
		"data":   map[string]any{"totalSubmissions": float64(42), "todaySubmissions": float64(3)},
	}, checks["statistics"])
}

func TestDegradedAnswersPartialContent(t *testing.T) {
	report := healthyReport()
	report.Status = health.Degraded
	report.Email = health.EmailCheck{
		Check:  health.Check{Status: health.Unhealthy, Message: "Email configuration issues"},
		Issues: []string{"FROM_EMAIL is not set"},
	}

	rr := serve(&stubService{report: report})

	assert.Equal(t, http.StatusPartialContent, rr.Code)
	email := decode(t, rr)["checks"].(map[string]any)["email"].(map[string]any)
	assert.Equal(t, []any{"FROM_EMAIL is not set"}, email["issues"])
}

func TestUnhealthyStore(t *testing.T) {
	report := healthyReport()
	report.Status = health.Unhealthy
	report.Database.Check = health.Check{
		Status:  health.Unhealthy,
		Message: "KV database connection failed",
		Error:   "timeout",
	}
	report.Statistics = nil

	rr := serve(&stubService{report: report})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	checks := decode(t, rr)["checks"].(map[string]any)
	assert.Equal(t, "timeout", checks["database"].(map[string]any)["error"])
	_, ok := checks["statistics"]
	assert.False(t, ok)
}

func TestStatisticsWarning(t *testing.T) {
	report := healthyReport()
	report.Statistics = &health.StatisticsCheck{
		Check: health.Check{Status: health.Warning, Message: "Could not retrieve statistics", Error: "timeout"},
	}

	rr := serve(&stubService{report: report})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{
		"status":  "warning",
		"message": "Could not retrieve statistics",
		"error":   "timeout",
	}, decode(t, rr)["checks"].(map[string]any)["statistics"])
}

func TestServiceFailure(t *testing.T) {
	rr := serve(&stubService{err: errors.New("boom")})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "Health check failed", body["error"])
	assert.NotContains(t, rr.Body.String(), "boom")
}
