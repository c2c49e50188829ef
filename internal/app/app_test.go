package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"kedilabs/internal/app/deps"
	"kedilabs/internal/app/services"
	"kedilabs/internal/config"
	"kedilabs/internal/core/domain/admin"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/implementations/metrics"
	submissionvalidator "kedilabs/internal/implementations/submission_validator"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	Now         time.Time
	Repository  *submission.TestRepository
	Sessions    *admin.TestSessionRepository
	RateLimiter *ratelimiter.FakeRateLimiter
	EmailSender *submission.TestEmailSender
	Events      *submission.TestEventPublisher
	Tokens      *admin.FakeTokenAuthority
	Services    *services.Services
	Server      *http.Server
}

func (suite *testSuite) SetupTest() {
	suite.Now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return suite.Now }

	suite.Repository = submission.NewTestRepository()
	suite.Sessions = admin.NewTestSessionRepository(now)
	suite.RateLimiter = ratelimiter.NewFakeRateLimiter(now)
	suite.EmailSender = submission.NewTestEmailSender()
	suite.Events = submission.NewTestEventPublisher()
	suite.Tokens = admin.NewFakeTokenAuthority(now)

	d := &deps.Deps{
		Config: &config.Config{
			Port:                  8080,
			AppEnv:                "test",
			AllowedOrigins:        []string{"*"},
			AdminPasswordHash:     "hash",
			JWTSecret:             "secret",
			SiteURL:               "https://kedilabs.net",
			AdminEmail:            "admin@kedilabs.net",
			FromEmail:             "noreply@kedilabs.net",
			RedisURL:              "redis://localhost:6379/0",
			StoreTimeout:          time.Second,
			EmailTimeout:          time.Second,
			EmailProvider:         config.EmailProviderSES,
			AwsRegion:             "eu-west-1",
			AwsAccessKey:          "access",
			AwsSecretKey:          "secret",
			NotificationWorkers:   1,
			NotificationQueueSize: 16,
		},
		Logger:               logging.NewFakeLogger(),
		SseServer:            sse.New(),
		Metrics:              metrics.NewPrometheus(),
		Now:                  now,
		SubmissionRepository: suite.Repository,
		SessionRepository:    suite.Sessions,
		RateLimiter:          suite.RateLimiter,
		SubmissionValidator:  submissionvalidator.New(),
		EmailSender:          suite.EmailSender,
		EventPublisher:       suite.Events,
		PasswordVerifier:     admin.NewFakePasswordVerifier("correct-password"),
		SessionIDGenerator:   admin.NewFakeSessionIDGenerator("session-"),
		TokenIssuer:          suite.Tokens,
		TokenVerifier:        suite.Tokens,
	}
	suite.Services = services.InitServices(d)
	suite.Server = InitHttpServer(d, suite.Services)
}

func (suite *testSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	suite.Nil(suite.Services.NotificationPool.Stop(ctx))
}

func TestApp(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) do(method string, target string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	switch raw := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(raw)
	default:
		data, err := json.Marshal(body)
		suite.Require().Nil(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "203.0.113.7:51234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	suite.Server.Handler.ServeHTTP(rr, req)

	payload := make(map[string]any)
	if rr.Body.Len() > 0 {
		suite.Require().Nil(json.Unmarshal(rr.Body.Bytes(), &payload), rr.Body.String())
	}
	return rr, payload
}

func (suite *testSuite) logIn() string {
	rr, payload := suite.do(http.MethodPost, "/api/admin/login", map[string]any{"password": "correct-password"}, "")
	suite.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return payload["token"].(string)
}

func studentForm() map[string]any {
	return map[string]any{
		"email":              "a@b.com",
		"stakeholderType":    "student",
		"fullName":           "Jane",
		"institution":        "X U",
		"studyLevel":         "undergraduate",
		"fieldOfStudy":       "CS",
		"graduationYear":     2026,
		"interestedPrograms": []string{"internship"},
		"skills":             []string{"programming"},
		"message":            "Interested in joining, ten+ chars.",
	}
}

func (suite *testSuite) TestSubmitContactForm() {
	suite.Services.NotificationPool.Start(context.Background())

	rr, payload := suite.do(http.MethodPost, "/api/contact", studentForm(), "")

	suite.Equal(http.StatusOK, rr.Code, rr.Body.String())
	suite.Equal(true, payload["success"])
	suite.NotEmpty(payload["submissionId"])
	suite.Equal("5", rr.Header().Get("X-RateLimit-Limit"))
	suite.Equal("4", rr.Header().Get("X-RateLimit-Remaining"))

	stored, err := suite.Repository.GetByID(context.Background(), submission.ID(payload["submissionId"].(string)))
	suite.Require().Nil(err)
	suite.Equal(submission.StatusNew, stored.Status)
	suite.Equal("203.0.113.7", stored.Metadata.IPAddress)
	suite.Len(suite.Events.Published, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	suite.Nil(suite.Services.NotificationPool.Stop(ctx))
	suite.Len(suite.EmailSender.AdminNotified, 1)
	suite.Len(suite.EmailSender.UsersAcknowledged, 1)
}

func (suite *testSuite) TestSubmitContactFormIsRateLimitedPerIP() {
	for i := 0; i < 5; i++ {
		rr, _ := suite.do(http.MethodPost, "/api/contact", studentForm(), "")
		suite.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	}

	rr, payload := suite.do(http.MethodPost, "/api/contact", studentForm(), "")

	suite.Equal(http.StatusTooManyRequests, rr.Code)
	suite.Equal("Too many requests", payload["error"])
	suite.GreaterOrEqual(int64(payload["resetTime"].(float64)), suite.Now.UnixMilli())
	suite.Equal("0", rr.Header().Get("X-RateLimit-Remaining"))
	suite.Equal(5, suite.Repository.Count())
}

func (suite *testSuite) TestSubmitInvalidContactForm() {
	form := studentForm()
	delete(form, "institution")

	rr, payload := suite.do(http.MethodPost, "/api/contact", form, "")

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.Equal("Validation failed", payload["error"])
	suite.Equal(0, suite.Repository.Count())
}

func (suite *testSuite) TestAdminLoginIsRateLimited() {
	for i := 0; i < 5; i++ {
		rr, _ := suite.do(http.MethodPost, "/api/admin/login", map[string]any{"password": "wrong"}, "")
		suite.Require().Equal(http.StatusUnauthorized, rr.Code)
	}

	rr, payload := suite.do(http.MethodPost, "/api/admin/login", map[string]any{"password": "correct-password"}, "")

	suite.Equal(http.StatusTooManyRequests, rr.Code)
	suite.Equal("Too many login attempts", payload["error"])
	suite.Empty(suite.Sessions.Created)
}

func (suite *testSuite) TestUpdateUnknownSubmission() {
	token := suite.logIn()

	rr, payload := suite.do(
		http.MethodPut,
		"/api/admin/submissions",
		map[string]any{"submissionId": "does-not-exist", "status": "read"},
		token,
	)

	suite.Equal(http.StatusNotFound, rr.Code)
	suite.Equal("Submission not found", payload["error"])
}

func (suite *testSuite) TestAdminFlow() {
	rr, payload := suite.do(http.MethodPost, "/api/contact", studentForm(), "")
	suite.Require().Equal(http.StatusOK, rr.Code)
	id := payload["submissionId"].(string)

	rr, _ = suite.do(http.MethodGet, "/api/admin/submissions", nil, "")
	suite.Equal(http.StatusUnauthorized, rr.Code)

	token := suite.logIn()

	rr, payload = suite.do(
		http.MethodPut,
		"/api/admin/submissions",
		map[string]any{"submissionId": id, "status": "read"},
		token,
	)
	suite.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	rr, payload = suite.do(http.MethodGet, "/api/admin/submissions?status=read&page=1&limit=10", nil, token)
	suite.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	data := payload["data"].(map[string]any)
	items := data["submissions"].([]any)
	suite.Require().Len(items, 1)
	suite.Equal(id, items[0].(map[string]any)["id"])
	suite.Equal(float64(1), data["pagination"].(map[string]any)["total"])
	suite.NotNil(data["statistics"])

	rr, _ = suite.do(http.MethodPost, "/api/admin/logout", nil, token)
	suite.Equal(http.StatusOK, rr.Code)

	rr, _ = suite.do(http.MethodGet, "/api/admin/submissions", nil, token)
	suite.Equal(http.StatusUnauthorized, rr.Code)
}

func (suite *testSuite) TestAdminEndpointsRejectAnonymousRequestsBeforeReadingInput() {
	cases := map[string]struct {
		method string
		target string
		body   any
	}{
		"update with unknown status": {
			method: http.MethodPut,
			target: "/api/admin/submissions",
			body:   map[string]any{"submissionId": "x", "status": "bogus"},
		},
		"update with malformed body": {
			method: http.MethodPut,
			target: "/api/admin/submissions",
			body:   []byte("{"),
		},
		"update with missing fields": {
			method: http.MethodPut,
			target: "/api/admin/submissions",
			body:   map[string]any{},
		},
		"list with unknown status": {
			method: http.MethodGet,
			target: "/api/admin/submissions?status=bogus",
		},
		"list with unknown stakeholder type": {
			method: http.MethodGet,
			target: "/api/admin/submissions?stakeholderType=alien",
		},
	}
	for name, tc := range cases {
		rr, payload := suite.do(tc.method, tc.target, tc.body, "")
		suite.Equal(http.StatusUnauthorized, rr.Code, name)
		suite.Equal("Unauthorized", payload["error"], name)

		rr, _ = suite.do(tc.method, tc.target, tc.body, "not-a-session")
		suite.Equal(http.StatusUnauthorized, rr.Code, name)
	}
}

func (suite *testSuite) TestAdminStillValidatesInputAfterLogIn() {
	token := suite.logIn()

	rr, _ := suite.do(
		http.MethodPut,
		"/api/admin/submissions",
		map[string]any{"submissionId": "x", "status": "bogus"},
		token,
	)
	suite.Equal(http.StatusBadRequest, rr.Code)

	rr, payload := suite.do(http.MethodPut, "/api/admin/submissions", []byte("{"), token)
	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.Equal("Invalid request body", payload["error"])

	rr, _ = suite.do(http.MethodGet, "/api/admin/submissions?status=bogus", nil, token)
	suite.Equal(http.StatusBadRequest, rr.Code)
}

func (suite *testSuite) TestAdminWithoutSigningSecret() {
	suite.Tokens.ConfigError = e.NewConfigurationError("JWT_SECRET")

	rr, payload := suite.do(http.MethodPost, "/api/admin/login", map[string]any{"password": "wrong"}, "")
	suite.Equal(http.StatusInternalServerError, rr.Code)
	suite.Equal("Server configuration error", payload["error"])
	suite.Equal("Authentication system not properly configured", payload["message"])

	rr, _ = suite.do(http.MethodGet, "/api/admin/submissions", nil, "signed.session-1")
	suite.Equal(http.StatusInternalServerError, rr.Code)

	rr, _ = suite.do(
		http.MethodPut,
		"/api/admin/submissions",
		map[string]any{"submissionId": "x", "status": "read"},
		"signed.session-1",
	)
	suite.Equal(http.StatusInternalServerError, rr.Code)
	suite.Empty(suite.Sessions.Created)
}

func (suite *testSuite) TestOversizedBodyIsRejected() {
	form := studentForm()
	form["message"] = strings.Repeat("a", MaxRequestBodySize)

	rr, payload := suite.do(http.MethodPost, "/api/contact", form, "")

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.Equal("Invalid request body", payload["error"])
	suite.Equal(0, suite.Repository.Count())
}

func (suite *testSuite) TestHealthWithUnreachableStore() {
	suite.Repository.PingError = errors.New("connection refused")

	rr, payload := suite.do(http.MethodGet, "/api/health", nil, "")

	suite.Equal(http.StatusInternalServerError, rr.Code)
	suite.Equal("unhealthy", payload["status"])
	checks := payload["checks"].(map[string]any)
	suite.Equal("unhealthy", checks["database"].(map[string]any)["status"])
}

func (suite *testSuite) TestHealthy() {
	rr, payload := suite.do(http.MethodGet, "/api/health", nil, "")

	suite.Equal(http.StatusOK, rr.Code, rr.Body.String())
	suite.Equal("healthy", payload["status"])
}

func (suite *testSuite) TestMethodNotAllowed() {
	rr, payload := suite.do(http.MethodGet, "/api/contact", nil, "")

	suite.Equal(http.StatusMethodNotAllowed, rr.Code)
	suite.Equal("This endpoint only accepts POST requests", payload["message"])

	rr, payload = suite.do(http.MethodDelete, "/api/admin/submissions", nil, "")

	suite.Equal(http.StatusMethodNotAllowed, rr.Code)
	suite.Equal("Only GET and PUT methods are supported", payload["message"])
}

func (suite *testSuite) TestNotFound() {
	rr, payload := suite.do(http.MethodGet, "/api/unknown", nil, "")

	suite.Equal(http.StatusNotFound, rr.Code)
	suite.Equal("Not found", payload["error"])
}

func (suite *testSuite) TestPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://kedilabs.net")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	suite.Server.Handler.ServeHTTP(rr, req)

	suite.Equal(http.StatusOK, rr.Code)
	suite.Equal("*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *testSuite) TestProbes() {
	rr, _ := suite.do(http.MethodGet, "/live", nil, "")
	suite.Equal(http.StatusOK, rr.Code)

	rr, _ = suite.do(http.MethodGet, "/ready", nil, "")
	suite.Equal(http.StatusOK, rr.Code)

	suite.Repository.PingError = errors.New("connection refused")
	rr, _ = suite.do(http.MethodGet, "/ready", nil, "")
	suite.Equal(http.StatusServiceUnavailable, rr.Code)
}

func (suite *testSuite) TestMetrics() {
	suite.do(http.MethodPost, "/api/contact", studentForm(), "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	suite.Server.Handler.ServeHTTP(rr, req)

	suite.Equal(http.StatusOK, rr.Code)
	suite.Contains(rr.Body.String(), "kedilabs_submissions_total")
}
