package app

import (
	"context"
	"kedilabs/internal/app/deps"
	"kedilabs/internal/app/services"
	listsubmissions "kedilabs/internal/http/handlers/admin/list_submissions"
	login "kedilabs/internal/http/handlers/admin/log_in"
	logout "kedilabs/internal/http/handlers/admin/log_out"
	submissionevents "kedilabs/internal/http/handlers/admin/submission_events"
	updatesubmissionstatus "kedilabs/internal/http/handlers/admin/update_submission_status"
	"kedilabs/internal/http/handlers/auth"
	"kedilabs/internal/http/handlers/contact"
	"kedilabs/internal/http/handlers/health"
	"kedilabs/internal/http/handlers/response"
	"net/http"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/heptiolabs/healthcheck"
)

const (
	MaxRequestBodySize = 1 << 20
	ReadinessTimeout   = 3 * time.Second
)

var methodNotAllowedMessages = map[string]string{
	"/api/contact":                  "This endpoint only accepts POST requests",
	"/api/admin/login":              "This endpoint only accepts POST requests",
	"/api/admin/logout":             "This endpoint only accepts POST requests",
	"/api/admin/submissions":        "Only GET and PUT methods are supported",
	"/api/admin/submissions/events": "Only GET requests are supported",
	"/api/health":                   "Only GET requests are supported",
}

func methodNotAllowed(rw http.ResponseWriter, r *http.Request) {
	msg, ok := methodNotAllowedMessages[strings.TrimSuffix(r.URL.Path, "/")]
	if !ok {
		msg = "This method is not supported by the endpoint"
	}
	response.RenderMethodNotAllowed(rw, msg)
}

func notFound(rw http.ResponseWriter, r *http.Request) {
	response.RenderNotFound(rw)
}

// limitRequestBody caps every request body so decoders fail on oversized
// payloads instead of buffering them.
func limitRequestBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(rw, r.Body, limit)
			}
			next.ServeHTTP(rw, r)
		})
	}
}

func initProbes(deps *deps.Deps) healthcheck.Handler {
	probes := healthcheck.NewMetricsHandler(deps.Metrics.Registry(), "kedilabs")
	probes.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	probes.AddReadinessCheck("submission-store", healthcheck.Timeout(func() error {
		return deps.SubmissionRepository.Ping(context.Background())
	}, ReadinessTimeout))
	return probes
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.SetAuthTokenToContext)
	adminRouter.Method(http.MethodPost, "/login", login.New(s.LogInAdmin, deps.Metrics))
	adminRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOutAdmin))
	adminRouter.Group(func(r chi.Router) {
		r.Use(auth.RequireAdminSession(s.GetAdminSession))
		r.Method(http.MethodGet, "/submissions", listsubmissions.New(s.ListSubmissions, deps.Now))
		r.Method(http.MethodPut, "/submissions", updatesubmissionstatus.New(s.UpdateSubmissionStatus))
	})
	adminRouter.Method(
		http.MethodGet,
		"/submissions/events",
		submissionevents.New(deps.Logger, deps.SseServer, s.GetAdminSession),
	)
	for _, path := range []string{"/login", "/logout", "/submissions", "/submissions/events"} {
		adminRouter.Options(path, response.RenderEmpty)
	}
	adminRouter.MethodNotAllowed(methodNotAllowed)
	adminRouter.NotFound(notFound)

	apiRouter := chi.NewRouter()
	apiRouter.Method(http.MethodPost, "/contact", contact.New(s.CreateSubmission, deps.Metrics))
	apiRouter.Options("/contact", response.RenderEmpty)
	apiRouter.Method(http.MethodGet, "/health", health.New(s.CheckHealth, deps.Now))
	apiRouter.Options("/health", response.RenderEmpty)
	apiRouter.Mount("/admin", adminRouter)
	apiRouter.MethodNotAllowed(methodNotAllowed)
	apiRouter.NotFound(notFound)

	probes := initProbes(deps)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     deps.Config.AllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials:   false,
		OptionsPassthrough: true,
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	if deps.Config.SentryDsn != nil {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(deps.Metrics.Middleware)
	router.Use(limitRequestBody(MaxRequestBodySize))

	router.Mount("/api", apiRouter)
	router.Get("/live", probes.LiveEndpoint)
	router.Get("/ready", probes.ReadyEndpoint)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	router.MethodNotAllowed(methodNotAllowed)
	router.NotFound(notFound)

	server := &http.Server{
		Handler:           router,
		Addr:              deps.Config.Addr(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never go idle on their own.
	server.RegisterOnShutdown(deps.SseServer.Close)
	return server
}
