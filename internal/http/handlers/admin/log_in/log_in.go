package login

import (
	"encoding/json"
	"errors"
	"io"
	"kedilabs/internal/core/domain/admin"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/services"
	loginadmin "kedilabs/internal/core/services/log_in_admin"
	"kedilabs/internal/http/handlers/auth"
	"kedilabs/internal/http/handlers/client"
	"kedilabs/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Recorder interface {
	RecordRateLimited(scope string)
}

type Handler struct {
	service  services.Service[loginadmin.Input, loginadmin.Result]
	recorder Recorder
}

func New(
	service services.Service[loginadmin.Input, loginadmin.Result],
	recorder Recorder,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	return &Handler{service: service, recorder: recorder}
}

type Input struct {
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Required, validation.Length(0, 1024)),
	)
}

type SessionInfo struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	LoginTime string `json:"loginTime"`
}

type Result struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Token       string      `json:"token"`
	ExpiresAt   string      `json:"expiresAt"`
	SessionInfo SessionInfo `json:"sessionInfo"`
}

// configurationMessages maps a missing variable to the message shown to
// the caller. Variable names themselves are not exposed.
var configurationMessages = map[string]string{
	"ADMIN_PASSWORD_HASH": "Admin authentication not properly configured",
	"JWT_SECRET":          "Authentication system not properly configured",
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidBody(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderError(rw, "Invalid credentials", "Password is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), loginadmin.Input{
		Password:  input.Password,
		IPAddress: client.IP(r),
	})
	response.SetRateLimitHeaders(rw, result.RateLimit)

	var limitErr *ratelimiter.LimitExceededError
	var configErr *e.ConfigurationError
	switch {
	case errors.As(err, &limitErr):
		h.recorder.RecordRateLimited("admin_login")
		response.RenderRateLimitExceeded(
			rw,
			"Too many login attempts",
			"Rate limit exceeded. Please try again in 1 hour.",
			limitErr.Result,
		)
		return
	case errors.As(err, &configErr):
		msg, ok := configurationMessages[configErr.Variable]
		if !ok {
			msg = "Authentication system not properly configured"
		}
		response.RenderError(rw, "Server configuration error", msg, http.StatusInternalServerError)
		return
	case errors.Is(err, admin.ErrInvalidCredentials):
		response.RenderError(rw, "Invalid credentials", "Incorrect password", http.StatusUnauthorized)
		return
	case err != nil:
		response.RenderError(rw, "Authentication error", "Failed to create session", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookies(rw, result.Token, admin.SessionTTL)
	response.Render(rw, Result{
		Success:   true,
		Message:   "Authentication successful",
		Token:     string(result.Token),
		ExpiresAt: c.FormatTime(result.Session.ExpiresAt),
		SessionInfo: SessionInfo{
			SessionID: string(result.Session.ID),
			UserID:    result.Session.UserID,
			LoginTime: c.FormatTime(result.Session.CreatedAt),
		},
	}, http.StatusOK)
}
