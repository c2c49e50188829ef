package response

import (
	"encoding/json"
	c "kedilabs/internal/core/domain/common"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"net/http"
	"strconv"
	"time"
)

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	ResetTime int64  `json:"resetTime,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "Unauthorized", "Authentication required", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	Render(rw, errorResponse{
		Error:     "Internal server error",
		Message:   "An unexpected error occurred. Please try again later.",
		Timestamp: c.FormatTime(time.Now()),
	}, http.StatusInternalServerError)
}

func RenderInvalidBody(rw http.ResponseWriter) {
	RenderError(rw, "Invalid request body", "Request body must be a valid JSON object", http.StatusBadRequest)
}

func RenderMethodNotAllowed(rw http.ResponseWriter, msg string) {
	RenderError(rw, "Method not allowed", msg, http.StatusMethodNotAllowed)
}

func RenderNotFound(rw http.ResponseWriter) {
	RenderError(rw, "Not found", "The requested resource does not exist", http.StatusNotFound)
}

// RenderRateLimitExceeded answers 429 with the counter state in headers and
// the reset time in epoch milliseconds.
func RenderRateLimitExceeded(rw http.ResponseWriter, err string, msg string, rate ratelimiter.Result) {
	SetRateLimitHeaders(rw, rate)
	Render(rw, errorResponse{
		Error:     err,
		Message:   msg,
		ResetTime: rate.ResetAt.UnixMilli(),
	}, http.StatusTooManyRequests)
}

func RenderValidationError(rw http.ResponseWriter, msg string, details any) {
	Render(rw, errorResponse{Error: "Validation failed", Message: msg, Details: details}, http.StatusBadRequest)
}

func RenderError(rw http.ResponseWriter, err string, msg string, status int) {
	Render(rw, errorResponse{Error: err, Message: msg}, status)
}

func SetRateLimitHeaders(rw http.ResponseWriter, rate ratelimiter.Result) {
	if rate.Limit == 0 {
		return
	}
	rw.Header().Set("X-RateLimit-Limit", strconv.FormatUint(uint64(rate.Limit), 10))
	rw.Header().Set("X-RateLimit-Remaining", strconv.FormatUint(uint64(rate.Remaining), 10))
	rw.Header().Set("X-RateLimit-Reset", c.FormatTime(rate.ResetAt))
}

func SetNoCache(rw http.ResponseWriter) {
	rw.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	rw.Header().Set("Pragma", "no-cache")
	rw.Header().Set("Expires", "0")
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}

// RenderEmpty answers CORS preflight requests.
func RenderEmpty(rw http.ResponseWriter, r *http.Request) {
	Render(rw, struct{}{}, http.StatusOK)
}
