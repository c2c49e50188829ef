package contact

import (
	"encoding/json"
	"errors"
	"io"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	ratelimiter "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	createsubmission "kedilabs/internal/core/services/create_submission"
	"kedilabs/internal/http/handlers/client"
	"kedilabs/internal/http/handlers/response"
	"net/http"
)

const SuccessMessage = "Thank you for your submission! We will get back to you soon."

// Recorder receives request outcomes for metrics.
type Recorder interface {
	RecordRateLimited(scope string)
	RecordSubmission(stakeholderType string)
}

type Handler struct {
	service  services.Service[createsubmission.Input, createsubmission.Result]
	recorder Recorder
}

func New(
	service services.Service[createsubmission.Input, createsubmission.Result],
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

type Result struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
	Timestamp    string `json:"timestamp"`
}

func decodeObject(r io.Reader) (map[string]any, error) {
	raw := make(map[string]any)
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return raw, nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r.Body)
	if err != nil {
		response.RenderInvalidBody(rw)
		return
	}

	result, err := h.service.Run(r.Context(), createsubmission.Input{
		Raw:       raw,
		IPAddress: client.IP(r),
		UserAgent: client.UserAgent(r),
	})
	response.SetRateLimitHeaders(rw, result.RateLimit)

	var limitErr *ratelimiter.LimitExceededError
	var validationErr *submission.ValidationError
	switch {
	case errors.As(err, &limitErr):
		h.recorder.RecordRateLimited("contact")
		response.RenderRateLimitExceeded(
			rw,
			"Too many requests",
			"Rate limit exceeded. Please try again later.",
			limitErr.Result,
		)
		return
	case errors.As(err, &validationErr):
		response.RenderValidationError(
			rw,
			"Please check your form data",
			response.FromFieldErrors(validationErr.Errors),
		)
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	h.recorder.RecordSubmission(result.Submission.StakeholderType().String())
	response.Render(rw, Result{
		Success:      true,
		Message:      SuccessMessage,
		SubmissionID: string(result.Submission.ID),
		Timestamp:    c.FormatTime(result.Submission.CreatedAt),
	}, http.StatusOK)
}
