package updatesubmissionstatus

import (
	"encoding/json"
	"errors"
	"io"
	"kedilabs/internal/core/domain/admin"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	service "kedilabs/internal/core/services/update_submission_status"
	"kedilabs/internal/http/handlers/response"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	SubmissionID string `json:"submissionId"`
	Status       string `json:"status"`
}

func (i *Input) FromJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.SubmissionID, validation.Required, validation.Length(0, 128)),
		validation.Field(&i.Status, validation.Required),
	)
}

type Data struct {
	SubmissionID string `json:"submissionId"`
	Status       string `json:"status"`
	UpdatedAt    string `json:"updatedAt"`
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Data   `json:"data"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidBody(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderError(rw, "Invalid request", "Both submissionId and status are required", http.StatusBadRequest)
		return
	}
	status, err := submission.ParseStatus(input.Status)
	if err != nil {
		renderInvalidStatus(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{
		SubmissionID: submission.ID(input.SubmissionID),
		Status:       status,
	})
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrUnauthenticated):
			response.RenderUnauthorized(rw)
		case errors.Is(err, submission.ErrInvalidStatus):
			renderInvalidStatus(rw)
		case errors.Is(err, submission.ErrSubmissionDoesNotExist):
			response.RenderError(
				rw,
				"Submission not found",
				"The specified submission could not be found or updated",
				http.StatusNotFound,
			)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{
		Success: true,
		Message: "Submission status updated successfully",
		Data: Data{
			SubmissionID: string(result.SubmissionID),
			Status:       result.Status.String(),
			UpdatedAt:    c.FormatTime(result.UpdatedAt),
		},
	}, http.StatusOK)
}

func renderInvalidStatus(rw http.ResponseWriter) {
	response.RenderError(rw, "Invalid status", "Status must be one of: new, read, archived", http.StatusBadRequest)
}
