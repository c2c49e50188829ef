package listsubmissions

import (
	"errors"
	"kedilabs/internal/core/domain/admin"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	service "kedilabs/internal/core/services/list_submissions"
	"kedilabs/internal/http/handlers/response"
	"net/http"
	"strconv"
	"time"
)

const filterAll = "all"

type Handler struct {
	service services.Service[service.Input, service.Result]
	now     func() time.Time
}

func New(
	service services.Service[service.Input, service.Result],
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

type Filters struct {
	Status          string `json:"status"`
	StakeholderType string `json:"stakeholderType"`
}

type Data struct {
	Submissions []response.Submission `json:"submissions"`
	Pagination  response.Pagination   `json:"pagination"`
	Filters     Filters               `json:"filters"`
	Statistics  *response.Statistics  `json:"statistics"`
}

type Result struct {
	Success   bool   `json:"success"`
	Data      Data   `json:"data"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	status, err := parseStatus(query.Get("status"))
	if err != nil {
		response.RenderError(rw, "Invalid status", "Status must be one of: new, read, archived", http.StatusBadRequest)
		return
	}
	stakeholderType, err := parseStakeholderType(query.Get("stakeholderType"))
	if err != nil {
		response.RenderError(rw, "Invalid stakeholder type", "Unknown stakeholder type filter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		Page:            parseInt(query.Get("page")),
		Limit:           parseInt(query.Get("limit")),
		Status:          status,
		StakeholderType: stakeholderType,
		IncludeStats:    query.Get("includeStats") != "false",
	}
	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrUnauthenticated):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	data := Data{
		Submissions: response.FromSubmissions(result.Submissions),
		Pagination:  response.FromPagination(result.Pagination),
		Filters: Filters{
			Status:          filterValue(status),
			StakeholderType: filterValue(stakeholderType),
		},
	}
	if result.Stats.IsPresent {
		stats := response.FromStats(result.Stats.Value)
		data.Statistics = &stats
	}
	response.Render(rw, Result{Success: true, Data: data, Timestamp: c.FormatTime(h.now())}, http.StatusOK)
}

// parseInt falls back to zero on malformed input; the service applies the
// defaults and bounds.
func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func parseStatus(raw string) (result c.Optional[submission.Status], err error) {
	if raw == "" || raw == filterAll {
		return result, nil
	}
	status, err := submission.ParseStatus(raw)
	if err != nil {
		return result, err
	}
	return c.NewOptional(status, true), nil
}

func parseStakeholderType(raw string) (result c.Optional[submission.StakeholderType], err error) {
	if raw == "" || raw == filterAll {
		return result, nil
	}
	t, err := submission.ParseStakeholderType(raw)
	if err != nil {
		return result, err
	}
	return c.NewOptional(t, true), nil
}

func filterValue[T interface{ String() string }](v c.Optional[T]) string {
	if !v.IsPresent {
		return filterAll
	}
	return v.Value.String()
}
