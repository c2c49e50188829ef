package response

import (
	c "kedilabs/internal/core/domain/common"
	"kedilabs/internal/core/domain/submission"
)

type Metadata struct {
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
	Source    string `json:"source"`
}

// Submission is the admin view of a stored submission.
type Submission struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	StakeholderType string          `json:"stakeholderType"`
	Status          string          `json:"status"`
	Timestamp       string          `json:"timestamp"`
	UpdatedAt       *string         `json:"updatedAt,omitempty"`
	FormData        submission.Form `json:"formData"`
	Metadata        Metadata        `json:"metadata"`
}

func FromSubmission(s submission.Submission) Submission {
	view := Submission{
		ID:              string(s.ID),
		Email:           s.Email(),
		StakeholderType: s.StakeholderType().String(),
		Status:          s.Status.String(),
		Timestamp:       c.FormatTime(s.CreatedAt),
		FormData:        s.Form,
		Metadata: Metadata{
			IPAddress: s.Metadata.IPAddress,
			UserAgent: s.Metadata.UserAgent,
			Source:    s.Metadata.Source,
		},
	}
	if view.Metadata.Source == "" {
		view.Metadata.Source = submission.SourceWebsite
	}
	if s.UpdatedAt.IsPresent {
		updatedAt := c.FormatTime(s.UpdatedAt.Value)
		view.UpdatedAt = &updatedAt
	}
	return view
}

func FromSubmissions(submissions []submission.Submission) []Submission {
	views := make([]Submission, 0, len(submissions))
	for _, s := range submissions {
		views = append(views, FromSubmission(s))
	}
	return views
}

type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

func FromPagination(p submission.Pagination) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, HasMore: p.HasMore}
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type Statistics struct {
	Total             int64            `json:"total"`
	Today             int64            `json:"today"`
	ByStatus          map[string]int64 `json:"byStatus"`
	ByStakeholderType map[string]int64 `json:"byStakeholderType"`
	LastDays          []DailyCount     `json:"lastDays"`
}

func FromStats(s submission.Stats) Statistics {
	stats := Statistics{
		Total:             s.Total,
		Today:             s.Today,
		ByStatus:          make(map[string]int64, len(s.ByStatus)),
		ByStakeholderType: make(map[string]int64, len(s.ByStakeholderType)),
		LastDays:          make([]DailyCount, 0, len(s.LastDays)),
	}
	for status, n := range s.ByStatus {
		stats.ByStatus[status.String()] = n
	}
	for t, n := range s.ByStakeholderType {
		stats.ByStakeholderType[t.String()] = n
	}
	for _, d := range s.LastDays {
		stats.LastDays = append(stats.LastDays, DailyCount{Date: d.Date, Count: d.Count})
	}
	return stats
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func FromFieldErrors(errs []submission.FieldError) []FieldError {
	views := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		views = append(views, FieldError{Field: fe.Field, Message: fe.Message, Code: fe.Code})
	}
	return views
}
