package submission

import (
	"encoding/json"
	"fmt"
	c "kedilabs/internal/core/domain/common"
	"kedilabs/internal/core/domain/submission"
	"time"
)

type metadataRecord struct {
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

type record struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	StakeholderType string          `json:"stakeholderType"`
	FormData        json.RawMessage `json:"formData"`
	Status          string          `json:"status"`
	Metadata        metadataRecord  `json:"metadata"`
	Timestamp       string          `json:"timestamp"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

func encodeSubmission(s submission.Submission) ([]byte, error) {
	formData, err := json.Marshal(s.Form)
	if err != nil {
		return nil, err
	}
	r := record{
		ID:              string(s.ID),
		Email:           s.Email(),
		StakeholderType: s.StakeholderType().String(),
		FormData:        formData,
		Status:          s.Status.String(),
		Metadata: metadataRecord{
			IPAddress: s.Metadata.IPAddress,
			UserAgent: s.Metadata.UserAgent,
			Timestamp: c.FormatTime(s.Metadata.Timestamp),
			Source:    s.Metadata.Source,
		},
		Timestamp: c.FormatTime(s.CreatedAt),
	}
	if s.UpdatedAt.IsPresent {
		r.UpdatedAt = c.FormatTime(s.UpdatedAt.Value)
	}
	return json.Marshal(r)
}

func decodeSubmission(data []byte) (s submission.Submission, err error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return s, err
	}

	t, err := submission.ParseStakeholderType(r.StakeholderType)
	if err != nil {
		return s, err
	}
	form, err := submission.DecodeForm(t, r.FormData)
	if err != nil {
		return s, fmt.Errorf("could not decode form of submission %s: %w", r.ID, err)
	}
	status, err := submission.ParseStatus(r.Status)
	if err != nil {
		return s, err
	}
	createdAt, err := time.Parse(c.ISO8601, r.Timestamp)
	if err != nil {
		return s, err
	}
	metadataTimestamp, err := time.Parse(c.ISO8601, r.Metadata.Timestamp)
	if err != nil {
		return s, err
	}

	s = submission.Submission{
		ID:     submission.ID(r.ID),
		Form:   form,
		Status: status,
		Metadata: submission.Metadata{
			IPAddress: r.Metadata.IPAddress,
			UserAgent: r.Metadata.UserAgent,
			Timestamp: metadataTimestamp,
			Source:    r.Metadata.Source,
		},
		CreatedAt: createdAt,
	}
	if r.UpdatedAt != "" {
		updatedAt, err := time.Parse(c.ISO8601, r.UpdatedAt)
		if err != nil {
			return s, err
		}
		s.UpdatedAt = c.NewOptional(updatedAt, true)
	}
	return s, s.Validate()
}
