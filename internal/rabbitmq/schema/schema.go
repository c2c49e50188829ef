package schema

import (
	"encoding/json"
	"time"
)

// Notification asks a consumer to send the emails of a stored submission.
type Notification struct {
	SubmissionID string    `json:"submissionId"`
	EnqueuedAt   time.Time `json:"enqueuedAt"`
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, n); err != nil {
		return err
	}
	if n.SubmissionID == "" {
		return ErrMissingSubmissionID
	}
	return nil
}
