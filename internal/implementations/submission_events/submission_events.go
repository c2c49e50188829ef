package submissionevents

import (
	"context"
	"encoding/json"
	c "kedilabs/internal/core/domain/common"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/submission"

	"github.com/r3labs/sse/v2"
)

const (
	StreamID     = "submissions"
	EventCreated = "submission.created"
)

type createdEvent struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	StakeholderType string `json:"stakeholderType"`
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
}

// SSE publishes new submissions to the admin event stream.
type SSE struct {
	server *sse.Server
}

func NewSSE(server *sse.Server) *SSE {
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	if !server.StreamExists(StreamID) {
		server.CreateStream(StreamID)
	}
	return &SSE{server: server}
}

func (p *SSE) PublishCreated(ctx context.Context, s submission.Submission) error {
	data, err := json.Marshal(createdEvent{
		ID:              string(s.ID),
		Email:           s.Email(),
		StakeholderType: s.StakeholderType().String(),
		Status:          s.Status.String(),
		Timestamp:       c.FormatTime(s.CreatedAt),
	})
	if err != nil {
		return err
	}
	p.server.Publish(StreamID, &sse.Event{Event: []byte(EventCreated), Data: data})
	return nil
}
