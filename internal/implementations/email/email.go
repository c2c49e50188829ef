package email

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/submission"
)

// Transport delivers a rendered message through an email provider.
type Transport interface {
	Deliver(ctx context.Context, message Message) error
}

type EmailSender struct {
	renderer  *Renderer
	transport Transport
}

func NewEmailSender(renderer *Renderer, transport Transport) *EmailSender {
	if renderer == nil {
		panic(e.NewNilArgumentError("renderer"))
	}
	if transport == nil {
		panic(e.NewNilArgumentError("transport"))
	}
	return &EmailSender{renderer: renderer, transport: transport}
}

func (s *EmailSender) SendAdminNotification(ctx context.Context, sub submission.Submission) error {
	message, err := s.renderer.AdminNotification(sub)
	if err != nil {
		return err
	}
	return s.transport.Deliver(ctx, message)
}

func (s *EmailSender) SendAcknowledgment(ctx context.Context, sub submission.Submission) error {
	message, err := s.renderer.Acknowledgment(sub)
	if err != nil {
		return err
	}
	return s.transport.Deliver(ctx, message)
}
