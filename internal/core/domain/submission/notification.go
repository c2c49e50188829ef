package submission

import "context"

type EmailSender interface {
	SendAdminNotification(ctx context.Context, s Submission) error
	SendAcknowledgment(ctx context.Context, s Submission) error
}

// NotificationQueue schedules notification emails for a stored submission
// without waiting for them to be sent.
type NotificationQueue interface {
	Enqueue(ctx context.Context, s Submission) error
}

// EventPublisher pushes newly stored submissions to live admin clients.
type EventPublisher interface {
	PublishCreated(ctx context.Context, s Submission) error
}

type SendResult struct {
	Success bool
	Error   string
}

type NotificationResult struct {
	AdminEmail SendResult
	UserEmail  SendResult
}

// NotificationRecorder observes notification outcomes.
type NotificationRecorder interface {
	RecordNotification(kind string, success bool)
}
