package email

import (
	"context"
	"kedilabs/internal/core/domain/logging"
)

// Log only records messages. It is used in test mode instead of a provider.
type Log struct {
	log logging.Logger
}

func NewLog(log logging.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Deliver(ctx context.Context, message Message) error {
	l.log.Info(
		ctx,
		"Email delivery skipped in test mode.",
		logging.Entry("to", message.To),
		logging.Entry("subject", message.Subject),
	)
	return nil
}
