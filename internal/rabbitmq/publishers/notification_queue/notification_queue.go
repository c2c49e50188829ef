package notificationqueue

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/rabbitmq"
	"kedilabs/internal/rabbitmq/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes notification tasks to a durable queue through the
// default exchange.
type RabbitMQ struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	now     func() time.Time
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string, now func() time.Time) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue, now: now}
}

func (q *RabbitMQ) Enqueue(ctx context.Context, s submission.Submission) error {
	task := schema.Notification{SubmissionID: string(s.ID), EnqueuedAt: q.now()}
	body, err := task.Marshal()
	if err != nil {
		return err
	}
	err = q.channel.Publish(ctx, "", q.queue, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    task.EnqueuedAt,
		Body:         body,
	})
	if err != nil {
		return err
	}
	q.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", q.queue),
		logging.Entry("submissionId", s.ID),
	)
	return nil
}
