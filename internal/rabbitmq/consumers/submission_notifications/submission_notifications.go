package submissionnotifications

import (
	"context"
	e "kedilabs/internal/core/domain/errors"
	"kedilabs/internal/core/domain/logging"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	notifysubmission "kedilabs/internal/core/services/notify_submission"
	"kedilabs/internal/rabbitmq"
	"kedilabs/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[notifysubmission.Input, notifysubmission.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[notifysubmission.Input, notifysubmission.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

// Consume handles deliveries in the background until the channel is closed.
// Every delivery is acknowledged: a failed send is not retried.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "")
	if err != nil {
		c.log.Error(ctx, "Could not start consuming.", logging.Entry("err", err))
		return err
	}
	go func() {
		for delivery := range deliveries {
			c.Handle(ctx, delivery.Body)
			c.Ack(ctx, delivery)
		}
	}()
	return nil
}

func (c *Consumer) Handle(ctx context.Context, body []byte) {
	task := schema.Notification{}
	if err := task.Unmarshal(body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal notification task.",
			logging.Entry("err", err),
			logging.Entry("body", string(body)),
		)
		return
	}

	c.log.Info(ctx, "Got notification task.", logging.Entry("submissionId", task.SubmissionID))
	_, err := c.service.Run(ctx, notifysubmission.Input{SubmissionID: submission.ID(task.SubmissionID)})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send notifications, service returned an error.",
			logging.Entry("submissionId", task.SubmissionID),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) Ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
