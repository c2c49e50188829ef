package consumers

import (
	"context"
	"kedilabs/internal/app/deps"
	"kedilabs/internal/app/services"
	dl "kedilabs/internal/core/domain/logging"
	submissionnotifications "kedilabs/internal/rabbitmq/consumers/submission_notifications"
)

func initSubmissionNotificationsConsumer(ctx context.Context, deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqNotificationQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ queue.", dl.Entry("err", err), dl.Entry("queue", queue))
		panic(err)
	}

	consumer := submissionnotifications.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.NotifySubmission,
	)
	if err = consumer.Consume(ctx); err != nil {
		deps.Logger.Error(
			ctx,
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

// InitConsumers starts the queue consumers. Without RabbitMQ there is
// nothing to consume and the returned function is a no-op.
func InitConsumers(ctx context.Context, deps *deps.Deps, services *services.Services) func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	shutdownSubmissionNotificationsConsumer := initSubmissionNotificationsConsumer(ctx, deps, services)

	return func() {
		shutdownSubmissionNotificationsConsumer()
	}
}
