package deps

import (
	"context"
	"fmt"
	"kedilabs/internal/config"
	"kedilabs/internal/core/domain/admin"
	dl "kedilabs/internal/core/domain/logging"
	drl "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/domain/submission"
	dbsession "kedilabs/internal/db/session"
	dbsubmission "kedilabs/internal/db/submission"
	admintoken "kedilabs/internal/implementations/admin_token"
	"kedilabs/internal/implementations/email"
	"kedilabs/internal/implementations/identity"
	"kedilabs/internal/implementations/logging"
	"kedilabs/internal/implementations/metrics"
	passwordhasher "kedilabs/internal/implementations/password_hasher"
	ratelimiter "kedilabs/internal/implementations/rate_limiter"
	"kedilabs/internal/implementations/session"
	submissionevents "kedilabs/internal/implementations/submission_events"
	submissionvalidator "kedilabs/internal/implementations/submission_validator"
	"kedilabs/internal/rabbitmq"
	notificationqueue "kedilabs/internal/rabbitmq/publishers/notification_queue"
	"net/url"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server
	Metrics   *metrics.Prometheus

	Now func() time.Time

	SubmissionRepository submission.Repository
	SessionRepository    admin.SessionRepository

	RateLimiter drl.RateLimiter

	SubmissionValidator submission.Validator
	EmailSender         submission.EmailSender
	EventPublisher      submission.EventPublisher
	// NotificationPublisher is nil unless RABBITMQ_URL is set; notifications
	// then run on the in-process worker pool.
	NotificationPublisher submission.NotificationQueue

	PasswordVerifier   admin.PasswordVerifier
	SessionIDGenerator admin.SessionIDGenerator
	TokenIssuer        admin.TokenIssuer
	TokenVerifier      admin.TokenVerifier
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()
	deps.Now = func() time.Time { return time.Now().UTC() }

	closeLogger := deps.initLogger()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()
	deps.Metrics = metrics.NewPrometheus()

	deps.SubmissionRepository = dbsubmission.NewRedisRepository(
		deps.Redis,
		identity.NewUUID(),
		deps.Config.StoreTimeout,
	)
	deps.SessionRepository = dbsession.NewRedisSessionRepository(deps.Redis, deps.Now, deps.Config.StoreTimeout)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Now, deps.Config.StoreTimeout)

	deps.SubmissionValidator = submissionvalidator.New()
	deps.EmailSender = deps.initEmailSender()
	deps.EventPublisher = submissionevents.NewSSE(deps.SseServer)
	closeNotificationPublisher := deps.initNotificationPublisher()

	deps.PasswordVerifier = passwordhasher.New(deps.Config.AdminPasswordHash)
	deps.SessionIDGenerator = session.NewRandom()
	tokens := admintoken.NewJWT(deps.Config.JWTSecret, deps.Now)
	deps.TokenIssuer = tokens
	deps.TokenVerifier = tokens

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeNotificationPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if deps.Config.AwsAccessKey != "" && deps.Config.AwsSecretKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(logging.Options{
		Level:       deps.Config.LogLevel,
		Development: deps.Config.AppEnv == "development",
		File:        deps.Config.LogFile,
	})
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initRedisClient() func() {
	redisOpt := &redis.Options{}
	if deps.Config.RedisURL == "" {
		deps.Logger.Warning(
			context.Background(),
			"REDIS_URL is not set, falling back to the default Redis address.",
		)
	} else {
		opt, err := redis.ParseURL(deps.Config.RedisURL)
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not parse Redis URL.", dl.Entry("err", err))
			panic(err)
		}
		redisOpt = opt
	}

	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled, notifications run in process.")
		return func() {}
	}

	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initNotificationPublisher() func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.RabbitmqNotificationQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.NotificationPublisher = notificationqueue.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue, deps.Now)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notification publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Notification publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = false
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initEmailSender() *email.EmailSender {
	siteURL, err := deps.Config.ParseSiteURL()
	if err != nil {
		deps.Logger.Warning(context.Background(), "SITE_URL is not usable, email links are disabled.")
		siteURL = url.URL{}
	}
	renderer := email.NewRenderer(siteURL, deps.Config.AdminEmail)

	var transport email.Transport
	switch {
	case deps.Config.IsTestMode:
		transport = email.NewLog(deps.Logger)
	case deps.Config.EmailProvider == config.EmailProviderSMTP:
		transport = email.NewSMTP(
			deps.Config.SMTPAddr,
			deps.Config.SMTPUsername,
			deps.Config.SMTPPassword,
			deps.Config.FromEmail,
			deps.Now,
		)
	default:
		transport = email.NewSES(deps.AwsConfig, deps.Config.FromEmail)
	}
	deps.Logger.Info(
		context.Background(),
		"Email sender has been initialized.",
		dl.Entry("provider", deps.Config.EmailProvider),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	return email.NewEmailSender(renderer, transport)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			Environment:      deps.Config.AppEnv,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
