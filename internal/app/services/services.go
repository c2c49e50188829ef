package services

import (
	"kedilabs/internal/app/deps"
	drl "kedilabs/internal/core/domain/rate_limiter"
	"kedilabs/internal/core/domain/submission"
	"kedilabs/internal/core/services"
	"kedilabs/internal/core/services/auth"
	checkhealth "kedilabs/internal/core/services/check_health"
	createsubmission "kedilabs/internal/core/services/create_submission"
	getadminsession "kedilabs/internal/core/services/get_admin_session"
	listsubmissions "kedilabs/internal/core/services/list_submissions"
	loginadmin "kedilabs/internal/core/services/log_in_admin"
	logoutadmin "kedilabs/internal/core/services/log_out_admin"
	notifysubmission "kedilabs/internal/core/services/notify_submission"
	ratelimiting "kedilabs/internal/core/services/rate_limiting"
	sendsubmissionnotifications "kedilabs/internal/core/services/send_submission_notifications"
	updatesubmissionstatus "kedilabs/internal/core/services/update_submission_status"
	notificationqueue "kedilabs/internal/implementations/notification_queue"
	"time"
)

var (
	ContactLimit    = drl.Limit{Value: 5, Window: 15 * time.Minute}
	AdminLoginLimit = drl.Limit{Value: 5, Window: time.Hour}
)

type Services struct {
	CreateSubmission services.Service[createsubmission.Input, createsubmission.Result]

	LogInAdmin      services.Service[loginadmin.Input, loginadmin.Result]
	LogOutAdmin     services.Service[logoutadmin.Input, logoutadmin.Result]
	GetAdminSession services.Service[getadminsession.Input, getadminsession.Result]

	ListSubmissions        services.Service[listsubmissions.Input, listsubmissions.Result]
	UpdateSubmissionStatus services.Service[updatesubmissionstatus.Input, updatesubmissionstatus.Result]

	SendSubmissionNotifications services.Service[sendsubmissionnotifications.Input, sendsubmissionnotifications.Result]
	NotifySubmission            services.Service[notifysubmission.Input, notifysubmission.Result]

	CheckHealth services.Service[checkhealth.Input, checkhealth.Result]

	// NotificationPool is set when notifications run in process. The caller
	// starts it and stops it on shutdown.
	NotificationPool *notificationqueue.WorkerPool
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendSubmissionNotifications = sendsubmissionnotifications.New(
		deps.Logger,
		deps.EmailSender,
		deps.Metrics,
		deps.Config.EmailTimeout,
	)
	s.NotifySubmission = notifysubmission.New(
		deps.Logger,
		deps.SubmissionRepository,
		s.SendSubmissionNotifications,
	)

	var queue submission.NotificationQueue = deps.NotificationPublisher
	if queue == nil {
		s.NotificationPool = notificationqueue.NewWorkerPool(
			deps.Logger,
			s.SendSubmissionNotifications,
			deps.Config.NotificationWorkers,
			deps.Config.NotificationQueueSize,
		)
		queue = s.NotificationPool
	}

	s.CreateSubmission = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		ContactLimit,
		createsubmission.NewWithNotifications(
			deps.Logger,
			queue,
			createsubmission.NewWithEventPublishing(
				deps.Logger,
				deps.EventPublisher,
				createsubmission.New(
					deps.Logger,
					deps.SubmissionValidator,
					deps.SubmissionRepository,
					deps.Now,
				),
			),
		),
	)

	s.LogInAdmin = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		AdminLoginLimit,
		loginadmin.New(
			deps.Logger,
			deps.PasswordVerifier,
			deps.SessionIDGenerator,
			deps.TokenIssuer,
			deps.SessionRepository,
			deps.Now,
		),
	)
	s.LogOutAdmin = auth.WithAuthentication[logoutadmin.Input, logoutadmin.Result](
		deps.Logger,
		deps.TokenVerifier,
		deps.SessionRepository,
		logoutadmin.New(deps.Logger, deps.SessionRepository),
	)
	s.GetAdminSession = auth.WithAuthentication[getadminsession.Input, getadminsession.Result](
		deps.Logger,
		deps.TokenVerifier,
		deps.SessionRepository,
		getadminsession.New(),
	)

	s.ListSubmissions = auth.WithAuthentication[listsubmissions.Input, listsubmissions.Result](
		deps.Logger,
		deps.TokenVerifier,
		deps.SessionRepository,
		listsubmissions.New(deps.Logger, deps.SubmissionRepository, deps.Now),
	)
	s.UpdateSubmissionStatus = auth.WithAuthentication[updatesubmissionstatus.Input, updatesubmissionstatus.Result](
		deps.Logger,
		deps.TokenVerifier,
		deps.SessionRepository,
		updatesubmissionstatus.New(deps.Logger, deps.SubmissionRepository, deps.Now),
	)

	s.CheckHealth = checkhealth.New(deps.Logger, deps.SubmissionRepository, deps.Config, deps.Now)

	return s
}
