package health

import "time"

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

var (
	Healthy   = Status{v: "healthy"}
	Degraded  = Status{v: "degraded"}
	Unhealthy = Status{v: "unhealthy"}
	Warning   = Status{v: "warning"}
)

type Check struct {
	Status  Status
	Message string
	// Error is a short, non-sensitive failure description.
	Error string
}

type DatabaseCheck struct {
	Check
	ResponseTime time.Duration
}

type EmailCheck struct {
	Check
	Issues []string
}

type EnvironmentCheck struct {
	Check
	MissingVariables []string
}

type Statistics struct {
	TotalSubmissions int64
	TodaySubmissions int64
}

type StatisticsCheck struct {
	Check
	Data Statistics
}

type Report struct {
	Status       Status
	Timestamp    time.Time
	Version      string
	Environment  string
	Database     DatabaseCheck
	Email        EmailCheck
	Env          EnvironmentCheck
	Statistics   *StatisticsCheck
	ResponseTime time.Duration
}

// Overall is unhealthy when the store is down or required configuration
// is missing, degraded when only the email configuration is incomplete.
func Overall(database, email, env Check) Status {
	if database.Status == Unhealthy || env.Status == Unhealthy {
		return Unhealthy
	}
	if email.Status != Healthy {
		return Degraded
	}
	return Healthy
}

// ConfigInspector reports configuration presence without exposing values.
type ConfigInspector interface {
	MissingRequired() []string
	EmailConfigIssues() []string
	Environment() string
}
