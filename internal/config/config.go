package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/joho/godotenv"
)

const (
	EmailProviderSES  = "ses"
	EmailProviderSMTP = "smtp"
)

// Config is read from the environment. Variables needed to serve requests
// are not enforced at startup: the health report lists the missing ones
// and the endpoints that need them answer with a configuration error.
type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Port           int      `env:"PORT" envDefault:"8080"`
	AppEnv         string   `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `env:"JWT_SECRET"`
	SiteURL           string `env:"SITE_URL"`
	AdminEmail        string `env:"ADMIN_EMAIL"`
	FromEmail         string `env:"FROM_EMAIL"`
	RedisURL          string `env:"REDIS_URL"`

	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
	EmailTimeout time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"ses"`
	AwsRegion     string `env:"AWS_REGION"`
	AwsAccessKey  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey  string `env:"AWS_SECRET_KEY"`
	SMTPAddr      string `env:"SMTP_ADDR"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`

	RabbitmqURL               string `env:"RABBITMQ_URL"`
	RabbitmqNotificationQueue string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"submission_notifications"`
	NotificationWorkers       int    `env:"NOTIFICATION_WORKERS" envDefault:"4"`
	NotificationQueueSize     int    `env:"NOTIFICATION_QUEUE_SIZE" envDefault:"256"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile   string   `env:"LOG_FILE"`
}

// LoadEnvFile reads variables from a dotenv file if it exists. Variables
// already set in the environment are kept.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if cfg.SiteURL != "" {
		if _, err := cfg.ParseSiteURL(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) ParseSiteURL() (url.URL, error) {
	u, err := url.Parse(strings.TrimRight(c.SiteURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return url.URL{}, fmt.Errorf("invalid SITE_URL value: %q", c.SiteURL)
	}
	return *u, nil
}

// MissingRequired lists the names of required variables that are not set.
func (c *Config) MissingRequired() []string {
	required := []struct {
		name  string
		value string
	}{
		{"ADMIN_PASSWORD_HASH", c.AdminPasswordHash},
		{"JWT_SECRET", c.JWTSecret},
		{"SITE_URL", c.SiteURL},
		{"ADMIN_EMAIL", c.AdminEmail},
		{"FROM_EMAIL", c.FromEmail},
		{"REDIS_URL", c.RedisURL},
	}
	missing := make([]string, 0)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// EmailConfigIssues describes problems with the email settings without
// revealing any of their values.
func (c *Config) EmailConfigIssues() []string {
	issues := make([]string, 0)
	for _, address := range []struct {
		name  string
		value string
	}{
		{"FROM_EMAIL", c.FromEmail},
		{"ADMIN_EMAIL", c.AdminEmail},
	} {
		err := validation.Validate(
			address.value,
			validation.Required.Error("is not set"),
			is.Email.Error("is not a valid email address"),
		)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s %s", address.name, err.Error()))
		}
	}

	switch c.EmailProvider {
	case EmailProviderSES:
		if c.AwsRegion == "" {
			issues = append(issues, "AWS_REGION is not set")
		}
		if c.AwsAccessKey == "" || c.AwsSecretKey == "" {
			issues = append(issues, "AWS credentials are not set")
		}
	case EmailProviderSMTP:
		if c.SMTPAddr == "" {
			issues = append(issues, "SMTP_ADDR is not set")
		}
	default:
		issues = append(issues, "EMAIL_PROVIDER must be one of: ses, smtp")
	}
	return issues
}

func (c *Config) Environment() string {
	return c.AppEnv
}
