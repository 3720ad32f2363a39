package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration. Every client built from it is
// constructed once in main and injected; nothing reads the environment at
// request time.
type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"3000"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	AuthSecret     string `envconfig:"AUTH_SECRET" required:"true"`
	SessionTTLDays int    `envconfig:"SESSION_TTL_DAYS" default:"30"`
	CodeTTLMinutes int    `envconfig:"CODE_TTL_MINUTES" default:"5"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"1025"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"noreply@example.com"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	AWSRegion       string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSEndpointURL  string `envconfig:"AWS_ENDPOINT_URL"` // empty in prod, LocalStack URL in dev
	AWSAccessKeyID  string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey    string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	S3BucketName    string `envconfig:"S3_BUCKET_NAME" default:"doxrep-incidents"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"` // derived from bucket+region when empty

	// 0 grants indefinite premium access on a lifetime code; a positive
	// value grants now+N days instead.
	PromoLifetimeTermDays int `envconfig:"PROMO_LIFETIME_TERM_DAYS" default:"0"`

	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins returns the CORS origin allowlist.
func (c *Config) Origins() []string {
	return strings.Split(c.AllowedOrigins, ",")
}
