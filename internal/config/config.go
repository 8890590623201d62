// Package config loads the digest job configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // DIGEST_TIMEZONE must resolve on minimal images

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/launchdigest/pkg/logger"
	"github.com/dmitrymomot/launchdigest/pkg/mailer"
	"github.com/dmitrymomot/launchdigest/pkg/mailer/resend"
	"github.com/dmitrymomot/launchdigest/pkg/mailer/smtp"
)

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

var (
	// ErrMissingEnv is returned when a required variable is unset or empty.
	ErrMissingEnv = errors.New("config: required environment variable is not set")

	// ErrInvalid is returned when a variable has an unusable value.
	ErrInvalid = errors.New("config: invalid value")
)

// Config holds all job configuration.
type Config struct {
	Logger logger.Config
	Sentry logger.SentryConfig
	Mailer mailer.Config
	SMTP   smtp.Config
	Resend resend.Config
	Digest Digest

	Provider  string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	DestEmail string `env:"DEST_EMAIL"`

	SpaceXURL        string        `env:"SPACEX_API_URL" envDefault:"https://api.spacexdata.com"`
	LaunchLibraryURL string        `env:"LAUNCH_LIBRARY_URL" envDefault:"https://ll.thespacedevs.com"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	RunTimeout       time.Duration `env:"RUN_TIMEOUT" envDefault:"2m"`

	// Pad cache. Without REDIS_URL an in-process cache is used.
	RedisURL    string        `env:"REDIS_URL"`
	PadCacheTTL time.Duration `env:"PAD_CACHE_TTL" envDefault:"24h"`
}

// Digest holds what the digest covers and when it runs.
type Digest struct {
	Site      string        `env:"DIGEST_SITE" envDefault:"Vandenberg"`
	Timezone  string        `env:"DIGEST_TIMEZONE" envDefault:"America/Los_Angeles"`
	Schedule  string        `env:"DIGEST_SCHEDULE" envDefault:"0 15 * * 1"`
	Horizon   time.Duration `env:"DIGEST_HORIZON" envDefault:"504h"`
	SkipEmpty bool          `env:"DIGEST_SKIP_EMPTY" envDefault:"false"`
}

// Load parses the process environment and validates the result.
// A .env file in the working directory is read first if present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(ErrInvalid, fmt.Errorf("failed to read .env: %w", err))
	}
	return parse(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Join(ErrInvalid, fmt.Errorf("failed to parse config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required variables for the selected provider and value ranges.
// All problems are reported at once.
func (c *Config) Validate() error {
	var errs []error
	missing := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, name))
		}
	}

	missing("DEST_EMAIL", c.DestEmail)

	switch c.Provider {
	case ProviderSMTP:
		missing("SMTP_HOST", c.SMTP.Host)
		if c.SMTP.Port == 0 {
			errs = append(errs, fmt.Errorf("%w: SMTP_PORT", ErrMissingEnv))
		} else if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
			errs = append(errs, fmt.Errorf("%w: SMTP_PORT %d out of range", ErrInvalid, c.SMTP.Port))
		}
		missing("SMTP_USER", c.SMTP.Username)
		missing("SMTP_PASS", c.SMTP.Password)
		switch c.SMTP.TLS {
		case smtp.TLSImplicit, smtp.TLSStartTLS, smtp.TLSNone:
		default:
			errs = append(errs, fmt.Errorf("%w: SMTP_TLS %q", ErrInvalid, c.SMTP.TLS))
		}
	case ProviderResend:
		missing("RESEND_API_KEY", c.Resend.APIKey)
		missing("MAIL_FROM", c.Resend.SenderEmail)
	default:
		errs = append(errs, fmt.Errorf("%w: MAIL_PROVIDER %q", ErrInvalid, c.Provider))
	}

	if c.Digest.Horizon <= 0 {
		errs = append(errs, fmt.Errorf("%w: DIGEST_HORIZON must be positive", ErrInvalid))
	}
	if _, err := time.LoadLocation(c.Digest.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("%w: DIGEST_TIMEZONE: %v", ErrInvalid, err))
	}
	if _, err := cron.ParseStandard(c.Digest.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("%w: DIGEST_SCHEDULE: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Location returns the digest timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Digest.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FromAddress returns the sender address for the selected provider.
func (c *Config) FromAddress() string {
	if c.Provider == ProviderResend {
		return c.Resend.SenderEmail
	}
	if c.SMTP.SenderEmail != "" {
		return c.SMTP.SenderEmail
	}
	return c.SMTP.Username
}
