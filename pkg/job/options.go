package job

import (
	"context"
	"log/slog"
	"time"
)

// config holds job manager configuration.
type config struct {
	logger    *slog.Logger
	location  *time.Location
	schedules []scheduleConfig
	seconds   bool
}

// newConfig creates a config with defaults.
func newConfig() *config {
	return &config{
		location: time.UTC,
	}
}

// Option configures the job manager.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// The task must implement Name(), Schedule(), and Handle(ctx) methods.
// Schedule() should return a cron expression (5 fields: min hour day month weekday).
//
// Example:
//
//	type SendDigest struct {
//	    service *digest.Service
//	}
//
//	func (t *SendDigest) Name() string     { return "launch_digest" }
//	func (t *SendDigest) Schedule() string { return "0 15 * * 1" }
//	func (t *SendDigest) Handle(ctx context.Context) error {
//	    _, err := t.service.Run(ctx)
//	    return err
//	}
//
//	job.WithScheduledTask(tasks.NewSendDigest(service))
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     task.Name(),
			schedule: task.Schedule(),
			handler:  task.Handle,
		})
	}
}

// WithLogger sets the logger for the job manager.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLocation sets the timezone schedules are evaluated in. Default: UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithSeconds accepts an optional leading seconds field in schedules.
func WithSeconds() Option {
	return func(c *config) {
		c.seconds = true
	}
}
