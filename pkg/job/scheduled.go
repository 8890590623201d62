package job

import "context"

// scheduledHandler is a function type for scheduled task handlers.
type scheduledHandler func(context.Context) error

// scheduleConfig holds scheduled task configuration.
type scheduleConfig struct {
	handler  scheduledHandler
	name     string
	schedule string
}
