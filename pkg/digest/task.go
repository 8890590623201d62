package digest

import (
	"context"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/logger"
)

// TaskName identifies the digest in the job manager.
const TaskName = "launch_digest"

// Task adapts a Service to the job manager's Name/Schedule/Handle shape.
type Task struct {
	service  *Service
	schedule string
	timeout  time.Duration
}

// NewTask creates a scheduled digest task. schedule is a 5-field cron
// expression; a positive timeout bounds each run.
func NewTask(service *Service, schedule string, timeout time.Duration) *Task {
	return &Task{service: service, schedule: schedule, timeout: timeout}
}

func (t *Task) Name() string     { return TaskName }
func (t *Task) Schedule() string { return t.schedule }

// Handle runs one digest with its own run ID.
func (t *Task) Handle(ctx context.Context) error {
	if _, ok := logger.RunID(ctx); !ok {
		ctx = logger.WithRunID(ctx)
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	_, err := t.service.Run(ctx)
	return err
}
