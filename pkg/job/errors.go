package job

import "errors"

// Job errors.
var (
	// ErrUnknownTask is returned when attempting to execute a task
	// that has not been registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidSchedule is returned when a task schedule cannot be parsed.
	ErrInvalidSchedule = errors.New("job: invalid cron schedule")

	// ErrDuplicateTask is returned when two tasks are registered under one name.
	ErrDuplicateTask = errors.New("job: duplicate task name")

	// ErrAlreadyStarted is returned when attempting to start a manager
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when attempting to stop a manager
	// that is not running.
	ErrNotStarted = errors.New("job: not started")

	// ErrTaskPanicked is returned when a task handler panics.
	ErrTaskPanicked = errors.New("job: task panicked")
)
