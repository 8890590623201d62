// Package job runs periodic tasks on cron schedules.
//
// Tasks are plain structs with Name(), Schedule() and Handle(ctx) methods.
// No interface import is required, the package uses structural typing:
//
//	type SendDigest struct {
//	    service *digest.Service
//	}
//
//	func (t *SendDigest) Name() string     { return "launch_digest" }
//	func (t *SendDigest) Schedule() string { return "0 15 * * 1" } // Mondays 15:00
//	func (t *SendDigest) Handle(ctx context.Context) error {
//	    _, err := t.service.Run(ctx)
//	    return err
//	}
//
// # Usage
//
//	m, err := job.NewManager(
//	    job.WithScheduledTask(tasks.NewSendDigest(service)),
//	    job.WithLocation(time.UTC),
//	    job.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	return m.Run(ctx) // blocks until ctx is canceled
//
// Schedules are standard 5-field expressions (minute hour day month weekday)
// and are validated by NewManager. A task whose previous run is still in
// progress is skipped, and panics inside Handle are recovered and logged.
//
// RunNow executes a registered task immediately, outside its schedule.
//
// # Error Handling
//
//   - [ErrInvalidSchedule] - Schedule() is not a valid cron expression
//   - [ErrDuplicateTask] - two tasks share a name
//   - [ErrUnknownTask] - RunNow called with an unregistered name
//   - [ErrAlreadyStarted] / [ErrNotStarted] - lifecycle misuse
//   - [ErrTaskPanicked] - Handle panicked
package job
