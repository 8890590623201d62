package job

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Manager runs registered tasks on their cron schedules.
type Manager struct {
	cron    *cron.Cron
	logger  *slog.Logger
	tasks   map[string]*scheduledTask
	baseCtx context.Context
	mu      sync.Mutex
	started bool
}

type scheduledTask struct {
	scheduleConfig
	entryID cron.EntryID
}

// NewManager creates a job manager and validates every task schedule.
func NewManager(opts ...Option) (*Manager, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	parser := newParser(cfg.seconds)
	cl := cronLogger{logger: logger}

	m := &Manager{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(cfg.location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		tasks:   make(map[string]*scheduledTask, len(cfg.schedules)),
		baseCtx: context.Background(),
	}

	for _, sched := range cfg.schedules {
		if _, ok := m.tasks[sched.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, sched.name)
		}
		schedule, err := parser.Parse(sched.schedule)
		if err != nil {
			return nil, fmt.Errorf("%w %q for %s: %w", ErrInvalidSchedule, sched.schedule, sched.name, err)
		}

		task := &scheduledTask{scheduleConfig: sched}
		task.entryID = m.cron.Schedule(schedule, cron.FuncJob(func() {
			_ = m.execute(m.runContext(), task.name, task.handler)
		}))
		m.tasks[sched.name] = task
	}

	return m, nil
}

// Start begins firing schedules in the background.
// Tasks receive ctx, so canceling it aborts running handlers.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	m.baseCtx = ctx
	m.cron.Start()
	m.started = true

	for _, task := range m.tasks {
		m.logger.InfoContext(ctx, "task scheduled",
			slog.String("task", task.name),
			slog.String("schedule", task.schedule),
			slog.Time("next_run", m.cron.Entry(task.entryID).Next),
		)
	}
	return nil
}

// Stop halts the scheduler and waits for running tasks to return
// or for ctx to be done, whichever comes first.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.started = false
	m.mu.Unlock()

	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
		return fmt.Errorf("job: stop: %w", ctx.Err())
	}

	m.logger.Info("job manager stopped")
	return nil
}

// Run starts the manager, blocks until ctx is canceled, then waits
// for running tasks to finish.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return m.Stop(context.WithoutCancel(ctx))
}

// RunNow executes the named task immediately and returns its error.
func (m *Manager) RunNow(ctx context.Context, name string) error {
	task, ok := m.tasks[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.execute(ctx, name, task.handler)
}

// Next returns the next scheduled run of the named task.
// It is zero until the manager is started.
func (m *Manager) Next(name string) (time.Time, bool) {
	task, ok := m.tasks[name]
	if !ok {
		return time.Time{}, false
	}
	return m.cron.Entry(task.entryID).Next, true
}

func (m *Manager) runContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseCtx
}

func (m *Manager) execute(ctx context.Context, name string, handler scheduledHandler) (err error) {
	start := time.Now()
	m.logger.DebugContext(ctx, "executing task", slog.String("task", name))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrTaskPanicked, name, r)
			m.logger.ErrorContext(ctx, "task panicked",
				slog.String("task", name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	if err := handler(ctx); err != nil {
		m.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return err
	}

	m.logger.InfoContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func newParser(seconds bool) cron.Parser {
	fields := cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow
	if seconds {
		fields |= cron.SecondOptional
	}
	return cron.NewParser(fields | cron.Descriptor)
}

// cronLogger routes cron's internal logging to slog.
// cron reports every wake-up through Info, so it is logged at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
