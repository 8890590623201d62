package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTask struct {
	handle   func(context.Context) error
	name     string
	schedule string
}

func (t *testTask) Name() string                     { return t.name }
func (t *testTask) Schedule() string                 { return t.schedule }
func (t *testTask) Handle(ctx context.Context) error { return t.handle(ctx) }

func noop(context.Context) error { return nil }

func TestNewManager_ValidSchedules(t *testing.T) {
	t.Parallel()

	exprs := []string{
		"* * * * *",
		"0 * * * *",
		"0 15 * * 1",
		"*/15 * * * *",
		"30 14 1 * *",
		"@weekly",
	}
	for _, expr := range exprs {
		_, err := NewManager(WithScheduledTask(&testTask{name: "t", schedule: expr, handle: noop}))
		require.NoError(t, err, expr)
	}
}

func TestNewManager_InvalidSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "too few fields", expr: "* * *"},
		{name: "seconds not enabled", expr: "* * * * * *"},
		{name: "invalid minute", expr: "60 * * * *"},
		{name: "invalid hour", expr: "* 25 * * *"},
		{name: "invalid weekday", expr: "* * * * 8"},
		{name: "garbage", expr: "not a cron expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewManager(WithScheduledTask(&testTask{name: "t", schedule: tt.expr, handle: noop}))
			require.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestNewManager_DuplicateTask(t *testing.T) {
	t.Parallel()

	_, err := NewManager(
		WithScheduledTask(&testTask{name: "digest", schedule: "0 15 * * 1", handle: noop}),
		WithScheduledTask(&testTask{name: "digest", schedule: "0 16 * * 1", handle: noop}),
	)
	require.ErrorIs(t, err, ErrDuplicateTask)
}

func TestManager_RunNow(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}
	var got any
	m, err := NewManager(WithScheduledTask(&testTask{
		name:     "digest",
		schedule: "0 15 * * 1",
		handle: func(ctx context.Context) error {
			got = ctx.Value(ctxKey{})
			return nil
		},
	}))
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	require.NoError(t, m.RunNow(ctx, "digest"))
	assert.Equal(t, "value", got)

	err = m.RunNow(ctx, "missing")
	require.ErrorIs(t, err, ErrUnknownTask)
}

func TestManager_RunNow_Errors(t *testing.T) {
	t.Parallel()

	taskErr := errors.New("smtp down")
	m, err := NewManager(
		WithScheduledTask(&testTask{name: "fails", schedule: "@daily", handle: func(context.Context) error { return taskErr }}),
		WithScheduledTask(&testTask{name: "panics", schedule: "@daily", handle: func(context.Context) error { panic("boom") }}),
	)
	require.NoError(t, err)

	require.ErrorIs(t, m.RunNow(context.Background(), "fails"), taskErr)

	err = m.RunNow(context.Background(), "panics")
	require.ErrorIs(t, err, ErrTaskPanicked)
	assert.Contains(t, err.Error(), "boom")
}

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()

	m, err := NewManager(WithScheduledTask(&testTask{name: "digest", schedule: "0 15 * * 1", handle: noop}))
	require.NoError(t, err)

	next, ok := m.Next("digest")
	require.True(t, ok)
	assert.True(t, next.IsZero())

	require.ErrorIs(t, m.Stop(context.Background()), ErrNotStarted)
	require.NoError(t, m.Start(context.Background()))
	require.ErrorIs(t, m.Start(context.Background()), ErrAlreadyStarted)

	next, ok = m.Next("digest")
	require.True(t, ok)
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 15, next.Hour())
	assert.Equal(t, time.UTC, next.Location())

	require.NoError(t, m.Stop(context.Background()))

	_, ok = m.Next("missing")
	assert.False(t, ok)
}

func TestManager_WithLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-7", -7*3600)
	m, err := NewManager(
		WithLocation(loc),
		WithScheduledTask(&testTask{name: "digest", schedule: "0 8 * * *", handle: noop}),
	)
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	next, _ := m.Next("digest")
	assert.Equal(t, 15, next.UTC().Hour())
}

func TestManager_Run_FiresAndStops(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	m, err := NewManager(
		WithSeconds(),
		WithScheduledTask(&testTask{name: "tick", schedule: "* * * * * *", handle: func(context.Context) error {
			runs.Add(1)
			return nil
		}}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManager_SkipsOverlappingRuns(t *testing.T) {
	t.Parallel()

	var (
		started atomic.Int32
		release = make(chan struct{})
	)
	m, err := NewManager(
		WithSeconds(),
		WithScheduledTask(&testTask{name: "slow", schedule: "* * * * * *", handle: func(ctx context.Context) error {
			started.Add(1)
			<-release
			return nil
		}}),
	)
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))

	require.Eventually(t, func() bool { return started.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	// Two more ticks pass while the first run is still blocked.
	time.Sleep(2200 * time.Millisecond)
	assert.EqualValues(t, 1, started.Load())

	close(release)
	require.NoError(t, m.Stop(context.Background()))
}

func TestManager_Run_CancelsRunningTask(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{}, 1)
	m, err := NewManager(
		WithSeconds(),
		WithScheduledTask(&testTask{name: "blocking", schedule: "* * * * * *", handle: func(ctx context.Context) error {
			select {
			case entered <- struct{}{}:
			default:
			}
			<-ctx.Done()
			return ctx.Err()
		}}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-entered:
	case <-time.After(3 * time.Second):
		t.Fatal("task never started")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not wait for and release the running task")
	}
}
