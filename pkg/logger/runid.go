package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type runIDKey struct{}

// WithRunID returns a context carrying a fresh run ID.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, runIDKey{}, uuid.NewString())
}

// RunID returns the run ID stored in ctx, if any.
func RunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// RunIDExtractor adds run_id to log records when present in the context.
func RunIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := RunID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("run_id", id), true
}
