// Package logger builds slog loggers with context extraction and optional Sentry reporting.
//
// Loggers write JSON (or text) to stdout. [ContextExtractor] functions pull
// request- or run-scoped values out of the context on every log call:
//
//	ctx := logger.WithRunID(context.Background())
//	log := logger.New(logger.Config{Level: "info"}, logger.RunIDExtractor)
//	log.InfoContext(ctx, "digest sent", slog.Int("launches", 3))
//	// {"level":"INFO","msg":"digest sent","launches":3,"run_id":"..."}
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry. With an
// empty DSN it behaves exactly like [New], so the same wiring serves local runs
// and production. Call [Flush] before the process exits so buffered events are
// delivered.
package logger
