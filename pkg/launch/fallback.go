package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Fallback queries sources in order and returns the first non-empty answer.
//
// A source that fails is logged and skipped. If every source fails the
// errors are joined with ErrAllSourcesFailed. If at least one source
// answered, its (possibly empty) result is returned without error.
type Fallback struct {
	logger  *slog.Logger
	sources []Source
}

// NewFallback creates a Fallback over sources. A nil logger discards output.
func NewFallback(logger *slog.Logger, sources ...Source) *Fallback {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fallback{logger: logger, sources: sources}
}

// Name implements Source.
func (f *Fallback) Name() string { return "fallback" }

// Fetch implements Source.
func (f *Fallback) Fetch(ctx context.Context, w Window) ([]Record, error) {
	if len(f.sources) == 0 {
		return nil, ErrNoSources
	}

	var (
		errs     []error
		answered bool
	)
	for _, src := range f.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := src.Fetch(ctx, w)
		if err != nil {
			f.logger.WarnContext(ctx, "launch source failed",
				slog.String("source", src.Name()),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		answered = true
		if len(records) > 0 {
			f.logger.DebugContext(ctx, "launch source answered",
				slog.String("source", src.Name()),
				slog.Int("launches", len(records)),
			)
			return records, nil
		}
		f.logger.InfoContext(ctx, "launch source returned no launches", slog.String("source", src.Name()))
	}

	if !answered {
		return nil, errors.Join(append([]error{ErrAllSourcesFailed}, errs...)...)
	}
	return []Record{}, nil
}

var _ Source = (*Fallback)(nil)
