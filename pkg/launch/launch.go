package launch

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Precision describes how exact a scheduled launch time is.
// Values match the SpaceX v4 "date_precision" field.
type Precision string

const (
	PrecisionHour    Precision = "hour"
	PrecisionDay     Precision = "day"
	PrecisionMonth   Precision = "month"
	PrecisionQuarter Precision = "quarter"
	PrecisionHalf    Precision = "half"
	PrecisionYear    Precision = "year"
)

// Record is a single upcoming launch.
type Record struct {
	Time      time.Time // Scheduled time, UTC
	Name      string    // Mission name
	Precision Precision // How exact Time is
	PatchURL  string    // Optional mission patch image
	Provider  string    // Name of the source that produced the record
}

// Window is the time range a digest covers.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow returns a window starting at now and spanning horizon.
func NewWindow(now time.Time, horizon time.Duration) Window {
	now = now.UTC()
	return Window{From: now, To: now.Add(horizon)}
}

// Includes reports whether t is not after the window end.
// Launches slipping past their scheduled date still count as upcoming,
// so the lower bound is not enforced.
func (w Window) Includes(t time.Time) bool {
	return !t.After(w.To)
}

// Source fetches launches scheduled inside a window.
type Source interface {
	// Name identifies the source in logs and on records.
	Name() string

	// Fetch returns upcoming launches no later than w.To, ordered by time.
	Fetch(ctx context.Context, w Window) ([]Record, error)
}

// ParseTime parses an ISO-8601 launch date as returned by the launch APIs.
// Dates without an offset are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTime)
	}

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		time.DateOnly,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// SortByTime orders records chronologically, keeping the API order for ties.
func SortByTime(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return a.Time.Compare(b.Time)
	})
}

// filterWindow drops records scheduled after the window end.
func filterWindow(records []Record, w Window) []Record {
	out := records[:0]
	for _, r := range records {
		if w.Includes(r.Time) {
			out = append(out, r)
		}
	}
	return out
}
