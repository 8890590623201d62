package launch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchdigest/pkg/launch"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, 1, 10, 16, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 zulu", "2025-01-10T16:00:00.000Z", want},
		{"rfc3339 offset", "2025-01-10T08:00:00-08:00", want},
		{"no offset", "2025-01-10T16:00:00", want},
		{"minutes only", "2025-01-10T16:00", want},
		{"date only", "2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"surrounding space", " 2025-01-10T16:00:00Z ", want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := launch.ParseTime(tt.input)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %s", got)
			require.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "next tuesday", "2025-13-40"} {
		_, err := launch.ParseTime(bad)
		require.ErrorIs(t, err, launch.ErrInvalidTime, bad)
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 4, 0, 0, 0, time.FixedZone("PST", -8*3600))
	w := launch.NewWindow(now, 21*24*time.Hour)

	require.Equal(t, time.UTC, w.From.Location())
	require.True(t, w.From.Equal(now))
	require.True(t, w.To.Equal(now.Add(21*24*time.Hour)))

	require.True(t, w.Includes(w.To))
	require.True(t, w.Includes(now.Add(-time.Hour)))
	require.False(t, w.Includes(w.To.Add(time.Second)))
}

func TestSortByTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []launch.Record{
		{Name: "c", Time: base.Add(2 * time.Hour)},
		{Name: "a", Time: base},
		{Name: "b1", Time: base.Add(time.Hour)},
		{Name: "b2", Time: base.Add(time.Hour)},
	}
	launch.SortByTime(records)

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	require.Equal(t, []string{"a", "b1", "b2", "c"}, names)
}
