package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/launch"
)

// Bullet prefixes every launch line in the plain text body.
const Bullet = "• "

// FormatWhen renders the launch time as exact as its precision allows.
// Only hour precision is converted to loc; coarser dates are nominal UTC
// dates and would shift to the previous day west of Greenwich.
func FormatWhen(r launch.Record, loc *time.Location) string {
	t := r.Time.UTC()
	switch r.Precision {
	case launch.PrecisionHour, "":
		return r.Time.In(loc).Format("Mon Jan 02 03:04 PM")
	case launch.PrecisionDay:
		return t.Format("Mon Jan 02")
	case launch.PrecisionMonth:
		return "NET " + t.Format("Jan 2006")
	case launch.PrecisionQuarter:
		return fmt.Sprintf("NET Q%d %d", (int(t.Month())-1)/3+1, t.Year())
	case launch.PrecisionHalf:
		return fmt.Sprintf("NET H%d %d", (int(t.Month())-1)/6+1, t.Year())
	case launch.PrecisionYear:
		return fmt.Sprintf("NET %d", t.Year())
	default:
		return r.Time.In(loc).Format("Mon Jan 02 03:04 PM")
	}
}

// FormatLine renders a single launch line.
func FormatLine(r launch.Record, loc *time.Location) string {
	return Bullet + FormatWhen(r, loc) + " — " + r.Name
}

// FormatText renders the plain text body: one line per launch, or a
// notice when there are none.
func FormatText(records []launch.Record, loc *time.Location, site string, horizon time.Duration) string {
	if len(records) == 0 {
		return EmptyNotice(site, horizon)
	}

	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = FormatLine(r, loc)
	}
	return strings.Join(lines, "\n")
}

// EmptyNotice is the body sent when nothing is scheduled.
func EmptyNotice(site string, horizon time.Duration) string {
	return fmt.Sprintf("No %s launches currently scheduled in the next %s.", site, HorizonLabel(horizon))
}

// HorizonLabel renders a duration in the largest whole unit: weeks, days or hours.
func HorizonLabel(d time.Duration) string {
	const (
		day  = 24 * time.Hour
		week = 7 * day
	)
	plural := func(n int64, unit string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case d >= week && d%week == 0:
		return plural(int64(d/week), "week")
	case d >= day && d%day == 0:
		return plural(int64(d/day), "day")
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	default:
		return d.String()
	}
}
