package calendar

import (
	"strings"
	"time"
)

// ViewType is the calendar granularity used to scope a date-range query.
type ViewType string

const (
	ViewDay   ViewType = "DAY"
	ViewWeek  ViewType = "WEEK"
	ViewMonth ViewType = "MONTH"
)

// Range is an inclusive time interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseViewType parses day/week/month case-insensitively.
func ParseViewType(s string) (ViewType, bool) {
	switch v := ViewType(strings.ToUpper(strings.TrimSpace(s))); v {
	case ViewDay, ViewWeek, ViewMonth:
		return v, true
	default:
		return "", false
	}
}

// Resolve maps a view type and an anchor date to the inclusive range it covers.
// Weeks start on Sunday. An unrecognized view falls back to the 24 hours starting
// at the anchor's midnight. The result is expressed in the anchor's location.
func Resolve(view ViewType, anchor time.Time) Range {
	day := midnight(anchor)

	switch view {
	case ViewWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return Range{Start: start, End: lastMilli(start.AddDate(0, 0, 6))}

	case ViewMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return Range{Start: start, End: lastMilli(start.AddDate(0, 1, -1))}

	default:
		return Range{Start: day, End: lastMilli(day)}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastMilli is 23:59:59.999 wall clock on t's calendar day. On DST transition
// days this is not midnight plus a fixed duration.
func lastMilli(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
