package schedule

import (
	"fmt"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DayStart returns the start of t's day in loc, converted to UTC.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDayStart returns the start of the day after t's day in loc, converted to UTC.
func NextDayStart(t time.Time, loc *time.Location) time.Time {
	// AddDate handles DST correctly, Add(24h) does not
	next := DayStart(t, loc).In(loc).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc).UTC()
}

// DayKey returns the "YYYY-MM-DD" key of t's day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// ParseTimezone resolves an IANA zone name. An empty name means UTC.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("parse timezone %q: %w", tz, err)
	}
	return loc, nil
}

// ParseMonth parses a "YYYY-MM" label and returns the first and last day of
// that month in loc.
func ParseMonth(month string, loc *time.Location) (first, last time.Time, err error) {
	first, err = time.ParseInLocation(monthLayout, month, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse month %q: %w", month, err)
	}
	last = first.AddDate(0, 1, -1)
	return first, last, nil
}
