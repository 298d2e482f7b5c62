package usage

import (
	"fmt"
	"strings"
	"time"
)

// Day is the length of one bucket.
const Day = 24 * time.Hour

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TruncateToDay returns midnight UTC of the calendar day containing t.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextDay returns midnight UTC of the day after t.
func NextDay(t time.Time) time.Time {
	return TruncateToDay(t).AddDate(0, 0, 1)
}

// DaysInclusive counts the calendar days in [start, end]. Returns 0 when end < start.
func DaysInclusive(start, end time.Time) int {
	s, e := TruncateToDay(start), TruncateToDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s)/Day) + 1
}

// ParseTime accepts an ISO date or datetime. Values without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q (want YYYY-MM-DD or RFC3339)", s)
}

// ParseDate parses s and drops the time of day.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDay(t), nil
}
