package usage

import (
	"fmt"
	"strings"
	"time"
)

// Interval is the grouping period of a usage query.
type Interval int

const (
	Daily Interval = iota + 1
	Weekly
	Monthly
	Quarterly
	Yearly
)

// DefaultInterval is used when the caller does not choose one.
const DefaultInterval = Weekly

var intervalCodes = map[string]Interval{
	"d":         Daily,
	"daily":     Daily,
	"w":         Weekly,
	"weekly":    Weekly,
	"m":         Monthly,
	"monthly":   Monthly,
	"q":         Quarterly,
	"quarterly": Quarterly,
	"y":         Yearly,
	"yearly":    Yearly,
}

// ParseInterval maps d|w|m|q|y (or the long names) to an Interval.
// Empty input yields DefaultInterval.
func ParseInterval(code string) (Interval, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return DefaultInterval, nil
	}
	if iv, ok := intervalCodes[code]; ok {
		return iv, nil
	}
	return 0, fmt.Errorf("%w: %q (must be one of d, w, m, q, y)", ErrInvalidAggregation, code)
}

// Code returns the single letter form.
func (i Interval) Code() string {
	switch i {
	case Daily:
		return "d"
	case Weekly:
		return "w"
	case Monthly:
		return "m"
	case Quarterly:
		return "q"
	case Yearly:
		return "y"
	default:
		return ""
	}
}

func (i Interval) String() string {
	switch i {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("Interval(%d)", int(i))
	}
}

// Valid reports whether i is one of the known intervals.
func (i Interval) Valid() bool {
	return i >= Daily && i <= Yearly
}

// PeriodStart returns the start (UTC midnight) of the calendar period containing t.
// Weeks start on Monday.
func (i Interval) PeriodStart(t time.Time) time.Time {
	day := TruncateToDay(t)
	year, month, _ := day.Date()

	switch i {
	case Weekly:
		sinceMonday := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -sinceMonday)
	case Monthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		first := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, first, 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}
