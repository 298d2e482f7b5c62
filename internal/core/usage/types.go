package usage

import "time"

// LogEvent is a single row of the source log. The log is owned by another
// system and is only ever read.
type LogEvent struct {
	Created time.Time
	User    string
	Message string
}

// LoginEntry is one successful login inside a daily bucket.
type LoginEntry struct {
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyBucket holds every successful login of one calendar day.
// Day is always UTC midnight and is the bucket's primary key.
// Entries keep the source order (most recently inserted first).
type DailyBucket struct {
	Day     time.Time    `json:"day"`
	Entries []LoginEntry `json:"entries"`
}

// IntervalCount is one row of the usage time series.
type IntervalCount struct {
	IntervalStart time.Time `json:"interval_start" yaml:"interval_start"`
	UniqueUsers   int       `json:"unique_users" yaml:"unique_users"`
}
