package aggregation

import (
	"fmt"
	"log/slog"
)

// ProgressSink receives the job's progress after each processed day.
// fraction is in (0, 1]. Sinks are observational only.
type ProgressSink interface {
	Progress(fraction float64, msg string, args ...any)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(fraction float64, msg string, args ...any)

func (f ProgressFunc) Progress(fraction float64, msg string, args ...any) {
	f(fraction, msg, args...)
}

// NopProgress discards progress.
type NopProgress struct{}

func (NopProgress) Progress(float64, string, ...any) {}

// LogProgress writes progress to slog at info level.
type LogProgress struct {
	Job string
}

func (p LogProgress) Progress(fraction float64, msg string, args ...any) {
	slog.Info("[LoginJob] "+fmt.Sprintf(msg, args...),
		"job", p.Job,
		"progress", fmt.Sprintf("%.1f%%", fraction*100),
	)
}

// MultiProgress fans progress out to several sinks in order.
type MultiProgress []ProgressSink

func (m MultiProgress) Progress(fraction float64, msg string, args ...any) {
	for _, sink := range m {
		if sink != nil {
			sink.Progress(fraction, msg, args...)
		}
	}
}
