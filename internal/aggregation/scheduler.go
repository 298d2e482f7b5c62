package aggregation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// RunObserver is told about the outcome of every scheduled run.
type RunObserver interface {
	ObserveRun(job string, summary Summary, err error)
}

// Scheduler runs the login job on a fixed interval.
// Ticks never overlap: a run that outlasts the interval delays the next one.
type Scheduler struct {
	interval time.Duration
	lagDays  int
	job      *Job
	observer RunObserver
	nowFn    func() time.Time
}

// NewScheduler creates a scheduler. Each run ends lagDays before today so only
// complete days get committed. observer may be nil.
func NewScheduler(interval time.Duration, lagDays int, job *Job, observer RunObserver) *Scheduler {
	if lagDays < 0 {
		lagDays = 0
	}
	return &Scheduler{
		interval: interval,
		lagDays:  lagDays,
		job:      job,
		observer: observer,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Start runs once immediately, then on every tick, until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting login aggregation scheduler",
		"interval", s.interval,
		"lag_days", s.lagDays,
		"job", s.job.Name(),
	)

	// Catch up with any backlog before the first tick.
	s.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)", "job", s.job.Name())
			return nil
		}
	}
}

// runOnce executes one job run. Failures are logged; the checkpoint is left
// untouched so the next tick retries the same range.
func (s *Scheduler) runOnce(ctx context.Context) {
	end := usage.TruncateToDay(s.nowFn()).AddDate(0, 0, -s.lagDays)

	summary, err := s.job.Run(ctx, RunOptions{End: &end})
	if s.observer != nil {
		s.observer.ObserveRun(s.job.Name(), summary, err)
	}
	if err != nil {
		slog.Error("[Scheduler] Login aggregation failed",
			"error", err,
			"job", s.job.Name(),
			"run_id", summary.RunID,
			"end", end.Format(time.DateOnly),
		)
	}
}
