package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/google/uuid"
)

const (
	// DefaultJobName scopes the checkpoint of the login aggregation job.
	DefaultJobName = "login_usage"

	DefaultLoginPattern = "successful login"
	DefaultAdminUser    = "admin"
)

// JobParameter controls which events are extracted and where a fresh run starts.
type JobParameter struct {
	Name         string
	DefaultStart time.Time // used when there is no checkpoint or on reset
	LoginPattern string    // regular expression on the log message
	AdminUser    string    // excluded from every bucket
}

func (p JobParameter) normalized() JobParameter {
	n := p
	if n.Name == "" {
		n.Name = DefaultJobName
	}
	if n.LoginPattern == "" {
		n.LoginPattern = DefaultLoginPattern
	}
	if n.AdminUser == "" {
		n.AdminUser = DefaultAdminUser
	}
	if !n.DefaultStart.IsZero() {
		n.DefaultStart = usage.TruncateToDay(n.DefaultStart)
	}
	return n
}

// RunOptions are the per-invocation arguments. Nil Start resumes from the
// checkpoint; nil End means today.
type RunOptions struct {
	Start *time.Time
	End   *time.Time
	Reset bool
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Start   time.Time
	End     time.Time
	Days    int
	Buckets int
	Logins  int
	Skipped bool // already caught up, nothing processed
}

// Job aggregates successful logins into daily buckets, one day at a time,
// and commits a checkpoint once the whole range is done.
// Runs of the same job must not overlap.
type Job struct {
	source      storage.SourceLog
	buckets     storage.BucketStore
	checkpoints storage.CheckpointStore
	progress    ProgressSink
	params      JobParameter
	nowFn       func() time.Time
}

// NewJob wires a job to its stores. progress may be nil.
func NewJob(
	source storage.SourceLog,
	buckets storage.BucketStore,
	checkpoints storage.CheckpointStore,
	progress ProgressSink,
	params JobParameter,
) *Job {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Job{
		source:      source,
		buckets:     buckets,
		checkpoints: checkpoints,
		progress:    progress,
		params:      params.normalized(),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Name returns the checkpoint identity of the job.
func (j *Job) Name() string {
	return j.params.Name
}

// Run processes every day in [start, end] and then writes offset = end + 1 day.
//
// A start read from the checkpoint that already equals end + 1 day means the
// job is caught up: Run returns a Summary with Skipped set and a nil error.
// Any other start after end, including a caller-supplied one, is an
// invalid range.
//
// Range errors (usage.ErrInvalidRange) are returned before anything is
// mutated. Store errors (usage.ErrTransientStore) stop the run; days already
// written stay, the checkpoint is not advanced.
func (j *Job) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	today := usage.TruncateToDay(j.nowFn())

	start, fromCheckpoint, err := j.resolveStart(ctx, opts)
	if err != nil {
		return summary, err
	}

	end := today
	if opts.End != nil {
		end = usage.TruncateToDay(*opts.End)
	}
	summary.Start, summary.End = start, end

	if fromCheckpoint && start.Equal(end.AddDate(0, 0, 1)) {
		slog.Info("[LoginJob] Already up to date",
			"job", j.params.Name,
			"run_id", summary.RunID,
			"offset", start.Format(time.DateOnly),
		)
		summary.Skipped = true
		return summary, nil
	}

	if end.Before(start) || end.After(today) {
		return summary, usage.InvalidRangef("unexpected date range [%s - %s]",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	total := usage.DaysInclusive(start, end)
	slog.Info("[LoginJob] Starting aggregation",
		"job", j.params.Name,
		"run_id", summary.RunID,
		"start", start.Format(time.DateOnly),
		"end", end.Format(time.DateOnly),
		"days", total,
		"from_checkpoint", fromCheckpoint,
	)

	for day, n := start, 1; !day.After(end); day, n = day.AddDate(0, 0, 1), n+1 {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run interrupted before %s: %w", day.Format(time.DateOnly), err)
		}

		if err := j.reset(ctx, day); err != nil {
			return summary, err
		}
		logins, err := j.extract(ctx, day)
		if err != nil {
			return summary, err
		}

		summary.Days++
		summary.Logins += logins
		if logins > 0 {
			summary.Buckets++
		}

		j.progress.Progress(float64(n)/float64(total), "work [%s] day [%d]", day.Format(time.DateOnly), n)
	}

	offset := end.AddDate(0, 0, 1)
	if err := j.checkpoints.WriteOffset(ctx, j.params.Name, offset); err != nil {
		return summary, usage.StoreError("write checkpoint", err)
	}

	slog.Info("[LoginJob] Aggregation complete",
		"job", j.params.Name,
		"run_id", summary.RunID,
		"days", summary.Days,
		"buckets", summary.Buckets,
		"logins", summary.Logins,
		"offset", offset.Format(time.DateOnly),
	)
	return summary, nil
}

// resolveStart picks the first day to process and reports whether it came
// from the checkpoint.
func (j *Job) resolveStart(ctx context.Context, opts RunOptions) (time.Time, bool, error) {
	if opts.Start != nil {
		return usage.TruncateToDay(*opts.Start), false, nil
	}

	if !opts.Reset {
		offset, ok, err := j.checkpoints.ReadOffset(ctx, j.params.Name)
		if err != nil {
			return time.Time{}, false, usage.StoreError("read checkpoint", err)
		}
		if ok {
			return usage.TruncateToDay(offset), true, nil
		}
	}

	if j.params.DefaultStart.IsZero() {
		return time.Time{}, false, usage.InvalidRangef("no start date given and no default start configured")
	}
	return j.params.DefaultStart, false, nil
}

// reset deletes the bucket of day. It always runs, even when the day ends up
// with no logins, so a day whose source rows disappeared loses its bucket.
func (j *Job) reset(ctx context.Context, day time.Time) error {
	if err := j.buckets.DeleteBucket(ctx, day); err != nil {
		return usage.StoreError("reset "+day.Format(time.DateOnly), err)
	}
	return nil
}

// extract copies the day's successful logins into its bucket and returns how
// many it found. Zero logins writes nothing.
func (j *Job) extract(ctx context.Context, day time.Time) (int, error) {
	entries, err := j.source.FindLogins(ctx, storage.LoginFilter{
		From:         day,
		To:           day.AddDate(0, 0, 1),
		Pattern:      j.params.LoginPattern,
		ExcludedUser: j.params.AdminUser,
	})
	if err != nil {
		return 0, usage.StoreError("extract "+day.Format(time.DateOnly), err)
	}

	slog.Debug("[LoginJob] Extracted logins", "day", day.Format(time.DateOnly), "count", len(entries))
	if len(entries) == 0 {
		return 0, nil
	}

	if err := j.buckets.UpsertBucket(ctx, usage.DailyBucket{Day: day, Entries: entries}); err != nil {
		return 0, usage.StoreError("upsert "+day.Format(time.DateOnly), err)
	}
	return len(entries), nil
}
