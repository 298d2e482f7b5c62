package storage

import (
	"context"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// LoginFilter selects successful login events from the source log.
// From is inclusive, To is exclusive.
type LoginFilter struct {
	From         time.Time
	To           time.Time
	Pattern      string // regular expression matched against the message
	ExcludedUser string // usually the administrative account
}

// SourceLog is the read-only view of the raw event log.
type SourceLog interface {
	// FindLogins returns (user, created) pairs matching filter, most recently
	// inserted first. No rows is not an error.
	FindLogins(ctx context.Context, filter LoginFilter) ([]usage.LoginEntry, error)
}

// BucketStore persists one DailyBucket per calendar day.
type BucketStore interface {
	// DeleteBucket removes the bucket for day. Missing buckets are not an error.
	DeleteBucket(ctx context.Context, day time.Time) error

	// UpsertBucket inserts the bucket or replaces the entries of an existing one.
	UpsertBucket(ctx context.Context, bucket usage.DailyBucket) error

	// FindBuckets returns buckets with day in [from, to), ordered by day ASC.
	FindBuckets(ctx context.Context, from, to time.Time) ([]usage.DailyBucket, error)
}

// CheckpointStore keeps the offset of each job: the exclusive upper bound
// of the day range it has fully processed.
type CheckpointStore interface {
	// ReadOffset returns ok=false when the job never committed a checkpoint.
	ReadOffset(ctx context.Context, job string) (offset time.Time, ok bool, err error)

	WriteOffset(ctx context.Context, job string, offset time.Time) error
}
