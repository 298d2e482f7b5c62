package memory

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// SourceLog is an in-memory storage.SourceLog. Events keep insertion order.
type SourceLog struct {
	mu     sync.RWMutex
	events []usage.LogEvent
}

// NewSourceLog creates a source log pre-filled with events in insertion order.
func NewSourceLog(events ...usage.LogEvent) *SourceLog {
	return &SourceLog{events: append([]usage.LogEvent(nil), events...)}
}

// Append adds events after the existing ones.
func (s *SourceLog) Append(events ...usage.LogEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

func (s *SourceLog) FindLogins(ctx context.Context, filter storage.LoginFilter) ([]usage.LoginEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(filter.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile login pattern: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []usage.LoginEntry
	for i := len(s.events) - 1; i >= 0; i-- {
		evt := s.events[i]
		if evt.Created.Before(filter.From) || !evt.Created.Before(filter.To) {
			continue
		}
		if evt.User == filter.ExcludedUser || !re.MatchString(evt.Message) {
			continue
		}
		entries = append(entries, usage.LoginEntry{User: evt.User, Timestamp: evt.Created})
	}
	return entries, nil
}

// BucketStore is an in-memory storage.BucketStore keyed by day.
type BucketStore struct {
	mu      sync.RWMutex
	buckets map[time.Time]usage.DailyBucket
}

func NewBucketStore() *BucketStore {
	return &BucketStore{buckets: make(map[time.Time]usage.DailyBucket)}
}

func (s *BucketStore) DeleteBucket(ctx context.Context, day time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, usage.TruncateToDay(day))
	return nil
}

func (s *BucketStore) UpsertBucket(ctx context.Context, bucket usage.DailyBucket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	day := usage.TruncateToDay(bucket.Day)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[day] = usage.DailyBucket{
		Day:     day,
		Entries: append([]usage.LoginEntry(nil), bucket.Entries...),
	}
	return nil
}

func (s *BucketStore) FindBuckets(ctx context.Context, from, to time.Time) ([]usage.DailyBucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []usage.DailyBucket
	for day, bucket := range s.buckets {
		if day.Before(from) || !day.Before(to) {
			continue
		}
		result = append(result, usage.DailyBucket{
			Day:     bucket.Day,
			Entries: append([]usage.LoginEntry(nil), bucket.Entries...),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day.Before(result[j].Day) })
	return result, nil
}

// Days lists the stored bucket days in ascending order.
func (s *BucketStore) Days() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days := make([]time.Time, 0, len(s.buckets))
	for day := range s.buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CheckpointStore is an in-memory storage.CheckpointStore.
type CheckpointStore struct {
	mu      sync.RWMutex
	offsets map[string]time.Time
}

func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{offsets: make(map[string]time.Time)}
}

func (s *CheckpointStore) ReadOffset(ctx context.Context, job string) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	offset, ok := s.offsets[job]
	return offset, ok, nil
}

func (s *CheckpointStore) WriteOffset(ctx context.Context, job string, offset time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[job] = offset
	return nil
}
