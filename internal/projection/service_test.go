package projection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/login-usage/internal/aggregation"
	"github.com/aevon-lab/login-usage/internal/core/storage/memory"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	storagemocks "github.com/aevon-lab/login-usage/internal/mocks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type queryRecord struct {
	aggregate string
	err       error
}

type recordingObserver struct {
	queries []queryRecord
}

func (o *recordingObserver) ObserveQuery(aggregate string, err error) {
	o.queries = append(o.queries, queryRecord{aggregate: aggregate, err: err})
}

func seedBuckets(t *testing.T, buckets ...usage.DailyBucket) *memory.BucketStore {
	t.Helper()
	store := memory.NewBucketStore()
	for _, b := range buckets {
		require.NoError(t, store.UpsertBucket(context.Background(), b))
	}
	return store
}

func bucket(day time.Time, users ...string) usage.DailyBucket {
	b := usage.DailyBucket{Day: day}
	for i, u := range users {
		b.Entries = append(b.Entries, usage.LoginEntry{User: u, Timestamp: day.Add(time.Duration(i+1) * time.Hour)})
	}
	return b
}

func TestService_Query_TwoPartialWeeks(t *testing.T) {
	store := seedBuckets(t,
		bucket(at(2024, 1, 3, 0), "dave"), // before range
		bucket(at(2024, 1, 4, 0), "alice"),
		bucket(at(2024, 1, 6, 0), "bob", "alice"),
		bucket(at(2024, 1, 8, 0), "carol"),
		bucket(at(2024, 1, 9, 0), "alice", "carol"),
		bucket(at(2024, 1, 10, 0), "erin"), // end is exclusive
	)
	svc := NewService(store, nil)

	got, err := svc.Query(context.Background(), QueryRequest{
		Start:     at(2024, 1, 4, 0),
		End:       at(2024, 1, 10, 0),
		Aggregate: "w",
	})
	require.NoError(t, err)

	assert.Equal(t, []usage.IntervalCount{
		{IntervalStart: at(2024, 1, 1, 0), UniqueUsers: 2},
		{IntervalStart: at(2024, 1, 8, 0), UniqueUsers: 2},
	}, got)
}

func TestService_Query_AfterAggregation(t *testing.T) {
	jan1 := at(2024, 1, 1, 0)
	jan2 := at(2024, 1, 2, 0)
	source := memory.NewSourceLog(
		usage.LogEvent{Created: jan1.Add(8 * time.Hour), User: "alice", Message: "successful login"},
		usage.LogEvent{Created: jan1.Add(9 * time.Hour), User: "bob", Message: "successful login"},
		usage.LogEvent{Created: jan2.Add(8 * time.Hour), User: "alice", Message: "successful login"},
	)
	buckets := memory.NewBucketStore()
	job := aggregation.NewJob(source, buckets, memory.NewCheckpointStore(), nil, aggregation.JobParameter{DefaultStart: jan1})

	_, err := job.Run(context.Background(), aggregation.RunOptions{Start: &jan1, End: &jan2})
	require.NoError(t, err)

	got, err := NewService(buckets, nil).Query(context.Background(), QueryRequest{
		Start:     jan1,
		End:       jan2.AddDate(0, 0, 1),
		Aggregate: "daily",
	})
	require.NoError(t, err)
	assert.Equal(t, []usage.IntervalCount{
		{IntervalStart: jan1, UniqueUsers: 2},
		{IntervalStart: jan2, UniqueUsers: 1},
	}, got)
}

func TestService_Usage_Defaults(t *testing.T) {
	now := at(2024, 6, 30, 15)
	store := seedBuckets(t,
		bucket(at(2024, 4, 1, 0), "alice"), // older than 90 days
		bucket(at(2024, 6, 3, 0), "bob"),
	)
	observer := &recordingObserver{}
	svc := NewService(store, observer)
	svc.nowFn = func() time.Time { return now }

	resp, err := svc.Usage(context.Background(), QueryRequest{})
	require.NoError(t, err)

	assert.Equal(t, now, resp.End)
	assert.Equal(t, now.Add(-DefaultLookback), resp.Start)
	assert.Equal(t, "w", resp.Aggregate)
	assert.Equal(t, []usage.IntervalCount{{IntervalStart: at(2024, 6, 3, 0), UniqueUsers: 1}}, resp.Data)

	require.Len(t, observer.queries, 1)
	assert.NoError(t, observer.queries[0].err)
}

func TestService_Query_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     QueryRequest
		wantErr error
	}{
		{
			name:    "end equals start",
			req:     QueryRequest{Start: at(2024, 1, 2, 0), End: at(2024, 1, 2, 0)},
			wantErr: usage.ErrInvalidRange,
		},
		{
			name:    "end before start",
			req:     QueryRequest{Start: at(2024, 1, 5, 0), End: at(2024, 1, 2, 0)},
			wantErr: usage.ErrInvalidRange,
		},
		{
			name:    "unknown aggregate",
			req:     QueryRequest{Start: at(2024, 1, 1, 0), End: at(2024, 1, 2, 0), Aggregate: "x"},
			wantErr: usage.ErrInvalidAggregation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No expectations: validation must fail before the store is touched.
			store := storagemocks.NewBucketStore(t)
			observer := &recordingObserver{}

			_, err := NewService(store, observer).Query(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			require.Len(t, observer.queries, 1)
			assert.ErrorIs(t, observer.queries[0].err, tc.wantErr)
		})
	}
}

func TestService_Usage_ObservesParsedAggregate(t *testing.T) {
	observer := &recordingObserver{}
	svc := NewService(memory.NewBucketStore(), observer)
	req := QueryRequest{Start: at(2024, 1, 1, 0), End: at(2024, 1, 8, 0)}

	for _, code := range []string{"W", " weekly ", "MONTHLY", "junk-1", "junk-2"} {
		req.Aggregate = code
		_, _ = svc.Usage(context.Background(), req)
	}

	var labels []string
	for _, q := range observer.queries {
		labels = append(labels, q.aggregate)
	}
	assert.Equal(t, []string{"w", "w", "m", UnknownAggregate, UnknownAggregate}, labels)
}

func TestService_Query_StoreError(t *testing.T) {
	start, end := at(2024, 1, 1, 0), at(2024, 2, 1, 0)
	store := storagemocks.NewBucketStore(t)
	store.EXPECT().
		FindBuckets(mock.Anything, start, end).
		Return(nil, errors.New("connection reset")).
		Once()

	_, err := NewService(store, nil).Query(context.Background(), QueryRequest{Start: start, End: end, Aggregate: "m"})
	require.ErrorIs(t, err, usage.ErrTransientStore)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("2024-01-01", "2024-02-01T12:00:00Z", "q")
	require.NoError(t, err)
	assert.Equal(t, at(2024, 1, 1, 0), req.Start)
	assert.Equal(t, at(2024, 2, 1, 12), req.End)
	assert.Equal(t, "q", req.Aggregate)

	req, err = ParseRequest("", "", "")
	require.NoError(t, err)
	assert.True(t, req.Start.IsZero())
	assert.True(t, req.End.IsZero())

	_, err = ParseRequest("yesterday", "", "")
	assert.ErrorIs(t, err, usage.ErrInvalidRange)
}
