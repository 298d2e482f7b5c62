package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// DefaultLookback is the query window used when no start is given.
const DefaultLookback = 90 * 24 * time.Hour

// UnknownAggregate is reported to the QueryObserver when the requested
// aggregate code does not parse.
const UnknownAggregate = "invalid"

// QueryObserver is told about every query outcome. aggregate is the parsed
// interval code, or UnknownAggregate.
type QueryObserver interface {
	ObserveQuery(aggregate string, err error)
}

// Service implements the read side: it rolls daily login buckets up into
// unique-user counts per interval. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	buckets  storage.BucketStore
	observer QueryObserver
	nowFn    func() time.Time
}

// NewService creates a new usage query service. observer may be nil.
func NewService(buckets storage.BucketStore, observer QueryObserver) *Service {
	return &Service{
		buckets:  buckets,
		observer: observer,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Query returns the number of distinct users per interval for buckets with
// day in [req.Start, req.End), ascending. Intervals without logins are omitted.
func (s *Service) Query(ctx context.Context, req QueryRequest) ([]usage.IntervalCount, error) {
	resp, err := s.Usage(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Usage is Query plus the resolved request, as served by the HTTP API.
func (s *Service) Usage(ctx context.Context, req QueryRequest) (*UsageResponse, error) {
	resp, err := s.usage(ctx, req)
	if s.observer != nil {
		s.observer.ObserveQuery(aggregateLabel(req.Aggregate), err)
	}
	return resp, err
}

func aggregateLabel(code string) string {
	interval, err := usage.ParseInterval(code)
	if err != nil {
		return UnknownAggregate
	}
	return interval.Code()
}

func (s *Service) usage(ctx context.Context, req QueryRequest) (*UsageResponse, error) {
	req, interval, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	buckets, err := s.buckets.FindBuckets(ctx, req.Start, req.End)
	if err != nil {
		return nil, usage.StoreError("query buckets", err)
	}

	return &UsageResponse{
		Start:     req.Start,
		End:       req.End,
		Aggregate: interval.Code(),
		Data:      rollupUniqueUsers(buckets, interval),
	}, nil
}

func (s *Service) normalizeAndValidate(req QueryRequest) (QueryRequest, usage.Interval, error) {
	interval, err := usage.ParseInterval(req.Aggregate)
	if err != nil {
		return req, 0, err
	}

	if req.End.IsZero() {
		req.End = s.nowFn()
	}
	if req.Start.IsZero() {
		req.Start = req.End.Add(-DefaultLookback)
	}
	req.Start, req.End = req.Start.UTC(), req.End.UTC()

	if !req.End.After(req.Start) {
		return req, 0, usage.InvalidRangef("end %s must be after start %s",
			req.End.Format(time.RFC3339), req.Start.Format(time.RFC3339))
	}
	return req, interval, nil
}

// ParseRequest builds a QueryRequest from the textual start, end and
// aggregate values accepted by the HTTP API and the CLI. Empty values stay
// unset.
func ParseRequest(start, end, aggregate string) (QueryRequest, error) {
	req := QueryRequest{Aggregate: aggregate}
	if start != "" {
		t, err := usage.ParseTime(start)
		if err != nil {
			return req, fmt.Errorf("%w: start: %w", usage.ErrInvalidRange, err)
		}
		req.Start = t
	}
	if end != "" {
		t, err := usage.ParseTime(end)
		if err != nil {
			return req, fmt.Errorf("%w: end: %w", usage.ErrInvalidRange, err)
		}
		req.End = t
	}
	return req, nil
}
