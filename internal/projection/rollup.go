package projection

import (
	"sort"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// rollupUniqueUsers flattens bucket entries and counts distinct users per
// interval period. Periods are keyed by the entry timestamp, not the bucket
// day, and only periods with at least one entry are returned.
func rollupUniqueUsers(buckets []usage.DailyBucket, interval usage.Interval) []usage.IntervalCount {
	periods := make(map[time.Time]map[string]struct{})
	for _, bucket := range buckets {
		for _, entry := range bucket.Entries {
			start := interval.PeriodStart(entry.Timestamp)
			users, ok := periods[start]
			if !ok {
				users = make(map[string]struct{})
				periods[start] = users
			}
			users[entry.User] = struct{}{}
		}
	}

	results := make([]usage.IntervalCount, 0, len(periods))
	for start, users := range periods {
		results = append(results, usage.IntervalCount{
			IntervalStart: start,
			UniqueUsers:   len(users),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].IntervalStart.Before(results[j].IntervalStart)
	})

	return results
}
