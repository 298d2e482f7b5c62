package projection

import (
	"testing"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestRollupUniqueUsers_CountsDistinctUsers(t *testing.T) {
	day := at(2024, 3, 5, 0)
	buckets := []usage.DailyBucket{{
		Day: day,
		Entries: []usage.LoginEntry{
			{User: "u1", Timestamp: day.Add(time.Hour)},
			{User: "u1", Timestamp: day.Add(2 * time.Hour)},
			{User: "u2", Timestamp: day.Add(3 * time.Hour)},
		},
	}}

	for _, interval := range []usage.Interval{usage.Daily, usage.Weekly, usage.Monthly, usage.Quarterly, usage.Yearly} {
		t.Run(interval.String(), func(t *testing.T) {
			got := rollupUniqueUsers(buckets, interval)
			require.Len(t, got, 1)
			assert.Equal(t, 2, got[0].UniqueUsers)
			assert.Equal(t, interval.PeriodStart(day), got[0].IntervalStart)
		})
	}
}

func TestRollupUniqueUsers_GroupsByPeriod(t *testing.T) {
	buckets := []usage.DailyBucket{
		{Day: at(2024, 1, 31, 0), Entries: []usage.LoginEntry{{User: "alice", Timestamp: at(2024, 1, 31, 9)}}},
		{Day: at(2024, 2, 1, 0), Entries: []usage.LoginEntry{
			{User: "bob", Timestamp: at(2024, 2, 1, 10)},
			{User: "alice", Timestamp: at(2024, 2, 1, 8)},
		}},
		{Day: at(2024, 4, 2, 0), Entries: []usage.LoginEntry{{User: "carol", Timestamp: at(2024, 4, 2, 12)}}},
	}

	monthly := rollupUniqueUsers(buckets, usage.Monthly)
	assert.Equal(t, []usage.IntervalCount{
		{IntervalStart: at(2024, 1, 1, 0), UniqueUsers: 1},
		{IntervalStart: at(2024, 2, 1, 0), UniqueUsers: 2},
		{IntervalStart: at(2024, 4, 1, 0), UniqueUsers: 1},
	}, monthly, "March has no logins and is omitted")

	quarterly := rollupUniqueUsers(buckets, usage.Quarterly)
	assert.Equal(t, []usage.IntervalCount{
		{IntervalStart: at(2024, 1, 1, 0), UniqueUsers: 2},
		{IntervalStart: at(2024, 4, 1, 0), UniqueUsers: 1},
	}, quarterly)

	yearly := rollupUniqueUsers(buckets, usage.Yearly)
	assert.Equal(t, []usage.IntervalCount{{IntervalStart: at(2024, 1, 1, 0), UniqueUsers: 3}}, yearly)
}

func TestRollupUniqueUsers_Empty(t *testing.T) {
	got := rollupUniqueUsers(nil, usage.Weekly)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = rollupUniqueUsers([]usage.DailyBucket{{Day: at(2024, 1, 1, 0)}}, usage.Daily)
	assert.Empty(t, got)
}
