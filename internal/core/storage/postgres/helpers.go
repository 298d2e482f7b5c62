package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// marshalEntries encodes bucket entries for the JSONB column.
// A nil slice is stored as an empty array, not JSON null.
func marshalEntries(entries []usage.LoginEntry) ([]byte, error) {
	if entries == nil {
		entries = []usage.LoginEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entries: %w", err)
	}
	return data, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBucketRow scans (day, entries) into a DailyBucket.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanBucketRow(row scanner) (usage.DailyBucket, error) {
	var bucket usage.DailyBucket
	var entriesJSON []byte

	if err := row.Scan(&bucket.Day, &entriesJSON); err != nil {
		return usage.DailyBucket{}, fmt.Errorf("failed to scan bucket row: %w", err)
	}
	bucket.Day = usage.TruncateToDay(bucket.Day)

	if len(entriesJSON) > 0 {
		if err := json.Unmarshal(entriesJSON, &bucket.Entries); err != nil {
			return usage.DailyBucket{}, fmt.Errorf("failed to unmarshal entries for %s: %w", bucket.Day.Format(time.DateOnly), err)
		}
	}
	return bucket, nil
}
