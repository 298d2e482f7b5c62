package postgres

// SQL for the bucket and checkpoint tables. The source log query is built
// dynamically in source_log_adapter.go because its table name is configurable.

const (
	// queryDeleteBucket resets one day. Deleting a missing day affects 0 rows.
	queryDeleteBucket = `
		DELETE FROM login_buckets
		WHERE day = $1
	`

	// queryUpsertBucket replaces the entries of a day; never appends.
	queryUpsertBucket = `
		INSERT INTO login_buckets (day, entries, entry_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE SET
			entries     = EXCLUDED.entries,
			entry_count = EXCLUDED.entry_count,
			updated_at  = EXCLUDED.updated_at
	`

	// queryFindBuckets scans [from, to) on the bucket key.
	queryFindBuckets = `
		SELECT day, entries
		FROM login_buckets
		WHERE day >= $1
		  AND day < $2
		ORDER BY day ASC
	`

	queryReadCheckpoint = `SELECT offset_day FROM job_checkpoints WHERE job_name = $1`

	queryWriteCheckpoint = `
		INSERT INTO job_checkpoints (job_name, offset_day, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE SET
			offset_day = EXCLUDED.offset_day,
			updated_at = EXCLUDED.updated_at
	`
)
