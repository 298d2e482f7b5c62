package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
)

// CheckpointAdapter implements storage.CheckpointStore on the job_checkpoints table.
// One row per job name; the row is created by the first WriteOffset.
type CheckpointAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

// NewCheckpointAdapter creates a CheckpointAdapter sharing the given connection.
func NewCheckpointAdapter(db *sql.DB) *CheckpointAdapter {
	return &CheckpointAdapter{db: db, nowFn: utcNow}
}

// ReadOffset returns ok=false if the job has never committed a checkpoint.
func (a *CheckpointAdapter) ReadOffset(ctx context.Context, job string) (time.Time, bool, error) {
	var offset time.Time
	err := a.db.QueryRowContext(ctx, queryReadCheckpoint, job).Scan(&offset)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read checkpoint %q: %w", job, err)
	}
	return usage.TruncateToDay(offset), true, nil
}

// WriteOffset stores offset as the job's exclusive upper bound.
func (a *CheckpointAdapter) WriteOffset(ctx context.Context, job string, offset time.Time) error {
	offset = usage.TruncateToDay(offset)

	if _, err := a.db.ExecContext(ctx, queryWriteCheckpoint, job, offset, a.nowFn()); err != nil {
		return fmt.Errorf("write checkpoint %q: %w", job, err)
	}

	slog.Info("[Postgres] Checkpoint written", "job", job, "offset", offset.Format(time.DateOnly))
	return nil
}
