package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/stretchr/testify/require"
)

type preparedBuckets struct {
	delete *sqlmock.ExpectedPrepare
	upsert *sqlmock.ExpectedPrepare
	find   *sqlmock.ExpectedPrepare
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, preparedBuckets) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	prepared := preparedBuckets{
		delete: mock.ExpectPrepare(regexp.QuoteMeta(queryDeleteBucket)),
		upsert: mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertBucket)),
		find:   mock.ExpectPrepare(regexp.QuoteMeta(queryFindBuckets)),
	}

	adapter, err := newAdapterWithDB(context.Background(), db)
	require.NoError(t, err)
	return adapter, mock, prepared
}

func TestAdapter_DeleteBucketTruncatesDay(t *testing.T) {
	adapter, mock, prepared := newMockAdapter(t)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prepared.delete.ExpectExec().
		WithArgs(day).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.DeleteBucket(context.Background(), day.Add(13*time.Hour))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UpsertBucketStoresEntriesAsJSON(t *testing.T) {
	adapter, mock, prepared := newMockAdapter(t)
	now := time.Date(2024, 1, 3, 1, 30, 0, 0, time.UTC)
	adapter.nowFn = func() time.Time { return now }

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []usage.LoginEntry{
		{User: "bob", Timestamp: day.Add(9 * time.Hour)},
		{User: "alice", Timestamp: day.Add(8 * time.Hour)},
	}
	entriesJSON, err := json.Marshal(entries)
	require.NoError(t, err)

	prepared.upsert.ExpectExec().
		WithArgs(day, entriesJSON, 2, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = adapter.UpsertBucket(context.Background(), usage.DailyBucket{Day: day, Entries: entries})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UpsertBucketPropagatesError(t *testing.T) {
	adapter, mock, prepared := newMockAdapter(t)

	prepared.upsert.ExpectExec().
		WillReturnError(errors.New("connection reset by peer"))

	err := adapter.UpsertBucket(context.Background(), usage.DailyBucket{
		Day:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Entries: []usage.LoginEntry{{User: "alice"}},
	})
	require.ErrorContains(t, err, "failed to upsert bucket")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindBucketsScansRows(t *testing.T) {
	adapter, mock, prepared := newMockAdapter(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	login := from.Add(10 * time.Hour)

	prepared.find.ExpectQuery().
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"day", "entries"}).
			AddRow(from, []byte(`[{"user":"alice","timestamp":"2024-01-01T10:00:00Z"},{"user":"bob","timestamp":"2024-01-01T10:00:00Z"}]`)).
			AddRow(from.AddDate(0, 0, 1), []byte(`[]`)))

	buckets, err := adapter.FindBuckets(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	require.Equal(t, from, buckets[0].Day)
	require.Len(t, buckets[0].Entries, 2)
	require.Equal(t, "alice", buckets[0].Entries[0].User)
	require.True(t, login.Equal(buckets[0].Entries[0].Timestamp))
	require.Empty(t, buckets[1].Entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindBucketsRejectsCorruptEntries(t *testing.T) {
	adapter, mock, prepared := newMockAdapter(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prepared.find.ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"day", "entries"}).AddRow(from, []byte(`{not json`)))

	_, err := adapter.FindBuckets(context.Background(), from, from.Add(usage.Day))
	require.ErrorContains(t, err, "failed to unmarshal entries for 2024-01-01")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSchema_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("login_buckets").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("job_checkpoints").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = validateSchema(context.Background(), db)
	require.EqualError(t, err, "job_checkpoints table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarshalEntries_NilIsEmptyArray(t *testing.T) {
	data, err := marshalEntries(nil)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))
}
