package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection serves canned documents and records the last query.
type fakeCollection struct {
	docs       []interface{}
	findErr    error
	lastFilter interface{}
	lastOpts   []*options.FindOptions
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.lastFilter = filter
	f.lastOpts = opts
	if f.findErr != nil {
		return nil, f.findErr
	}
	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func TestLoginFilter(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := loginFilter(storage.LoginFilter{
		From:         day,
		To:           day.Add(usage.Day),
		Pattern:      "successful login",
		ExcludedUser: "admin",
	})

	assert.Equal(t, bson.M{
		"created": bson.M{"$gte": day, "$lt": day.Add(usage.Day)},
		"message": primitive.Regex{Pattern: "successful login"},
		"user":    bson.M{"$ne": "admin"},
	}, got)
}

func TestLoginFilter_OptionalClauses(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	got := loginFilter(storage.LoginFilter{From: day, To: day.Add(usage.Day)})
	assert.NotContains(t, got, "message")
	assert.NotContains(t, got, "user")
}

func TestSourceLogAdapter_FindLogins(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	coll := &fakeCollection{docs: []interface{}{
		bson.D{{Key: "created", Value: day.Add(9 * time.Hour)}, {Key: "user", Value: "bob"}},
		bson.D{{Key: "created", Value: day.Add(8 * time.Hour)}, {Key: "user", Value: "alice"}},
	}}
	adapter := &SourceLogAdapter{collection: coll, name: "core4.sys.log"}

	entries, err := adapter.FindLogins(context.Background(), storage.LoginFilter{
		From:    day,
		To:      day.Add(usage.Day),
		Pattern: "successful login",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].User)
	assert.True(t, day.Add(9*time.Hour).Equal(entries[0].Timestamp))
	assert.Equal(t, "alice", entries[1].User)

	require.Len(t, coll.lastOpts, 1)
	assert.Equal(t, bson.D{{Key: "_id", Value: -1}}, coll.lastOpts[0].Sort)
}

func TestSourceLogAdapter_FindLoginsEmpty(t *testing.T) {
	adapter := &SourceLogAdapter{collection: &fakeCollection{}}

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries, err := adapter.FindLogins(context.Background(), storage.LoginFilter{From: day, To: day.Add(usage.Day)})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSourceLogAdapter_FindLoginsError(t *testing.T) {
	adapter := &SourceLogAdapter{collection: &fakeCollection{findErr: errors.New("server selection timeout")}}

	_, err := adapter.FindLogins(context.Background(), storage.LoginFilter{})
	require.ErrorContains(t, err, "failed to query source log")
}
