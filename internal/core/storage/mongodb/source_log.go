package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// finder is the part of *mongo.Collection the adapter needs.
type finder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// logDocument is the projected shape of a sys.log document.
type logDocument struct {
	Created time.Time `bson:"created"`
	User    string    `bson:"user"`
}

// SourceLogAdapter implements storage.SourceLog on a MongoDB log collection.
type SourceLogAdapter struct {
	client     *mongo.Client
	collection finder
	name       string
}

// Connect opens a client, verifies it against the primary and binds the
// adapter to database.collection.
func Connect(ctx context.Context, uri, database, collection string, timeout time.Duration) (*SourceLogAdapter, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	slog.Info("[Mongo] Connected to source log",
		"database", database,
		"collection", collection)

	return &SourceLogAdapter{
		client:     client,
		collection: client.Database(database).Collection(collection),
		name:       database + "." + collection,
	}, nil
}

// loginFilter mirrors the extraction query: created in [from, to), message
// matching the pattern and the excluded user left out.
func loginFilter(filter storage.LoginFilter) bson.M {
	query := bson.M{
		"created": bson.M{
			"$gte": filter.From.UTC(),
			"$lt":  filter.To.UTC(),
		},
	}
	if filter.Pattern != "" {
		query["message"] = primitive.Regex{Pattern: filter.Pattern}
	}
	if filter.ExcludedUser != "" {
		query["user"] = bson.M{"$ne": filter.ExcludedUser}
	}
	return query
}

// loginFindOptions sorts by _id descending (insertion order) and projects created/user.
func loginFindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "created", Value: 1},
			{Key: "user", Value: 1},
		})
}

// FindLogins returns matching (user, created) pairs, most recently inserted first.
func (a *SourceLogAdapter) FindLogins(ctx context.Context, filter storage.LoginFilter) ([]usage.LoginEntry, error) {
	cursor, err := a.collection.Find(ctx, loginFilter(filter), loginFindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to query source log: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []usage.LoginEntry
	for cursor.Next(ctx) {
		var doc logDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode source log document: %w", err)
		}
		entries = append(entries, usage.LoginEntry{User: doc.User, Timestamp: doc.Created.UTC()})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source log: %w", err)
	}

	slog.Debug("[Mongo] Extracted login rows",
		"collection", a.name,
		"from", filter.From,
		"to", filter.To,
		"count", len(entries))
	return entries, nil
}

// Ping reports whether the primary is reachable.
func (a *SourceLogAdapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (a *SourceLogAdapter) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB client: %w", err)
	}
	return nil
}
