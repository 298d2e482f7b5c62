package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/login-usage/internal/core/usage"
	goredis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "loginusage:"

// kv is the subset of *goredis.Client the checkpoint store uses.
type kv interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// Options configures the Redis connection.
type Options struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// CheckpointStore implements storage.CheckpointStore with one Redis string per
// job: <prefix>checkpoint:<job> = YYYY-MM-DD. Keys never expire.
type CheckpointStore struct {
	client    kv
	closer    func() error
	ping      func(ctx context.Context) error
	keyPrefix string
}

// NewCheckpointStore connects to Redis and verifies the connection.
func NewCheckpointStore(ctx context.Context, opts Options) (*CheckpointStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("[Redis] Checkpoint store connected", "address", opts.Address, "db", opts.DB)

	store := newCheckpointStore(client, opts.KeyPrefix)
	store.closer = client.Close
	store.ping = func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	return store, nil
}

func newCheckpointStore(client kv, keyPrefix string) *CheckpointStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &CheckpointStore{client: client, keyPrefix: keyPrefix}
}

func (s *CheckpointStore) key(job string) string {
	return s.keyPrefix + "checkpoint:" + job
}

// ReadOffset returns ok=false when the key does not exist.
func (s *CheckpointStore) ReadOffset(ctx context.Context, job string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.key(job)).Result()
	if errors.Is(err, goredis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read checkpoint %q: %w", job, err)
	}

	offset, err := usage.ParseDate(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read checkpoint %q: corrupt value: %w", job, err)
	}
	return offset, true, nil
}

// WriteOffset stores offset as a date string.
func (s *CheckpointStore) WriteOffset(ctx context.Context, job string, offset time.Time) error {
	value := usage.TruncateToDay(offset).Format(time.DateOnly)
	if err := s.client.Set(ctx, s.key(job), value, 0).Err(); err != nil {
		return fmt.Errorf("write checkpoint %q: %w", job, err)
	}

	slog.Info("[Redis] Checkpoint written", "job", job, "offset", value)
	return nil
}

// Ping reports whether Redis is reachable.
func (s *CheckpointStore) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the underlying connection pool.
func (s *CheckpointStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
