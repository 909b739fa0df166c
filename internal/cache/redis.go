package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/landingpages/internal/landing"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares the snapshot version across processes. The version key is
// INCR-ed on invalidation; snapshots live under version-suffixed keys with a TTL
// so stale copies age out on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a client with the pool settings used by the service.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewRedisStore wraps client. An empty prefix defaults to "landing".
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "landing"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) versionKey() string {
	return r.prefix + ":snapshot:version"
}

func (r *RedisStore) snapshotKey(version int64) string {
	return fmt.Sprintf("%s:snapshot:%d", r.prefix, version)
}

func (r *RedisStore) Version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, r.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read snapshot version: %w", err)
	}
	return v, nil
}

func (r *RedisStore) Load(ctx context.Context, version int64) (landing.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, r.snapshotKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return landing.Snapshot{}, false, nil
	}
	if err != nil {
		return landing.Snapshot{}, false, fmt.Errorf("read snapshot %d: %w", version, err)
	}

	var snap landing.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return landing.Snapshot{}, false, fmt.Errorf("decode snapshot %d: %w", version, err)
	}
	return snap, true, nil
}

func (r *RedisStore) Save(ctx context.Context, version int64, snap landing.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.snapshotKey(version), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("write snapshot %d: %w", version, err)
	}
	return nil
}

func (r *RedisStore) Invalidate(ctx context.Context) (int64, error) {
	v, err := r.client.Incr(ctx, r.versionKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("bump snapshot version: %w", err)
	}
	return v, nil
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
