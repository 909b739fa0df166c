package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Config selects the snapshot store. An empty RedisAddr means process-local.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	TTL           time.Duration
}

// Open builds the store described by cfg. The returned close func is never nil.
// An unreachable Redis is only logged: version reads are retried per request.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (SnapshotStore, func() error) {
	if cfg.RedisAddr == "" {
		return NewMemoryStore(), func() error { return nil }
	}
	if log == nil {
		log = zap.NewNop()
	}

	store := NewRedisStore(NewRedisClient(RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}), cfg.KeyPrefix, cfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return store, store.Close
}
