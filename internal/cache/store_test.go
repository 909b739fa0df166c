package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/landingpages/internal/landing"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() landing.Snapshot {
	return landing.Snapshot{
		CareTypes: []landing.CareType{{ID: 1, Slug: "memory-care", Name: "Memory Care"}},
		Templates: []landing.Template{{
			ID:            7,
			Slug:          "memory-care-city",
			URLPattern:    "/memory-care/:city",
			Cities:        []string{"golden"},
			CustomContent: landing.Document{"hero": map[string]any{"heading": "{city}"}},
			Active:        true,
			CreatedAt:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, ok, err := store.Load(ctx, v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, v, sampleSnapshot()))
	snap, ok, err := store.Load(ctx, v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "memory-care-city", snap.Templates[0].Slug)

	next, err := store.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
	_, ok, _ = store.Load(ctx, v)
	assert.False(t, ok)
	_, ok, _ = store.Load(ctx, next)
	assert.False(t, ok)
}

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test", ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)

	require.NoError(t, store.Ping(ctx))

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, v, want))
	assert.True(t, mr.Exists("test:snapshot:0"))

	got, ok, err := store.Load(ctx, v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Templates[0].URLPattern, got.Templates[0].URLPattern)
	assert.Equal(t, want.Templates[0].CreatedAt, got.Templates[0].CreatedAt.UTC())
	assert.Equal(t, "{city}", got.Templates[0].CustomContent["hero"].(map[string]any)["heading"])
}

func TestRedisStoreInvalidateIsSharedAcrossClients(t *testing.T) {
	ctx := context.Background()
	first, mr := newTestRedisStore(t, time.Minute)
	otherClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = otherClient.Close() })
	second := NewRedisStore(otherClient, "test", time.Minute)

	v, err := first.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	seen, err := second.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, v, seen)
}

func TestRedisStoreSnapshotExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)

	require.NoError(t, store.Save(ctx, 3, sampleSnapshot()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Load(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenSelectsStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn := Open(ctx, Config{}, nil)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	store, closeFn = Open(ctx, Config{RedisAddr: mr.Addr(), KeyPrefix: "open", TTL: time.Minute}, nil)
	defer closeFn()
	require.IsType(t, &RedisStore{}, store)

	v, err := store.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	got, err := mr.Get("open:snapshot:version")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
