package cache

import (
	"context"
	"testing"
	"time"

	"recipe-viewer/internal/infrastructure/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), &config.CacheConfig{
		Enabled:   true,
		TTL:       ttl,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 10*time.Minute)

	require.NoError(t, store.Set(ctx, "/1/recipe.json", []byte(`{"id":1}`)))

	raw, err := mr.Get("recipes:/1/recipe.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, raw)
	assert.Equal(t, 10*time.Minute, mr.TTL("recipes:/1/recipe.json"))

	got, err := store.Get(ctx, "/1/recipe.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), got)
}

func TestRedisStoreMiss(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Minute)

	_, err := store.Get(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)

	require.NoError(t, store.Set(ctx, "/recipe.json", []byte(`[]`)))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "/recipe.json")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreServerError(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)

	mr.SetError("LOADING server is loading")
	_, err := store.Get(ctx, "/recipe.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	// 沒有服務監聽的埠
	_, err := NewRedisStore(context.Background(), &config.CacheConfig{RedisAddr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestNewSelectsStore(t *testing.T) {
	mr := miniredis.RunT(t)

	disabled, err := New(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, disabled)

	memory, err := New(&config.Config{Cache: config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute}})
	require.NoError(t, err)
	assert.IsType(t, &Manager{}, memory)
	_ = memory.Close()

	redisStore, err := New(&config.Config{Cache: config.CacheConfig{Enabled: true, TTL: time.Minute, RedisAddr: mr.Addr()}})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, redisStore)
	_ = redisStore.Close()
}
