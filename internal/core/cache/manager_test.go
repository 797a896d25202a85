package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) (*Manager, *time.Time) {
	t.Helper()

	m := NewManager(&config.CacheConfig{
		Enabled: true,
		MaxSize: maxSize,
		TTL:     ttl,
	})
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	t.Cleanup(func() { _ = m.Close() })
	return m, &now
}

func TestManagerSetGet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 10, time.Minute)

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "/recipe.json", []byte(`[]`)))

	got, err := m.Get(ctx, "/recipe.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
}

func TestManagerExpires(t *testing.T) {
	ctx := context.Background()
	m, now := newTestManager(t, 10, time.Minute)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	*now = now.Add(2 * time.Minute)

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.Stats().Size)
	assert.Equal(t, int64(1), m.Stats().Evictions)
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 2, time.Hour)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "b", []byte("2")))

	// a 被讀取過，b 應先被淘汰
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3")))

	_, err = m.Get(ctx, "b")
	assert.True(t, errors.Is(err, ErrMiss))
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestManagerOverwriteDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, 1, time.Hour)

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "a", []byte("2")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	assert.Equal(t, int64(0), m.Stats().Evictions)
}

func TestNewDisabled(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewMemory(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{
		Enabled: true,
		MaxSize: 5,
		TTL:     time.Minute,
	}})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, ok := store.(*Manager)
	assert.True(t, ok)
}

func TestCacheFullWhenMaxSizeZero(t *testing.T) {
	m, _ := newTestManager(t, 0, time.Hour)
	err := m.Set(context.Background(), "a", []byte("1"))
	assert.ErrorIs(t, err, common.ErrCacheFull)
}
