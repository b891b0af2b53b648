package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	_, ok, _ := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_Sweep(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "schedule:2025-03-01", "a", time.Minute))
	require.NoError(t, cache.Set(ctx, "schedule:2025-03-02", "b", time.Hour))
	require.NoError(t, cache.Set(ctx, "pinned", "c", 0))

	now = now.Add(10 * time.Minute)
	cache.sweep()

	assert.Equal(t, 2, cache.Len())
	_, ok, _ := cache.Get(ctx, "schedule:2025-03-02")
	assert.True(t, ok)
	_, ok, _ = cache.Get(ctx, "pinned")
	assert.True(t, ok)
}

func TestMemoryCache_SetAfterExpiryIsKept(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "old", time.Minute))
	now = now.Add(2 * time.Minute)
	require.NoError(t, cache.Set(ctx, "k", "new", time.Minute))

	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", val)
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	cache := NewMemoryCache()
	require.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
