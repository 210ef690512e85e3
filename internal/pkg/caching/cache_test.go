package caching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoryRoundTrip(t *testing.T) {
	c := NewCacheMemory()
	ctx := context.Background()

	type payload struct {
		Name  string
		Count int64
	}

	require.NoError(t, c.Set(ctx, "k", payload{Name: "alice", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, int64(3), got.Count)

	require.NoError(t, c.Delete(ctx, "k"))
	err := c.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheMemoryExpiry(t *testing.T) {
	c := NewCacheMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var got string
	err := c.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestUseCacheCallsBackOnMissOnly(t *testing.T) {
	c := NewCacheMemory()
	ctx := context.Background()

	calls := 0
	load := func() (string, error) {
		calls++
		return "fresh", nil
	}

	v, err := UseCache(ctx, c, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, calls)

	v, err = UseCache(ctx, c, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, calls)
}

func TestUseCachePropagatesCallbackError(t *testing.T) {
	c := NewCacheMemory()
	boom := errors.New("db down")

	_, err := UseCache(context.Background(), c, "k", time.Minute, func() (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	// the failure must not be cached
	v, err := UseCache(context.Background(), c, "k", time.Minute, func() (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}
