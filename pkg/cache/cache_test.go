package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisCacheWithClient(client, "test")
}

func TestMemoryCacheTypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "p", []point{{1, 2}, {3, 4}}, time.Minute))

	var got []point
	require.NoError(t, mc.Get(ctx, "p", &got))
	assert.Equal(t, []point{{1, 2}, {3, 4}}, got)

	var missing []point
	assert.ErrorIs(t, mc.Get(ctx, "nope", &missing), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", 3, time.Minute))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &v))
	assert.Equal(t, 1, v)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, rc := newRedis(t)

	require.NoError(t, rc.Set(ctx, "forecast:m:7", point{5, 6}, time.Hour))
	assert.True(t, mr.Exists("test:forecast:m:7"))

	var got point
	require.NoError(t, rc.Get(ctx, "forecast:m:7", &got))
	assert.Equal(t, point{5, 6}, got)

	require.NoError(t, rc.Delete(ctx, "forecast:m:7"))
	assert.ErrorIs(t, rc.Get(ctx, "forecast:m:7", &got), ErrCacheMiss)
}

func TestLayeredCacheFillsL1FromL2(t *testing.T) {
	ctx := context.Background()
	mr, rc := newRedis(t)
	lc := NewLayeredCache(rc)
	defer lc.Close()

	require.NoError(t, rc.Set(ctx, "k", point{7, 8}, time.Hour))

	var got point
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, point{7, 8}, got)

	// served from memory once Redis forgets the key
	mr.Del("test:k")
	got = point{}
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, point{7, 8}, got)
}

func TestLayeredCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	mr, rc := newRedis(t)
	lc := NewLayeredCache(rc)
	defer lc.Close()

	require.NoError(t, lc.Set(ctx, "k", "hello", time.Hour))
	v, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	ok, err := lc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lc.Delete(ctx, "k"))
	ok, err = lc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "forecast:abc:30", GenerateKeyWithParams("forecast", "abc", 30))
}
