package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedis(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func redisCounts() (hits, misses float64) {
	return testutil.ToFloat64(metrics.CacheHits.WithLabelValues("redis")),
		testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("redis"))
}

func TestRedisStore_RoundTripsJSON(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	hits, misses := redisCounts()

	var got item
	assert.False(t, s.Get(ctx, "product:slug:mug", &got))

	require.NoError(t, s.Set(ctx, "product:slug:mug", item{Name: "mug", Stock: 4}, time.Minute))
	raw, err := mr.Get("product:slug:mug")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"mug","stock":4}`, raw)

	require.True(t, s.Get(ctx, "product:slug:mug", &got))
	assert.Equal(t, item{Name: "mug", Stock: 4}, got)

	h, m := redisCounts()
	assert.Equal(t, hits+1, h)
	assert.Equal(t, misses+1, m)
}

func TestRedisStore_ExpiresAndDeletes(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Set(ctx, "a", item{Name: "a"}, time.Minute))
	require.NoError(t, s.Set(ctx, "b", item{Name: "b"}, 0))
	require.NoError(t, s.Set(ctx, "c", item{Name: "c"}, 0))

	mr.FastForward(2 * time.Minute)
	var got item
	assert.False(t, s.Get(ctx, "a", &got), "ttl elapsed")
	assert.True(t, s.Get(ctx, "b", &got), "no ttl")

	require.NoError(t, s.Del(ctx, "b", "c", "missing"))
	require.NoError(t, s.Del(ctx))
	assert.False(t, mr.Exists("b"))
	assert.False(t, mr.Exists("c"))
}

func TestRedisStore_UndecodableValueIsMiss(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("k", "not json"))
	_, misses := redisCounts()

	var got item
	assert.False(t, s.Get(ctx, "k", &got))
	_, m := redisCounts()
	assert.Equal(t, misses+1, m)
}

func TestNewRedisFromClient_SharesClient(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisFromClient(rdb)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), "k", []int{1, 2}, 0))
	var got []int
	require.True(t, s.Get(context.Background(), "k", &got))
	assert.Equal(t, []int{1, 2}, got)
}
