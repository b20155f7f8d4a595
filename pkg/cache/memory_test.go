package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func TestMemoryStore_SetGetDel(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var got item
	assert.False(t, s.Get(ctx, "k", &got), "empty store misses")

	require.NoError(t, s.Set(ctx, "k", item{Name: "mug", Stock: 4}, 0))
	require.True(t, s.Get(ctx, "k", &got))
	assert.Equal(t, item{Name: "mug", Stock: 4}, got)

	require.NoError(t, s.Del(ctx, "k", "missing"))
	assert.False(t, s.Get(ctx, "k", &got))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", item{Name: "mug"}, time.Minute))

	var got item
	assert.True(t, s.Get(ctx, "k", &got))

	now = now.Add(time.Minute)
	assert.False(t, s.Get(ctx, "k", &got), "entry expires at its deadline")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	src := item{Name: "mug", Stock: 1}
	require.NoError(t, s.Set(ctx, "k", src, 0))
	src.Stock = 99

	var got item
	require.True(t, s.Get(ctx, "k", &got))
	assert.Equal(t, 1, got.Stock)
}

func TestConnect_MemoryDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memory")
	_, ok := Connect(context.Background()).(*MemoryStore)
	assert.True(t, ok)
}

func TestConnect_FallsBackWhenRedisDown(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok := Connect(ctx).(*MemoryStore)
	assert.True(t, ok)
}
