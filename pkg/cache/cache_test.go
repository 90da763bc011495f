package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Fee   string `json:"fee"`
	Chain string `json:"chain"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	var got quote
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	in := quote{Fee: "156000000", Chain: "polkadot"}
	require.NoError(t, c.Set(ctx, "k", in, time.Minute))
	in.Fee = "changed" // 缓存的是副本
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "156000000", got.Fee)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMultiLevelCacheBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache(time.Minute, time.Minute)
	l2 := NewMemoryCache(time.Minute, time.Minute)
	c := NewMultiLevelCache(l1, l2)

	// 只存在于 L2
	require.NoError(t, l2.Set(ctx, "k", quote{Fee: "1"}, time.Minute))

	var got quote
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "1", got.Fee)

	var fromL1 quote
	require.NoError(t, l1.Get(ctx, "k", &fromL1))
	assert.Equal(t, got, fromL1)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}
