package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTheme struct {
	Dark   bool   `json:"dark"`
	Accent string `json:"accent"`
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "theme:abc", cachedTheme{Dark: true, Accent: "5 150 105"}, 0))

	var got cachedTheme
	require.NoError(t, c.Get(ctx, "theme:abc", &got))
	assert.Equal(t, cachedTheme{Dark: true, Accent: "5 150 105"}, got)

	require.NoError(t, c.Delete(ctx, "theme:abc"))
	assert.ErrorIs(t, c.Get(ctx, "theme:abc", &got), ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache().(*memoryCache)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))

	var v int
	require.NoError(t, c.Get(ctx, "k", &v))
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "topic:ethics", 1, 0))
	require.NoError(t, c.Set(ctx, "topic:logic", 2, 0))
	require.NoError(t, c.Set(ctx, "topics:list", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "topic:*"))

	var v int
	assert.ErrorIs(t, c.Get(ctx, "topic:ethics", &v), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "topic:logic", &v), ErrCacheMiss)
	assert.NoError(t, c.Get(ctx, "topics:list", &v))
}
