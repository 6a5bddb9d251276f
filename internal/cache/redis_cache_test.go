package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.Set(ctx, "site:programs", payload{Name: "Science", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, "site:programs", &got))
	assert.Equal(t, "Science", got.Name)
	assert.Equal(t, 3, got.Count)

	require.NoError(t, c.Delete(ctx, "site:programs"))
	err := c.Get(ctx, "site:programs", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_GetMissingKey(t *testing.T) {
	c := NewMemoryCache()
	var dest string
	err := c.Get(context.Background(), "absent", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "site:about_sections", "a", time.Minute))
	require.NoError(t, c.Set(ctx, "site:programs", "b", time.Minute))
	require.NoError(t, c.Set(ctx, "news:1", "c", time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "site:*"))

	var dest string
	assert.ErrorIs(t, c.Get(ctx, "site:about_sections", &dest), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "site:programs", &dest), ErrCacheMiss)
	assert.NoError(t, c.Get(ctx, "news:1", &dest))
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("*", "anything"))
	assert.True(t, matchPattern("site:*", "site:programs"))
	assert.False(t, matchPattern("site:*", "news:1"))
	assert.True(t, matchPattern("exact", "exact"))
	assert.False(t, matchPattern("exact", "exact-not"))
}
