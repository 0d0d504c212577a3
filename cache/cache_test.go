package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) Provider {
	t.Helper()
	provider, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	provider := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	require.NoError(t, provider.Set(ctx, "key", payload{Title: "Sunset", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, provider.Get(ctx, "key", &got))
	assert.Equal(t, "Sunset", got.Title)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryCacheMiss(t *testing.T) {
	provider := newTestCache(t)

	var dest string
	err := provider.Get(context.Background(), "absent", &dest)
	assert.True(t, IsCacheMiss(err))
}

func TestMemoryCacheDelete(t *testing.T) {
	provider := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, provider.Delete(ctx, "key"))

	var dest string
	assert.True(t, IsCacheMiss(provider.Get(ctx, "key", &dest)))
}

func TestKeyBuilder(t *testing.T) {
	assert.Equal(t, "painting_list", PaintingList.Build())
	assert.Equal(t, "painting_list:v1:page=1", PaintingList.Build("v1", "page=1"))
	assert.Equal(t, "painting:42", Painting.BuildID(42))
}

func TestVersionedKeyInvalidation(t *testing.T) {
	provider := newTestCache(t)
	ctx := context.Background()

	before := VersionedKey(ctx, provider, PaintingListVersion, PaintingList, "page=1")
	BumpVersion(ctx, provider, PaintingListVersion)
	after := VersionedKey(ctx, provider, PaintingListVersion, PaintingList, "page=1")

	assert.NotEqual(t, before, after)
}

func TestGetOrLoad(t *testing.T) {
	provider := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	got, err := GetOrLoad(ctx, provider, "key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", got)

	got, err = GetOrLoad(ctx, provider, "key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", got)
	assert.Equal(t, 1, calls)
}
