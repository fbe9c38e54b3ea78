package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrrust/internal/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "translations.db")
	c, err := cache.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestContentHashIsStableAndSensitiveToInput(t *testing.T) {
	a := cache.ContentHash("def f(): pass")
	b := cache.ContentHash("def f(): pass")
	c := cache.ContentHash("def g(): pass")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLookupMissReturnsNotOK(t *testing.T) {
	c := openTestCache(t)
	_, _, ok, err := c.Lookup(context.Background(), "a.py", "deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreThenLookupRoundTrips(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	hash := cache.ContentHash("source text")

	require.NoError(t, c.Store(ctx, "a.py", hash, "fn a() {}", "no diagnostics"))

	output, diagText, ok, err := c.Lookup(ctx, "a.py", hash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fn a() {}", output)
	assert.Equal(t, "no diagnostics", diagText)
}

// A later Store under a new content hash for the same path evicts the
// stale entry, since the old translation no longer matches the file's
// current text.
func TestStoreEvictsStaleHashForSamePath(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	oldHash := cache.ContentHash("version one")
	newHash := cache.ContentHash("version two")

	require.NoError(t, c.Store(ctx, "a.py", oldHash, "fn old() {}", ""))
	require.NoError(t, c.Store(ctx, "a.py", newHash, "fn new() {}", ""))

	_, _, ok, err := c.Lookup(ctx, "a.py", oldHash)
	require.NoError(t, err)
	assert.False(t, ok, "stale hash entry should have been evicted")

	output, _, ok, err := c.Lookup(ctx, "a.py", newHash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fn new() {}", output)
}
