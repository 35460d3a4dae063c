package geocode

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "geocode.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t)

	want := Result{Lat: 12.307234, Lng: 76.655123, Matched: true}
	require.NoError(t, c.Put("Irwin Road, Mysuru, Karnataka, India", want))

	got, ok := c.Get("Irwin Road, Mysuru, Karnataka, India")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok := c.Get("never stored")
	assert.False(t, ok)
}

func TestCacheKeyNormalization(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put("  Irwin Road, Karnataka, India  ", Result{Matched: false}))

	got, ok := c.Get("irwin road, karnataka, india")
	assert.True(t, ok)
	assert.False(t, got.Matched)
}

func TestCacheUpsert(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put("q", Result{Matched: false}))
	require.NoError(t, c.Put("q", Result{Lat: 1.5, Lng: 2.5, Matched: true}))

	got, ok := c.Get("q")
	assert.True(t, ok)
	assert.Equal(t, Result{Lat: 1.5, Lng: 2.5, Matched: true}, got)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache

	_, ok := c.Get("anything")
	assert.False(t, ok)
	assert.NoError(t, c.Put("anything", Result{Matched: true}))
	assert.NoError(t, c.Close())
}
