package geocode

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder records queries and serves canned results.
type fakeGeocoder struct {
	results map[string]*Result
	err     error
	queries []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (*Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return &Result{Matched: false}, nil
}

func TestQueryComposition(t *testing.T) {
	assert.Equal(t,
		"Irwin Road, Mysuru, Karnataka, India",
		Query("Irwin Road", "Mysuru"),
	)
	assert.Equal(t,
		"Irwin Road, Karnataka, India",
		Query("Irwin Road", ""),
	)
	assert.Equal(t,
		"Irwin Road, Karnataka, India",
		Query("Irwin Road", "   "),
	)
}

func TestQueryAlwaysQualified(t *testing.T) {
	for _, area := range []string{"", "Mysuru", "Bangalore South"} {
		q := Query("Some Address", area)
		assert.True(t, strings.Contains(q, "Karnataka"), q)
		assert.True(t, strings.Contains(q, "India"), q)
	}
}

func TestResolveMatched(t *testing.T) {
	g := &fakeGeocoder{results: map[string]*Result{
		"Irwin Road, Mysuru, Karnataka, India": {Lat: 12.3072, Lng: 76.6551, Matched: true},
	}}
	r := NewResolver(g, nil)

	res := r.Resolve(context.Background(), "Irwin Road", "Mysuru")
	assert.True(t, res.Matched)
	assert.InDelta(t, 12.3072, res.Lat, 1e-9)
	assert.InDelta(t, 76.6551, res.Lng, 1e-9)
	require.Len(t, g.queries, 1)
}

func TestResolveProviderErrorIsAbsorbed(t *testing.T) {
	g := &fakeGeocoder{err: errors.New("nominatim down")}
	r := NewResolver(g, nil)

	res := r.Resolve(context.Background(), "Irwin Road", "Mysuru")
	assert.False(t, res.Matched)
	assert.Zero(t, res.Lat)
	assert.Zero(t, res.Lng)
}

func TestResolveNoMatch(t *testing.T) {
	g := &fakeGeocoder{}
	r := NewResolver(g, nil)

	res := r.Resolve(context.Background(), "Nowhere", "")
	assert.False(t, res.Matched)
}

func TestResolveUsesCache(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "geocode.db"))
	require.NoError(t, err)
	defer cache.Close()

	g := &fakeGeocoder{results: map[string]*Result{
		"Irwin Road, Mysuru, Karnataka, India": {Lat: 12.3072, Lng: 76.6551, Matched: true},
	}}
	r := NewResolver(g, cache)

	first := r.Resolve(context.Background(), "Irwin Road", "Mysuru")
	second := r.Resolve(context.Background(), "Irwin Road", "Mysuru")

	assert.Equal(t, first, second)
	assert.Len(t, g.queries, 1, "second resolve should hit the cache")
}

func TestResolveCachesNonMatches(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "geocode.db"))
	require.NoError(t, err)
	defer cache.Close()

	g := &fakeGeocoder{}
	r := NewResolver(g, cache)

	first := r.Resolve(context.Background(), "Nowhere", "Mysuru")
	second := r.Resolve(context.Background(), "Nowhere", "Mysuru")

	assert.False(t, first.Matched)
	assert.False(t, second.Matched)
	assert.Len(t, g.queries, 1, "non-match should be served from cache")
}
