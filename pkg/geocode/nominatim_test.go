package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "MG Road, Bangalore Central, Karnataka, India", r.URL.Query().Get("q"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"12.9716","lon":"77.5946"}]`))
	}))
	defer srv.Close()

	n := NewNominatim(
		WithBaseURL(srv.URL),
		WithUserAgent("test-agent"),
		WithRateLimit(1000),
	)

	res, err := n.Geocode(context.Background(), "MG Road, Bangalore Central, Karnataka, India")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.InDelta(t, 12.9716, res.Lat, 1e-9)
	assert.InDelta(t, 77.5946, res.Lng, 1e-9)
}

func TestNominatimGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	n := NewNominatim(WithBaseURL(srv.URL), WithRateLimit(1000))
	res, err := n.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Zero(t, res.Lat)
	assert.Zero(t, res.Lng)
}

func TestNominatimGeocodeEmptyQuery(t *testing.T) {
	n := NewNominatim(WithBaseURL("http://127.0.0.1:1"))
	res, err := n.Geocode(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestNominatimGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := NewNominatim(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := n.Geocode(context.Background(), "MG Road")
	assert.Error(t, err)
}

func TestNominatimGeocodeBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"77.5946"}]`))
	}))
	defer srv.Close()

	n := NewNominatim(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := n.Geocode(context.Background(), "MG Road")
	assert.Error(t, err)
}

func TestNominatimGeocodeBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>blocked</html>`))
	}))
	defer srv.Close()

	n := NewNominatim(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := n.Geocode(context.Background(), "MG Road")
	assert.Error(t, err)
}
