package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Option configures the Nominatim client.
type Option func(*Nominatim)

// WithBaseURL points the client at a different Nominatim instance.
func WithBaseURL(baseURL string) Option {
	return func(n *Nominatim) {
		if strings.TrimSpace(baseURL) != "" {
			n.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(n *Nominatim) {
		if hc != nil {
			n.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header. The public Nominatim instance
// rejects requests without an identifying agent.
func WithUserAgent(ua string) Option {
	return func(n *Nominatim) {
		n.userAgent = ua
	}
}

// WithRateLimit sets the requests-per-second limit. The public instance's
// usage policy allows at most one request per second.
func WithRateLimit(rps float64) Option {
	return func(n *Nominatim) {
		n.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// Nominatim implements Geocoder against the Nominatim search API.
type Nominatim struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewNominatim creates a Nominatim client with the given options.
func NewNominatim(opts ...Option) *Nominatim {
	n := &Nominatim{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "stations-cli/1.0",
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Geocode looks the query up against the search endpoint, taking the first
// match. An empty result set is an unmatched Result, not an error.
func (n *Nominatim) Geocode(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Matched: false}, nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limiter wait")
	}

	params := url.Values{
		"format": {"json"},
		"limit":  {"1"},
		"q":      {query},
	}
	reqURL := n.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	// Nominatim encodes coordinates as strings.
	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}
	if len(places) == 0 {
		return &Result{Matched: false}, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: parse latitude %q", places[0].Lat)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: parse longitude %q", places[0].Lon)
	}

	return &Result{Lat: lat, Lng: lng, Matched: true}, nil
}
