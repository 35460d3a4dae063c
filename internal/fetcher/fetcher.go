// Package fetcher downloads source documents over HTTP with per-host rate
// limiting. Fetches are never retried: both listing sources throttle
// aggressive clients, and the harvester tolerates missing pages.
package fetcher

import (
	"context"
	"net/http"
)

// Page is a fetched document. StatusCode is always set on a successful
// transport round trip; Body is populated only for 200 responses.
type Page struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the fetch returned HTTP 200.
func (p *Page) OK() bool {
	return p != nil && p.StatusCode == http.StatusOK
}

// Fetcher retrieves remote documents.
type Fetcher interface {
	// Get fetches the URL. A non-200 response is not an error: the returned
	// Page carries the status code so callers can decide to skip. Transport
	// failures (timeout, connection refused) return an error.
	Get(ctx context.Context, url string) (*Page, error)
}
