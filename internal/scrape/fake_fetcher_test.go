package scrape

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/sahayak/stations-cli/internal/fetcher"
)

// fakeFetcher serves canned pages keyed by URL. Unknown URLs come back 404.
type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) (*fetcher.Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, eris.Wrap(err, "fake fetch")
	}
	body, ok := f.pages[url]
	if !ok {
		return &fetcher.Page{StatusCode: http.StatusNotFound}, nil
	}
	return &fetcher.Page{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}
