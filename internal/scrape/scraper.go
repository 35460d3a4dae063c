// Package scrape extracts raw station candidates from the two public
// directory sources: the Mysuru district portal and the Bangalore station
// directory.
package scrape

import (
	"context"
	"time"

	"github.com/sahayak/stations-cli/internal/model"
)

// Scraper extracts station candidates from one source. Scrape may return
// partial results alongside an error; a failing scraper never prevents the
// others from running.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]model.Candidate, error)
}

// sleepCtx pauses for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
