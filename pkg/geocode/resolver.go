package geocode

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Resolver composes qualified lookup queries for station addresses and
// absorbs provider failures: a candidate that cannot be resolved yields an
// unmatched Result, never an error.
type Resolver struct {
	geocoder Geocoder
	cache    *Cache
}

// NewResolver creates a Resolver backed by the given Geocoder. cache may be
// nil to disable caching.
func NewResolver(g Geocoder, cache *Cache) *Resolver {
	return &Resolver{geocoder: g, cache: cache}
}

// Query builds the qualified lookup string for an address and an optional
// area hint. Every query names the state and country.
func Query(address, area string) string {
	if strings.TrimSpace(area) != "" {
		return fmt.Sprintf("%s, %s, Karnataka, India", address, area)
	}
	return fmt.Sprintf("%s, Karnataka, India", address)
}

// Resolve geocodes the address with the area hint. Provider errors and
// non-matches are logged and reported as an unmatched Result.
func (r *Resolver) Resolve(ctx context.Context, address, area string) Result {
	log := zap.L()
	query := Query(address, area)

	if cached, ok := r.cache.Get(query); ok {
		return cached
	}

	log.Info("geocoding", zap.String("query", query))
	res, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		log.Error("geocoding error",
			zap.String("address", address),
			zap.Error(err),
		)
		return Result{Matched: false}
	}
	if !res.Matched {
		log.Warn("geocoding found no match", zap.String("query", query))
	}

	if err := r.cache.Put(query, *res); err != nil {
		log.Warn("geocode cache write failed", zap.Error(err))
	}

	return *res
}
