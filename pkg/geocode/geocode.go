// Package geocode resolves free-text station addresses to coordinates
// through the OpenStreetMap Nominatim service.
package geocode

import "context"

// Result holds a geocoding outcome. Lat and Lng are meaningful only when
// Matched is true; a lookup never populates one coordinate without the other.
type Result struct {
	Lat     float64
	Lng     float64
	Matched bool
}

// Geocoder resolves a free-text query to coordinates. A query with no match
// is not an error: it returns a Result with Matched false.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}
