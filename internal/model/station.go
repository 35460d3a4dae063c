package model

import (
	"fmt"
	"math"
)

// PhoneUnavailable marks candidates whose source listed no phone number.
const PhoneUnavailable = "N/A"

// Candidate is an unresolved station entry extracted from a source document,
// before geocoding. Candidates are immutable once emitted by a scraper.
type Candidate struct {
	Name    string
	Address string
	Phone   string
	Area    string
}

// Station is a fully enriched station record as persisted in the dataset.
// A Station exists only for candidates whose address resolved to coordinates.
type Station struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Area    string  `json:"area"`
}

// StationID formats the identifier for the candidate at 1-based position i.
// Identifiers reflect input position, so candidates dropped during enrichment
// leave gaps in the emitted sequence.
func StationID(i int) string {
	return fmt.Sprintf("ps_%03d", i)
}

// RoundCoord rounds a coordinate to the 6 decimal places stored in the dataset.
func RoundCoord(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
