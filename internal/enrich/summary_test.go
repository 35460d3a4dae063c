package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahayak/stations-cli/internal/model"
)

func TestSummarize(t *testing.T) {
	stations := []model.Station{
		{ID: "ps_001", Area: "Mysuru"},
		{ID: "ps_002", Area: "Bangalore South"},
		{ID: "ps_004", Area: "Mysuru"},
		{ID: "ps_005", Area: "Bangalore East"},
	}

	s := Summarize(6, stations)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 4, s.Geocoded)
	assert.InDelta(t, 66.666, s.SuccessRate(), 0.01)

	// First-seen order, not alphabetical.
	assert.Equal(t, []AreaCount{
		{Area: "Mysuru", Count: 2},
		{Area: "Bangalore South", Count: 1},
		{Area: "Bangalore East", Count: 1},
	}, s.Areas)
}

func TestSummarizeZeroCandidates(t *testing.T) {
	s := Summarize(0, nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Geocoded)
	assert.Equal(t, 0.0, s.SuccessRate())
	assert.Empty(t, s.Areas)

	// Must not panic on a degenerate run.
	s.Log()
}

func TestSummarizeAllGeocoded(t *testing.T) {
	s := Summarize(2, []model.Station{
		{ID: "ps_001", Area: "Mysuru"},
		{ID: "ps_002", Area: "Mysuru"},
	})
	assert.Equal(t, 100.0, s.SuccessRate())
}
