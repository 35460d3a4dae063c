package enrich

import (
	"go.uber.org/zap"

	"github.com/sahayak/stations-cli/internal/model"
)

// Summary aggregates the outcome of a harvest run.
type Summary struct {
	Total    int
	Geocoded int
	Areas    []AreaCount
}

// AreaCount is the number of surviving records in one area. Order follows
// first appearance in the record list.
type AreaCount struct {
	Area  string
	Count int
}

// Summarize builds run statistics from the candidate total and the surviving
// records.
func Summarize(total int, stations []model.Station) Summary {
	s := Summary{Total: total, Geocoded: len(stations)}
	idx := make(map[string]int)
	for _, st := range stations {
		if pos, ok := idx[st.Area]; ok {
			s.Areas[pos].Count++
			continue
		}
		idx[st.Area] = len(s.Areas)
		s.Areas = append(s.Areas, AreaCount{Area: st.Area, Count: 1})
	}
	return s
}

// SuccessRate returns the percentage of candidates that were geocoded. An
// empty run reports 0 rather than dividing by zero.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Geocoded) / float64(s.Total) * 100
}

// Log writes the final run report through the global logger.
func (s Summary) Log() {
	log := zap.L()
	log.Info("harvest complete",
		zap.Int("candidates", s.Total),
		zap.Int("geocoded", s.Geocoded),
		zap.Float64("success_rate_pct", s.SuccessRate()),
	)
	for _, ac := range s.Areas {
		log.Info("area breakdown",
			zap.String("area", ac.Area),
			zap.Int("stations", ac.Count),
		)
	}
}
