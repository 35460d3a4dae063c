// Package enrich turns raw station candidates into geocoded records and
// persists the final dataset.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sahayak/stations-cli/internal/model"
	"github.com/sahayak/stations-cli/pkg/geocode"
)

// Pipeline resolves candidates to coordinates strictly one at a time, pacing
// every lookup to honor the geocoding service's usage policy.
type Pipeline struct {
	resolver *geocode.Resolver
	pacer    *rate.Limiter
	progress func(done, total int)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPacing sets the pause observed after every geocoding call, successful
// or not. A non-positive delay disables pacing.
func WithPacing(delay time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if delay <= 0 {
			p.pacer = nil
			return
		}
		p.pacer = rate.NewLimiter(rate.Every(delay), 1)
	}
}

// WithProgress registers a callback invoked after each candidate.
func WithProgress(fn func(done, total int)) PipelineOption {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// NewPipeline creates a Pipeline with a default pacing of one second.
func NewPipeline(resolver *geocode.Resolver, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		resolver: resolver,
		pacer:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pacer != nil {
		// Drain the initial burst token so the first post-call wait already
		// observes the full delay.
		p.pacer.Allow()
	}
	return p
}

// Run processes candidates in input order. The candidate at 1-based position
// i that resolves produces a record with id ps_00i; unresolved candidates are
// dropped, leaving gaps in the id sequence. Cancellation returns whatever was
// enriched so far.
func (p *Pipeline) Run(ctx context.Context, candidates []model.Candidate) []model.Station {
	log := zap.L().With(zap.String("component", "enrich.pipeline"))

	stations := make([]model.Station, 0, len(candidates))
	for i, cand := range candidates {
		log.Info("processing candidate",
			zap.Int("position", i+1),
			zap.Int("total", len(candidates)),
			zap.String("name", cand.Name),
		)

		res := p.resolver.Resolve(ctx, cand.Address, cand.Area)
		if res.Matched {
			stations = append(stations, model.Station{
				ID:      model.StationID(i + 1),
				Name:    cand.Name,
				Address: cand.Address,
				Phone:   cand.Phone,
				Lat:     model.RoundCoord(res.Lat),
				Lng:     model.RoundCoord(res.Lng),
				Area:    cand.Area,
			})
		} else {
			log.Warn("dropping candidate without coordinates", zap.String("name", cand.Name))
		}

		if p.progress != nil {
			p.progress(i+1, len(candidates))
		}

		if p.pacer != nil {
			if err := p.pacer.Wait(ctx); err != nil {
				log.Warn("pipeline interrupted", zap.Error(err))
				return stations
			}
		}
	}

	return stations
}
