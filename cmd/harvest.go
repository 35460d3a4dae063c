package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahayak/stations-cli/internal/enrich"
	"github.com/sahayak/stations-cli/internal/fetcher"
	"github.com/sahayak/stations-cli/internal/model"
	"github.com/sahayak/stations-cli/internal/scrape"
	"github.com/sahayak/stations-cli/pkg/geocode"
)

var harvestOutput string

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Scrape both sources, geocode, and write the dataset",
	Long: `Scrape the Mysuru district portal and the Bangalore station directory,
geocode every candidate through Nominatim, and write the combined dataset
as a JSON array.

Sources run in a fixed order, one at a time; a failing source is logged
and the other still runs. Geocoding calls are spaced per the Nominatim
usage policy.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("harvest"); err != nil {
			return err
		}

		outputPath := cfg.Output.Path
		if harvestOutput != "" {
			outputPath = harvestOutput
		}

		log := zap.L().With(
			zap.String("command", "harvest"),
			zap.String("run_id", uuid.New().String()),
		)
		log.Info("starting harvest", zap.String("output", outputPath))

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    cfg.HTTP.UserAgent,
			Timeout:      time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
			RateLimiters: fetcher.DefaultRateLimiters(),
		})

		resolver, closeCache, err := buildResolver()
		if err != nil {
			return err
		}
		defer closeCache()

		candidates := runScrapers(ctx, log,
			scrape.NewMysuru(f, cfg.Mysuru.BaseURL, cfg.Mysuru.Pages,
				time.Duration(cfg.Mysuru.PageDelaySecs)*time.Second),
			scrape.NewBangalore(f, cfg.Bangalore.URL),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Info("extraction complete", zap.Int("candidates", len(candidates)))

		bar := progressbar.NewOptions(len(candidates),
			progressbar.OptionSetDescription("Geocoding stations"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		pipeline := enrich.NewPipeline(resolver,
			enrich.WithPacing(time.Duration(cfg.Geocode.DelaySecs*float64(time.Second))),
			enrich.WithProgress(func(done, _ int) { _ = bar.Set(done) }),
		)
		stations := pipeline.Run(ctx, candidates)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := enrich.WriteStations(outputPath, stations); err != nil {
			log.Error("failed to write dataset",
				zap.String("path", outputPath),
				zap.Error(err),
			)
			return nil
		}
		log.Info("dataset written",
			zap.String("path", outputPath),
			zap.Int("stations", len(stations)),
		)

		enrich.Summarize(len(candidates), stations).Log()
		return nil
	},
}

func init() {
	harvestCmd.Flags().StringVarP(&harvestOutput, "output", "o", "", "dataset path (default from config)")
	rootCmd.AddCommand(harvestCmd)
}

// buildResolver wires the Nominatim client and, when configured, the SQLite
// geocode cache. The returned closer is always safe to call.
func buildResolver() (*geocode.Resolver, func(), error) {
	geocoder := geocode.NewNominatim(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second,
		}),
	)

	if cfg.Geocode.CachePath == "" {
		return geocode.NewResolver(geocoder, nil), func() {}, nil
	}

	cache, err := geocode.OpenCache(cfg.Geocode.CachePath)
	if err != nil {
		return nil, nil, err
	}
	closeCache := func() {
		if err := cache.Close(); err != nil {
			zap.L().Warn("closing geocode cache", zap.Error(err))
		}
	}
	return geocode.NewResolver(geocoder, cache), closeCache, nil
}

// runScrapers runs each source in order. A failing source contributes
// whatever it collected and never stops the ones after it.
func runScrapers(ctx context.Context, log *zap.Logger, scrapers ...scrape.Scraper) []model.Candidate {
	var all []model.Candidate
	for _, s := range scrapers {
		if ctx.Err() != nil {
			return all
		}
		cands, err := s.Scrape(ctx)
		if err != nil {
			log.Warn("scraper failed, continuing",
				zap.String("scraper", s.Name()),
				zap.Error(err),
			)
		}
		log.Info("scraper finished",
			zap.String("scraper", s.Name()),
			zap.Int("candidates", len(cands)),
		)
		all = append(all, cands...)
	}
	return all
}
