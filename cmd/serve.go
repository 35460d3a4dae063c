package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahayak/stations-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the harvested dataset over HTTP",
	Long: `Serve the harvested station dataset as a read-only JSON API:

  GET /health
  GET /stations
  GET /stations/{id}`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		stations, err := loadStations(cfg.Output.Path)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newStationsRouter(stations),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("serving dataset",
			zap.Int("port", port),
			zap.Int("stations", len(stations)),
			zap.String("path", cfg.Output.Path),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// loadStations reads the harvested dataset from disk.
func loadStations(path string) ([]model.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "serve: read dataset %s", path)
	}
	var stations []model.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, eris.Wrapf(err, "serve: parse dataset %s", path)
	}
	return stations, nil
}

// newStationsRouter builds the read-only API over an in-memory station list.
func newStationsRouter(stations []model.Station) http.Handler {
	byID := make(map[string]model.Station, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/stations", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, stations)
	})

	r.Get("/stations/{id}", func(w http.ResponseWriter, req *http.Request) {
		s, ok := byID[chi.URLParam(req, "id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "station not found"})
			return
		}
		writeJSON(w, http.StatusOK, s)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("writing response", zap.Error(err))
	}
}
