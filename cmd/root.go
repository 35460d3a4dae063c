package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sahayak/stations-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stations-cli",
	Short: "Police-station directory harvester for Bangalore and Mysuru",
	Long:  "Scrapes the Mysuru district portal and the Bangalore station directory, geocodes every station through Nominatim, and publishes a JSON dataset for the Sahayak map.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
