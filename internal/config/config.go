// Package config loads application configuration from config.yaml and
// SAHAYAK_-prefixed environment variables, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Mysuru    MysuruConfig    `yaml:"mysuru" mapstructure:"mysuru"`
	Bangalore BangaloreConfig `yaml:"bangalore" mapstructure:"bangalore"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// OutputConfig configures the persisted dataset.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// MysuruConfig configures the Mysuru district portal scraper.
type MysuruConfig struct {
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	Pages         int    `yaml:"pages" mapstructure:"pages"`
	PageDelaySecs int    `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
}

// BangaloreConfig configures the Bangalore directory scraper.
type BangaloreConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// GeocodeConfig configures the Nominatim client and the enrichment pacing.
type GeocodeConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	DelaySecs   float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CachePath   string  `yaml:"cache_path" mapstructure:"cache_path"`
}

// HTTPConfig configures the document fetcher.
type HTTPConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ServerConfig configures the dataset server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SAHAYAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("output.path", "public/police_stations_bangalore_mysore.json")
	v.SetDefault("mysuru.base_url", "https://mysore.nic.in")
	v.SetDefault("mysuru.pages", 3)
	v.SetDefault("mysuru.page_delay_secs", 2)
	v.SetDefault("bangalore.url", "https://www.police-station.com/karnataka/bangalore/")
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "Sahayak Police Portal Scraper 1.0")
	v.SetDefault("geocode.delay_secs", 1.0)
	v.SetDefault("geocode.timeout_secs", 10)
	v.SetDefault("geocode.cache_path", "")
	v.SetDefault("http.user_agent", "Sahayak Police Portal Scraper 1.0")
	v.SetDefault("http.timeout_secs", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields required by the given command mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "harvest":
		if c.Output.Path == "" {
			problems = append(problems, "output.path is required")
		}
		if c.Mysuru.BaseURL == "" {
			problems = append(problems, "mysuru.base_url is required")
		}
		if c.Mysuru.Pages < 1 || c.Mysuru.Pages > 10 {
			problems = append(problems, "mysuru.pages must be between 1 and 10")
		}
		if c.Bangalore.URL == "" {
			problems = append(problems, "bangalore.url is required")
		}
		if c.Geocode.DelaySecs < 0 {
			problems = append(problems, "geocode.delay_secs must be >= 0")
		}
		if c.Geocode.UserAgent == "" {
			problems = append(problems, "geocode.user_agent is required")
		}
	case "serve":
		if c.Output.Path == "" {
			problems = append(problems, "output.path is required")
		}
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
