// Package config reads the settings of the stocks command from the
// environment, and from an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Feed kinds.
const (
	FeedCSV   = "csv"
	FeedJSON  = "json"
	FeedRedis = "redis"
)

type Config struct {
	DataDir     string `env:"STOCKS_DATA_DIR" envDefault:"portfolios"`
	PricesDir   string `env:"STOCKS_PRICES_DIR" envDefault:"prices"`
	Feed        string `env:"STOCKS_FEED" envDefault:"csv"`
	JSONPath    string `env:"STOCKS_JSON_PATH" envDefault:"$"`
	SymbolsFile string `env:"STOCKS_SYMBOLS_FILE" envDefault:"listing_status.csv"`
	Currency    string `env:"STOCKS_CURRENCY" envDefault:"USD"`
	Redis       Redis
	Log         Log
}

type Redis struct {
	Addr     string `env:"STOCKS_REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"STOCKS_REDIS_PASSWORD"`
	DB       int    `env:"STOCKS_REDIS_DB" envDefault:"0"`
	Prefix   string `env:"STOCKS_REDIS_PREFIX" envDefault:"prices:"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads the configuration from the environment, after loading the given
// dotenv files (".env" if none) when they exist.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Feed {
	case FeedCSV, FeedJSON, FeedRedis:
	default:
		return fmt.Errorf("invalid STOCKS_FEED %q, want %s, %s or %s", c.Feed, FeedCSV, FeedJSON, FeedRedis)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q, want console or json", c.Log.Format)
	}
	if c.Currency == "" {
		return errors.New("STOCKS_CURRENCY is empty")
	}
	return nil
}
