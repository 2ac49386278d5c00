package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	HTTP struct {
		// Port the API listens on
		Port string `env:"HTTP_PORT" envDefault:"5260"`

		// Comma-separated origins allowed by CORS
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	// Database configuration
	Database struct {
		// Path to the sqlite database file
		Path string `env:"DB_PATH" envDefault:"database/compscope.db"`
	}

	// BatchProcessing configuration for feed ingest
	BatchProcessing struct {
		// Maximum number of record batches buffered before ingest backs off
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"50"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	// Engine tunables for the statistics and pricing computations
	Engine struct {
		// Trailing window (months) the closed-sale set is assumed to cover
		// when deriving the absorption rate
		AbsorptionWindowMonths int `env:"ENGINE_ABSORPTION_WINDOW_MONTHS" envDefault:"6"`

		// Cap (percent) on the market-trend adjustment applied to the
		// suggested price range
		TrendCapPct float64 `env:"ENGINE_TREND_CAP_PCT" envDefault:"10"`

		// Average days-on-market below which closed comps read as a hot market
		HotMarketMaxDOM float64 `env:"ENGINE_HOT_MAX_DOM" envDefault:"21"`

		// Average days-on-market above which closed comps read as a slow market
		SlowMarketMinDOM float64 `env:"ENGINE_SLOW_MIN_DOM" envDefault:"60"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
