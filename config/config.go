package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Allowed CORS origins for the web funnel
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/market.db"`
	}

	// Ingestion configuration for the HPI archive importer
	Ingestion struct {
		// Maximum number of index rows to accumulate before upserting
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"250"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`

		// Buffer size of the batch queue
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"32"`
	}

	Cache struct {
		// Cron expression for clearing the current-benchmark cache. New
		// index reports land monthly, so the default tracks that cadence.
		RefreshSchedule string `env:"CACHE_REFRESH_SCHEDULE" envDefault:"@monthly"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
