package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "database/market.db", cfg.Database.Path)
	assert.Equal(t, 250, cfg.Ingestion.MaxBatchSize)
	assert.Equal(t, 2, cfg.Ingestion.ProcessorCount)
	assert.Equal(t, 3, cfg.Ingestion.MaxRetries)
	assert.Equal(t, 32, cfg.Ingestion.QueueSize)
	assert.Equal(t, "@monthly", cfg.Cache.RefreshSchedule)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BATCH_PROCESSOR_COUNT", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 4, cfg.Ingestion.ProcessorCount)
}
