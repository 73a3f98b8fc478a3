package processor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"equitybridge/server/config"
	"equitybridge/server/internal/database"
	"equitybridge/server/internal/models"
	"equitybridge/server/internal/queue"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	gormDB, err := database.NewGormDB(dbPath)
	require.NoError(t, err)
	return gormDB
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Ingestion.ProcessorCount = 1
	cfg.Ingestion.MaxRetries = 1
	cfg.Ingestion.RetryDelay = 0
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.IndexRecord{}).Count(&count).Error)
	return count
}

func TestProcessBatch(t *testing.T) {
	db := setupTestDB(t)
	q := queue.NewIndexQueue(10, testLogger())
	p := NewBatchProcessor(db, q, testConfig(), testLogger())

	batch := []*models.IndexRecord{
		{AreaName: "Toronto", PropertyCategory: "Detached", ReportMonth: "2026-06", IndexValue: 315.8},
		{AreaName: "Brampton", PropertyCategory: "Detached", ReportMonth: "2026-06", IndexValue: 290.1},
	}

	require.NoError(t, p.processBatch(batch))
	assert.Equal(t, int64(2), countRows(t, db))
}

func TestProcessBatchUpsertsOnConflict(t *testing.T) {
	db := setupTestDB(t)
	q := queue.NewIndexQueue(10, testLogger())
	p := NewBatchProcessor(db, q, testConfig(), testLogger())

	first := 1300000.0
	require.NoError(t, p.processBatch([]*models.IndexRecord{
		{AreaName: "Toronto", PropertyCategory: "Detached", ReportMonth: "2026-06", IndexValue: 315.8, BenchmarkPrice: &first},
	}))

	// A re-import of the same report month replaces, not duplicates.
	revised := 1310000.0
	require.NoError(t, p.processBatch([]*models.IndexRecord{
		{AreaName: "Toronto", PropertyCategory: "Detached", ReportMonth: "2026-06", IndexValue: 316.2, BenchmarkPrice: &revised},
	}))

	assert.Equal(t, int64(1), countRows(t, db))

	var stored models.IndexRecord
	require.NoError(t, db.First(&stored, "area_name = ?", "Toronto").Error)
	assert.Equal(t, 316.2, stored.IndexValue)
	require.NotNil(t, stored.BenchmarkPrice)
	assert.Equal(t, 1310000.0, *stored.BenchmarkPrice)
}

func TestProcessorDrainsQueue(t *testing.T) {
	db := setupTestDB(t)
	q := queue.NewIndexQueue(10, testLogger())
	p := NewBatchProcessor(db, q, testConfig(), testLogger())

	p.Start()
	q.Start()
	defer p.Stop()
	defer q.Close()

	require.NoError(t, q.Push([]*models.IndexRecord{
		{AreaName: "Toronto", PropertyCategory: "Detached", ReportMonth: "2026-06", IndexValue: 315.8},
	}))
	require.NoError(t, q.Push([]*models.IndexRecord{
		{AreaName: "Toronto", PropertyCategory: "Detached", ReportMonth: "2026-07", IndexValue: 316.4},
	}))

	deadline := time.Now().Add(2 * time.Second)
	for countRows(t, db) < 2 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, int64(2), countRows(t, db))
}

func TestProcessorStartStop(t *testing.T) {
	db := setupTestDB(t)
	q := queue.NewIndexQueue(10, testLogger())

	cfg := testConfig()
	cfg.Ingestion.ProcessorCount = 2
	p := NewBatchProcessor(db, q, cfg, testLogger())

	p.Start()
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	require.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
}
