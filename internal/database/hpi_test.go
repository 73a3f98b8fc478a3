package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func insertObservation(t *testing.T, db *Database, area, category, month string, index float64, benchmark *float64) {
	t.Helper()
	_, err := db.GetDB().Exec(`
		INSERT INTO market_hpi (area_name, property_category, report_month, hpi_index, benchmark_price)
		VALUES (?, ?, ?, ?, ?)`,
		area, category, month, index, benchmark)
	require.NoError(t, err)
}

func ptr(v float64) *float64 { return &v }

func TestIndexValueExactMatch(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2020-06", 280.5, ptr(1050000))

	obs, err := db.IndexValue([]string{"Toronto"}, "Detached", "2020-06")
	assert.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 280.5, obs.IndexValue)
	assert.Equal(t, "2020-06", obs.ReportMonth)
}

func TestIndexValuePriorFallback(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2020-03", 270.0, nil)
	insertObservation(t, db, "Toronto", "Detached", "2020-06", 280.5, nil)

	// 2020-05 has no report; the nearest earlier one wins.
	obs, err := db.IndexValue([]string{"Toronto"}, "Detached", "2020-05")
	assert.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 270.0, obs.IndexValue)
	assert.Equal(t, "2020-03", obs.ReportMonth)
}

func TestIndexValueNeverLooksForward(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2020-06", 280.5, nil)

	obs, err := db.IndexValue([]string{"Toronto"}, "Detached", "2020-01")
	assert.NoError(t, err)
	assert.Nil(t, obs)
}

func TestIndexValueMatchesDistrictCodes(t *testing.T) {
	db := setupTestDB(t)
	// Older reports file Brampton under its district codes.
	insertObservation(t, db, "W24", "Detached", "2014-06", 155.2, nil)

	obs, err := db.IndexValue([]string{"Brampton", "W23", "W24", "W-23", "W-24"}, "Detached", "2014-06")
	assert.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 155.2, obs.IndexValue)
}

func TestIndexValueIgnoresOtherCategories(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Condo Apartment", "2020-06", 190.0, nil)

	obs, err := db.IndexValue([]string{"Toronto"}, "Detached", "2020-06")
	assert.NoError(t, err)
	assert.Nil(t, obs)
}

func TestLatestIndexValue(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2020-06", 280.5, nil)
	insertObservation(t, db, "Toronto", "Detached", "2026-07", 315.8, nil)
	insertObservation(t, db, "Toronto", "Detached", "2023-01", 301.2, nil)

	obs, err := db.LatestIndexValue([]string{"Toronto"}, "Detached")
	assert.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 315.8, obs.IndexValue)
	assert.Equal(t, "2026-07", obs.ReportMonth)
}

func TestIndexTrendOrderedAscending(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2026-07", 315.8, ptr(1310000))
	insertObservation(t, db, "Toronto", "Detached", "2020-06", 280.5, nil)
	insertObservation(t, db, "Toronto", "Detached", "2023-01", 301.2, ptr(1250000))
	insertObservation(t, db, "Toronto", "Detached", "2019-12", 260.0, nil)

	trend, err := db.IndexTrend([]string{"Toronto"}, "Detached", "2020-06")
	assert.NoError(t, err)
	require.Len(t, trend, 3)

	assert.Equal(t, "2020-06", trend[0].ReportMonth)
	assert.Equal(t, "2023-01", trend[1].ReportMonth)
	assert.Equal(t, "2026-07", trend[2].ReportMonth)

	assert.Nil(t, trend[0].BenchmarkPrice)
	require.NotNil(t, trend[1].BenchmarkPrice)
	assert.Equal(t, 1250000.0, *trend[1].BenchmarkPrice)
}

func TestBenchmarkPriceFallbackChain(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2020-03", 270.0, ptr(1000000))
	insertObservation(t, db, "Toronto", "Detached", "2020-09", 285.0, ptr(1080000))
	// A row without a benchmark must never satisfy the lookup.
	insertObservation(t, db, "Toronto", "Detached", "2020-05", 275.0, nil)

	t.Run("Exact", func(t *testing.T) {
		obs, err := db.BenchmarkPrice([]string{"Toronto"}, "Detached", "2020-03")
		assert.NoError(t, err)
		require.NotNil(t, obs)
		assert.Equal(t, 1000000.0, obs.Price)
	})

	t.Run("Prior skips null benchmarks", func(t *testing.T) {
		obs, err := db.BenchmarkPrice([]string{"Toronto"}, "Detached", "2020-06")
		assert.NoError(t, err)
		require.NotNil(t, obs)
		assert.Equal(t, 1000000.0, obs.Price)
		assert.Equal(t, "2020-03", obs.ReportMonth)
	})

	t.Run("Future when nothing earlier exists", func(t *testing.T) {
		obs, err := db.BenchmarkPrice([]string{"Toronto"}, "Detached", "2019-01")
		assert.NoError(t, err)
		require.NotNil(t, obs)
		assert.Equal(t, 1000000.0, obs.Price)
		assert.Equal(t, "2020-03", obs.ReportMonth)
	})

	t.Run("No benchmarks at all", func(t *testing.T) {
		obs, err := db.BenchmarkPrice([]string{"Oshawa"}, "Detached", "2020-06")
		assert.NoError(t, err)
		assert.Nil(t, obs)
	})
}

func TestLatestBenchmarkPrice(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2026-07", 315.8, nil)
	insertObservation(t, db, "Toronto", "Detached", "2026-06", 314.0, ptr(1300000))

	// The newest row has no benchmark, so the lookup walks back to 2026-06.
	obs, err := db.LatestBenchmarkPrice([]string{"Toronto"}, "Detached")
	assert.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 1300000.0, obs.Price)
	assert.Equal(t, "2026-06", obs.ReportMonth)
}

func TestIndexDateRange(t *testing.T) {
	db := setupTestDB(t)
	insertObservation(t, db, "Toronto", "Detached", "2015-01", 180.0, nil)
	insertObservation(t, db, "Toronto", "Detached", "2026-07", 315.8, nil)

	coverage, err := db.IndexDateRange([]string{"Toronto"}, "Detached")
	assert.NoError(t, err)
	require.NotNil(t, coverage)
	assert.Equal(t, "2015-01", coverage.Earliest)
	assert.Equal(t, "2026-07", coverage.Latest)
}

func TestIndexDateRangeEmptySelection(t *testing.T) {
	db := setupTestDB(t)

	coverage, err := db.IndexDateRange([]string{"Toronto"}, "Detached")
	assert.NoError(t, err)
	assert.Nil(t, coverage)
}
