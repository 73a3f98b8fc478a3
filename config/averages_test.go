package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageForYear(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		expected float64
	}{
		{name: "Exact year", year: 1993, expected: 206490},
		{name: "Latest year", year: 2025, expected: 1067968},
		{name: "Before table clamps to earliest", year: 1960, expected: 75694},
		{name: "After table clamps to latest", year: 2040, expected: 1067968},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AverageForYear(tt.year))
		})
	}
}

func TestLatestAverageYear(t *testing.T) {
	assert.Equal(t, 2025, LatestAverageYear())
}

func TestAveragesHaveNoGaps(t *testing.T) {
	for year := EarliestAverageYear; year <= LatestAverageYear(); year++ {
		avg, ok := HistoricAverages[year]
		assert.True(t, ok, "missing year %d", year)
		assert.Greater(t, avg, 0.0, "year %d", year)
	}
}

func TestValidateTables(t *testing.T) {
	assert.NoError(t, ValidateTables())
}
