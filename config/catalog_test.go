package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Already canonical", input: "Detached", expected: "Detached"},
		{name: "Lowercase alias", input: "detached", expected: "Detached"},
		{name: "Source-report spelling", input: "Att/Row/Twnhouse", expected: "Townhouse"},
		{name: "Condo apartment long form", input: "Condo Apartment", expected: "Condo Apt"},
		{name: "Surrounding whitespace", input: "  condo apt  ", expected: "Condo Apt"},
		{name: "Unknown passes through", input: "Houseboat", expected: "Houseboat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalCategory(tt.input))
		})
	}
}

func TestCatalogNotEmpty(t *testing.T) {
	assert.NotEmpty(t, Regions)
	assert.NotEmpty(t, PropertyCategories)
	assert.Contains(t, Regions, "Brampton")
	assert.Contains(t, PropertyCategories, "Detached")
}
