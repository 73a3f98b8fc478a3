package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeys(t *testing.T) {
	tests := []struct {
		name         string
		region       string
		expectedKeys []string
	}{
		{
			name:         "Region split across two districts",
			region:       "Brampton",
			expectedKeys: []string{"Brampton", "W23", "W24", "W-23", "W-24"},
		},
		{
			name:         "Region with a single district",
			region:       "Pickering",
			expectedKeys: []string{"Pickering", "E13", "E-13"},
		},
		{
			name:         "Unmapped region fails open",
			region:       "Orangeville",
			expectedKeys: []string{"Orangeville"},
		},
		{
			name:         "Completely unknown name fails open",
			region:       "Atlantis",
			expectedKeys: []string{"Atlantis"},
		},
		{
			name:         "Empty string still yields itself",
			region:       "",
			expectedKeys: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := LookupKeys(tt.region)
			assert.Equal(t, tt.expectedKeys, keys)
			assert.NotEmpty(t, keys)
			assert.Equal(t, tt.region, keys[0],
				"the input name must always come first")
		})
	}
}

func TestNormalizeAreaName(t *testing.T) {
	assert.Equal(t, "Pickering", NormalizeAreaName("E13"))
	assert.Equal(t, "Pickering", NormalizeAreaName("E-13"))
	assert.Equal(t, "Pickering", NormalizeAreaName("Pickering"))
	assert.Equal(t, "Unknown Place", NormalizeAreaName("Unknown Place"))
}

func TestLookupKeysIdempotent(t *testing.T) {
	first := LookupKeys("Mississauga")
	second := LookupKeys("Mississauga")
	assert.Equal(t, first, second)
}
