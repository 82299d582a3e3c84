package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBorough(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical passthrough", "Brooklyn", "Brooklyn"},
		{"lower case", "brooklyn", "Brooklyn"},
		{"trailing space", "BROOKLYN ", "Brooklyn"},
		{"kings county", "kings county", "Brooklyn"},
		{"kings", "Kings", "Brooklyn"},
		{"richmond county", "richmond county", "Staten Island"},
		{"richmond", "RICHMOND", "Staten Island"},
		{"staten island no space", "statenisland", "Staten Island"},
		{"new york", "new york", "Manhattan"},
		{"ny abbreviation", "NY", "Manhattan"},
		{"new york county", "New York County", "Manhattan"},
		{"the bronx", "the bronx", "Bronx"},
		{"queens county", "queens county", "Queens"},
		{"empty", "", "Unknown"},
		{"whitespace only", "   ", "Unknown"},
		{"unrecognized passes through title-cased", "long island city", "Long Island City"},
		{"unrecognized mixed case", "yONKERS", "Yonkers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBorough(tt.input))
		})
	}
}

func TestNormalizeBorough_AllCanonicalStable(t *testing.T) {
	// Canonical names must survive a round trip unchanged.
	for _, boro := range Boroughs {
		assert.Equal(t, boro, NormalizeBorough(boro))
	}
}
