package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestInspections(t *testing.T) []Restaurant {
	t.Helper()
	rows, err := LoadInspections(filepath.Join("testdata", "inspections.csv"))
	require.NoError(t, err)
	return rows
}

func TestLoadInspections(t *testing.T) {
	rows := loadTestInspections(t)
	require.Len(t, rows, 6)

	first := rows[0]
	assert.Equal(t, "Golden Dragon", first.Name)
	assert.Equal(t, "Brooklyn", first.Borough, "borough is normalized on load")
	assert.Equal(t, "11234", first.Zipcode)
	assert.Equal(t, "flatlands", first.Neighborhood)
	assert.Equal(t, "chinese", first.Cuisine)
	require.NotNil(t, first.Score)
	assert.Equal(t, 24.0, *first.Score)
	assert.Equal(t, "B", first.Grade)
	assert.Equal(t, 1, first.CriticalFlag)
	assert.Equal(t, "10F", first.ViolationCode)
	assert.True(t, first.HasDemo)
	assert.Equal(t, 88000.0, first.Demo.Population)

	notCritical := rows[1]
	assert.Equal(t, 0, notCritical.CriticalFlag)

	// Row with no inspection history and no demographics.
	mystery := rows[3]
	assert.Equal(t, "Mystery Diner", mystery.Name)
	assert.Nil(t, mystery.Score)
	assert.False(t, mystery.HasDemo)
	assert.Equal(t, "sunnyside", mystery.Neighborhood)
}

func TestLoadInspections_MissingFile(t *testing.T) {
	_, err := LoadInspections(filepath.Join("testdata", "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open inspection data")
}

func TestLoadNeighborhoods(t *testing.T) {
	rows, err := LoadNeighborhoods(filepath.Join("testdata", "neighborhoods.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Queens", rows[0].Borough)
	assert.Equal(t, "sunnyside", rows[0].Neighborhood)
	assert.Equal(t, 52000.0, rows[0].Demo.Population)
	assert.Equal(t, 74.0, rows[0].Demo.IndexScore)
}

func TestNormalizeNeighborhood(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"St. George", "st george"},
		{"SUNNYSIDE ", "sunnyside"},
		{"Bedford-Stuyvesant", "bedfordstuyvesant"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeNeighborhood(tt.input), "input %q", tt.input)
	}
}

func TestRestaurantRaw(t *testing.T) {
	rows := loadTestInspections(t)

	raw := rows[0].Raw()
	assert.Equal(t, "Brooklyn", raw["borough"])
	assert.Equal(t, "11234", raw["zipcode"])
	assert.Equal(t, 24.0, raw["score"])
	assert.Equal(t, 1, raw["critical_flag"])
	assert.Equal(t, "10F", raw["violation_code"])

	// Scoreless rows omit the key entirely so the extractor defaults it.
	rawMystery := rows[3].Raw()
	_, hasScore := rawMystery["score"]
	assert.False(t, hasScore)
	_, hasViolation := rawMystery["violation_code"]
	assert.False(t, hasViolation)
}
