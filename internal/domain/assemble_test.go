package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeatureVector_KnownZip(t *testing.T) {
	table := newTestTable(t)

	raw := RawRecord{
		"borough":             "Brooklyn",
		"zipcode":             11234,
		"cuisine_description": "caribbean",
		"score":               nil,
		"critical_flag_bin":   nil,
	}

	v := BuildFeatureVector(raw, table)

	assert.Equal(t, 0, v.DemoMissing)
	assert.Equal(t, 0, v.PopMissing)
	assert.Equal(t, "Brooklyn", v.Boro)
	assert.Equal(t, "11234", v.Zipcode)
	assert.Equal(t, "caribbean", v.Cuisine)
	assert.Equal(t, DefaultScore, v.Score)
	assert.Equal(t, 0, v.CriticalFlag)
	assert.Equal(t, 88000.0, v.Population)
	assert.Equal(t, 0.12, v.NYCPovertyRate)
}

func TestBuildFeatureVector_UnknownZipKnownBorough(t *testing.T) {
	table := newTestTable(t)

	raw := RawRecord{
		"borough": "Queens",
		"zipcode": "99999",
		"score":   18,
	}

	v := BuildFeatureVector(raw, table)

	assert.Equal(t, 1, v.DemoMissing)
	assert.Equal(t, 1, v.PopMissing)

	queens, ok := table.Borough("Queens")
	require.True(t, ok)
	assert.Equal(t, queens.Population, v.Population)
	assert.Equal(t, queens.MedianIncome, v.MedianIncome)
	assert.Equal(t, queens.IndexScore, v.IndexScore)
	assert.Equal(t, 18.0, v.Score)
}

func TestBuildFeatureVector_EmptyRecord(t *testing.T) {
	table := newTestTable(t)

	v := BuildFeatureVector(RawRecord{}, table)

	assert.Equal(t, UnknownBorough, v.Boro)
	assert.Equal(t, UnknownZip, v.Zipcode)
	assert.Equal(t, UnknownCuisine, v.Cuisine)
	assert.Equal(t, UnknownViolation, v.ViolationCode)
	assert.Equal(t, DefaultScore, v.Score)
	assert.Equal(t, 1, v.PopMissing)
	assert.Equal(t, 1, v.DemoMissing)
	assert.Equal(t, table.Global(), Demographics{
		Population:     v.Population,
		NYCPovertyRate: v.NYCPovertyRate,
		MedianIncome:   v.MedianIncome,
		PercWhite:      v.PercWhite,
		PercBlack:      v.PercBlack,
		PercAsian:      v.PercAsian,
		PercOther:      v.PercOther,
		PercHispanic:   v.PercHispanic,
		IndexScore:     v.IndexScore,
	})
}

func TestBuildFeatureVector_Idempotent(t *testing.T) {
	table := newTestTable(t)
	raw := RawRecord{"borough": "Queens", "zipcode": 11101, "cuisine": "Thai"}

	first := BuildFeatureVector(raw, table)
	second := BuildFeatureVector(raw, table)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("vectors differ between calls (-first +second):\n%s", diff)
	}
}

// Totality: arbitrary junk in, complete typed vector out.
func TestBuildFeatureVector_Totality(t *testing.T) {
	table := newTestTable(t)

	inputs := []RawRecord{
		nil,
		{},
		{"score": "not a number", "zipcode": struct{}{}, "borough": 42},
		{"critical_flag": []string{"nope"}, "cuisine": ""},
		{"zip": "   ", "violation_code": nil},
	}

	for _, raw := range inputs {
		v := BuildFeatureVector(raw, table)

		assert.NotEmpty(t, v.Boro)
		assert.NotEmpty(t, v.Zipcode)
		assert.NotEmpty(t, v.Cuisine)
		assert.NotEmpty(t, v.ViolationCode)
		assert.False(t, v.Score != v.Score, "score must not be NaN")
		assert.Contains(t, []int{0, 1}, v.PopMissing)
		assert.Contains(t, []int{0, 1}, v.DemoMissing)
	}
}

func TestFeatureVector_ColumnMaps(t *testing.T) {
	table := newTestTable(t)
	v := BuildFeatureVector(RawRecord{"borough": "Brooklyn", "zipcode": "11201"}, table)

	numeric := v.Numeric()
	categorical := v.Categorical()

	// Every schema column appears in exactly one of the two maps.
	assert.Len(t, numeric, 13)
	assert.Len(t, categorical, 4)
	for _, col := range FeatureColumns {
		_, isNumeric := numeric[col]
		_, isCategorical := categorical[col]
		assert.True(t, isNumeric != isCategorical, "column %q must be numeric or categorical", col)
	}
}
