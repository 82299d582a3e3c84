package model

import (
	"path/filepath"
	"testing"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := Load(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)
	return m
}

func baseVector() domain.FeatureVector {
	return domain.FeatureVector{
		Score:          10.0,
		NYCPovertyRate: 0.12,
		MedianIncome:   85000,
		PercWhite:      0.45,
		PercBlack:      0.25,
		PercAsian:      0.15,
		PercOther:      0.05,
		PercHispanic:   0.15,
		IndexScore:     75,
		Population:     60000,
		Boro:           "Brooklyn",
		Zipcode:        "11234",
		Cuisine:        "american",
		ViolationCode:  domain.UnknownViolation,
	}
}

func TestLoad(t *testing.T) {
	m := loadTestModel(t)

	assert.Equal(t, "2026-02-nyc-v3", m.Version())
	assert.Equal(t, []string{"A", "B", "C"}, m.Classes())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read model artifact")
}

func TestParse_SchemaMismatch(t *testing.T) {
	_, err := Parse([]byte(`{
		"classes": ["A","B"],
		"feature_columns": ["score","boro"],
		"weights": {"A": {}, "B": {}}
	}`))
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParse_BadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse model artifact")
}

func TestParse_MissingClassWeights(t *testing.T) {
	m := loadTestModel(t)
	a := m.artifact
	delete(a.Weights, "C")

	err := a.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no weights for class "C"`)
}

func TestParse_ZeroStd(t *testing.T) {
	m := loadTestModel(t)
	a := m.artifact
	a.Scaling = map[string]Scaling{"score": {Mean: 15, Std: 0}}

	err := a.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero std")
}

func TestClassify_LowScoreGetsA(t *testing.T) {
	m := loadTestModel(t)

	v := baseVector()
	v.Score = 5

	result, err := m.Classify(v)
	require.NoError(t, err)
	assert.Equal(t, "A", result.Grade)
	assert.Greater(t, result.Probabilities["A"], result.Probabilities["B"])
	assert.Greater(t, result.Probabilities["A"], result.Probabilities["C"])
}

func TestClassify_HighScoreCriticalGetsC(t *testing.T) {
	m := loadTestModel(t)

	v := baseVector()
	v.Score = 45
	v.CriticalFlag = 1
	v.ViolationCode = "06D"

	result, err := m.Classify(v)
	require.NoError(t, err)
	assert.Equal(t, "C", result.Grade)
}

func TestClassify_ProbabilitiesSumToOne(t *testing.T) {
	m := loadTestModel(t)

	result, err := m.Classify(baseVector())
	require.NoError(t, err)

	var sum float64
	for _, p := range result.Probabilities {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Len(t, result.Probabilities, 3)
}

func TestClassify_Deterministic(t *testing.T) {
	m := loadTestModel(t)
	v := baseVector()

	r1, err := m.Classify(v)
	require.NoError(t, err)
	r2, err := m.Classify(v)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestClassify_UnknownCategoriesContributeNothing(t *testing.T) {
	m := loadTestModel(t)

	known := baseVector()
	unknown := baseVector()
	unknown.Boro = "Atlantis"
	unknown.Cuisine = "martian"

	rKnown, err := m.Classify(known)
	require.NoError(t, err)
	rUnknown, err := m.Classify(unknown)
	require.NoError(t, err)

	// Brooklyn carries a small A weight; dropping to an unknown borough only
	// shifts probabilities slightly and never panics.
	assert.NotEqual(t, rKnown.Probabilities["A"], rUnknown.Probabilities["A"])
	var sum float64
	for _, p := range rUnknown.Probabilities {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float64{1000, 1000, 1000})
	for _, p := range probs {
		assert.InDelta(t, 1.0/3.0, p, 1e-9, "large equal scores must not overflow")
	}

	probs = softmax([]float64{0, 100})
	assert.Less(t, probs[0], 1e-9)
	assert.InDelta(t, 1.0, probs[1], 1e-9)
}
