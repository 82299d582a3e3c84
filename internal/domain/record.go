package domain

import "time"

// Sentinel values substituted when a raw field cannot be determined. Named so
// callers and tests never compare against magic strings.
const (
	UnknownZip       = "00000"
	UnknownViolation = "00X"
	UnknownCuisine   = "other"
	UnknownBorough   = "Unknown"

	// DefaultScore is the neutral mid-range inspection score used for
	// records with no inspection history, such as live Places results.
	DefaultScore = 10.0
)

// RawRecord is an arbitrarily-shaped restaurant record from either a dataset
// row or a normalized Places result. Keys and value types vary by source;
// nothing about it is guaranteed.
type RawRecord map[string]any

// FeatureVector is the fixed-schema record the classifier consumes. Every
// field is always present and typed; none is ever null or NaN.
type FeatureVector struct {
	Score          float64 `json:"score"`
	NYCPovertyRate float64 `json:"nyc_poverty_rate"`
	MedianIncome   float64 `json:"median_income"`
	PercWhite      float64 `json:"perc_white"`
	PercBlack      float64 `json:"perc_black"`
	PercAsian      float64 `json:"perc_asian"`
	PercOther      float64 `json:"perc_other"`
	PercHispanic   float64 `json:"perc_hispanic"`
	IndexScore     float64 `json:"indexscore"`
	Population     float64 `json:"population"`
	PopMissing     int     `json:"pop_missing"`
	DemoMissing    int     `json:"demo_missing"`
	Boro           string  `json:"boro"`
	Zipcode        string  `json:"zipcode"`
	Cuisine        string  `json:"cuisine_description"`
	ViolationCode  string  `json:"violation_code"`
	CriticalFlag   int     `json:"critical_flag"`
}

// FeatureColumns is the column order the classifier was trained with. The
// model artifact's feature_columns list must match it exactly.
var FeatureColumns = []string{
	"score",
	"nyc_poverty_rate",
	"median_income",
	"perc_white",
	"perc_black",
	"perc_asian",
	"perc_other",
	"perc_hispanic",
	"indexscore",
	"population",
	"pop_missing",
	"demo_missing",
	"boro",
	"zipcode",
	"cuisine_description",
	"violation_code",
	"critical_flag",
}

// Numeric returns the vector's numeric features keyed by column name.
func (v FeatureVector) Numeric() map[string]float64 {
	return map[string]float64{
		"score":            v.Score,
		"nyc_poverty_rate": v.NYCPovertyRate,
		"median_income":    v.MedianIncome,
		"perc_white":       v.PercWhite,
		"perc_black":       v.PercBlack,
		"perc_asian":       v.PercAsian,
		"perc_other":       v.PercOther,
		"perc_hispanic":    v.PercHispanic,
		"indexscore":       v.IndexScore,
		"population":       v.Population,
		"pop_missing":      float64(v.PopMissing),
		"demo_missing":     float64(v.DemoMissing),
		"critical_flag":    float64(v.CriticalFlag),
	}
}

// Categorical returns the vector's categorical features keyed by column name.
func (v FeatureVector) Categorical() map[string]string {
	return map[string]string{
		"boro":                v.Boro,
		"zipcode":             v.Zipcode,
		"cuisine_description": v.Cuisine,
		"violation_code":      v.ViolationCode,
	}
}

// Prediction is the classifier's answer for one assembled vector.
type Prediction struct {
	Grade         string             `json:"grade"`
	Probabilities map[string]float64 `json:"probabilities"`
	FeaturesUsed  FeatureVector      `json:"features_used"`
	PredictedAt   time.Time          `json:"predicted_at"`
}
