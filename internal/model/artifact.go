// Package model loads the trained grade classifier artifact and evaluates
// it in-process.
//
// The artifact is a JSON export of the offline training run: class labels,
// the exact feature column order the model was fitted on, numeric scaling
// parameters, and per-class multinomial logistic regression weights with
// one-hot encodings for the categorical columns. It is loaded once at
// startup and treated as immutable configuration; a feature-column mismatch
// with the assembler schema is detected here, at load time, instead of
// failing on the first request.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// ErrSchemaMismatch indicates the artifact was trained on a different
// feature schema than the assembler produces.
var ErrSchemaMismatch = errors.New("model artifact feature columns do not match assembler schema")

// Scaling holds standardization parameters for one numeric column.
type Scaling struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// ClassWeights holds one class's logistic regression weights. Categorical
// weights are keyed column -> category value; categories absent from the
// training vocabulary contribute zero.
type ClassWeights struct {
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// Artifact is the on-disk classifier export.
type Artifact struct {
	Version        string                  `json:"version"`
	Classes        []string                `json:"classes"`
	FeatureColumns []string                `json:"feature_columns"`
	Scaling        map[string]Scaling      `json:"numeric_scaling"`
	Weights        map[string]ClassWeights `json:"weights"`
}

// Load reads and validates a classifier artifact. Any validation failure is
// a fatal configuration error for the service.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return Parse(data)
}

// Parse builds a Model from raw artifact JSON.
func Parse(data []byte) (*Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &Model{artifact: a}, nil
}

func (a Artifact) validate() error {
	if len(a.Classes) == 0 {
		return errors.New("model artifact: no classes")
	}

	if len(a.FeatureColumns) != len(domain.FeatureColumns) {
		return fmt.Errorf("%w: got %d columns, want %d",
			ErrSchemaMismatch, len(a.FeatureColumns), len(domain.FeatureColumns))
	}
	for i, col := range a.FeatureColumns {
		if col != domain.FeatureColumns[i] {
			return fmt.Errorf("%w: column %d is %q, want %q",
				ErrSchemaMismatch, i, col, domain.FeatureColumns[i])
		}
	}

	for col, s := range a.Scaling {
		if s.Std == 0 {
			return fmt.Errorf("model artifact: zero std for column %q", col)
		}
	}

	for _, class := range a.Classes {
		if _, ok := a.Weights[class]; !ok {
			return fmt.Errorf("model artifact: no weights for class %q", class)
		}
	}

	return nil
}
