package model

import (
	"fmt"
	"math"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// Model evaluates the loaded artifact as multinomial logistic regression.
// Immutable after Load; safe for concurrent use.
type Model struct {
	artifact Artifact
}

// Version returns the artifact's version string.
func (m *Model) Version() string {
	return m.artifact.Version
}

// Classes returns the grade labels the model predicts over.
func (m *Model) Classes() []string {
	return m.artifact.Classes
}

// Classify scores the feature vector against every class and returns the
// argmax label with softmax probabilities. An artifact that produces
// non-finite scores (a training/export bug) surfaces as an error rather
// than a silent bad prediction.
func (m *Model) Classify(v domain.FeatureVector) (domain.ClassifierResult, error) {
	numeric := v.Numeric()
	categorical := v.Categorical()

	scores := make([]float64, len(m.artifact.Classes))
	for i, class := range m.artifact.Classes {
		scores[i] = m.score(m.artifact.Weights[class], numeric, categorical)
	}

	probs := softmax(scores)

	best := 0
	probabilities := make(map[string]float64, len(probs))
	for i, class := range m.artifact.Classes {
		p := probs[i]
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return domain.ClassifierResult{}, fmt.Errorf("classifier produced non-finite probability for %q", class)
		}
		probabilities[class] = p
		if p > probs[best] {
			best = i
		}
	}

	return domain.ClassifierResult{
		Grade:         m.artifact.Classes[best],
		Probabilities: probabilities,
	}, nil
}

func (m *Model) score(w ClassWeights, numeric map[string]float64, categorical map[string]string) float64 {
	score := w.Intercept

	for col, weight := range w.Numeric {
		value := numeric[col]
		if s, ok := m.artifact.Scaling[col]; ok {
			value = (value - s.Mean) / s.Std
		}
		score += weight * value
	}

	for col, vocab := range w.Categorical {
		// Unknown categories have no trained weight and contribute zero.
		score += vocab[categorical[col]]
	}

	return score
}

// softmax converts raw scores to probabilities, shifting by the max score
// for numeric stability.
func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	exps := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		exps[i] = math.Exp(s - maxScore)
		sum += exps[i]
	}

	for i := range exps {
		exps[i] /= sum
	}
	return exps
}
