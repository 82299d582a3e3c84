package domain

// ClassifierResult holds the label and per-class probabilities returned by
// the trained model for one feature vector.
type ClassifierResult struct {
	Grade         string
	Probabilities map[string]float64
}

// Classifier is the trained grade model, treated as an opaque in-process
// function. Calls are never retried; an error is fatal for that single
// request and surfaced to the caller.
type Classifier interface {
	Classify(v FeatureVector) (ClassifierResult, error)
}
