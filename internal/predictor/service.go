// Package predictor exposes the grading pipeline's single public entry
// point: raw restaurant record in, grade prediction out.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/observability"
)

// AuditSink receives served predictions for offline model monitoring.
// Publishing is best-effort; sink errors never fail the request.
type AuditSink interface {
	PublishPrediction(ctx context.Context, p domain.Prediction) error
}

// Service wires the feature pipeline to the classifier. All dependencies
// are immutable after construction; the service is safe for concurrent use.
type Service struct {
	table      *domain.LookupTable
	classifier domain.Classifier
	audit      AuditSink
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a prediction Service. Pass a nil audit sink to disable the
// audit stream.
func New(table *domain.LookupTable, classifier domain.Classifier, audit AuditSink, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		table:      table,
		classifier: classifier,
		audit:      audit,
		logger:     logger,
		metrics:    metrics,
	}
}

// PredictFromRaw assembles a feature vector from any raw restaurant record
// and invokes the classifier. Enrichment never fails (missing fields
// degrade to sentinels and fallback demographics); only a classifier
// failure surfaces as an error, and it is not retried.
//
// The source label distinguishes dataset rows from live Places records in
// metrics and the audit stream; pass "dataset" or "places".
func (s *Service) PredictFromRaw(ctx context.Context, raw domain.RawRecord, source string) (domain.Prediction, error) {
	start := time.Now()

	vector := domain.BuildFeatureVector(raw, s.table)

	// Resolve again only to learn which tier served the request.
	res := s.table.Resolve(vector.Zipcode, vector.Boro)
	s.metrics.DemoLookups.WithLabelValues(res.Tier).Inc()
	if res.Tier != domain.TierZip {
		s.logger.Debug("demographic fallback",
			"tier", res.Tier,
			"zipcode", vector.Zipcode,
			"boro", vector.Boro,
		)
	}

	result, err := s.classifier.Classify(vector)
	if err != nil {
		s.metrics.PredictionErrors.Inc()
		return domain.Prediction{}, fmt.Errorf("classify: %w", err)
	}

	prediction := domain.Prediction{
		Grade:         result.Grade,
		Probabilities: result.Probabilities,
		FeaturesUsed:  vector,
		PredictedAt:   clock.Now().UTC(),
	}

	s.metrics.PredictionsTotal.WithLabelValues(prediction.Grade, source).Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	s.publishAudit(ctx, prediction)

	return prediction, nil
}

// CheckReadiness reports whether the service can serve predictions.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.table == nil || s.table.Len() == 0 {
		return errors.New("demographic lookup table not loaded")
	}
	if s.classifier == nil {
		return errors.New("classifier not loaded")
	}
	return nil
}

func (s *Service) publishAudit(ctx context.Context, p domain.Prediction) {
	if s.audit == nil {
		return
	}
	if err := s.audit.PublishPrediction(ctx, p); err != nil {
		s.metrics.AuditErrors.Inc()
		s.logger.Warn("audit publish failed", "error", err, "grade", p.Grade)
		return
	}
	s.metrics.AuditPublished.Inc()
}
