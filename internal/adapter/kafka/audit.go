// Package kafka publishes prediction audit records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleankitchen-nyc/grading-service/internal/config"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// AuditWriter produces prediction records to the audit topic.
// It implements predictor.AuditSink.
type AuditWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAuditWriter creates a Kafka producer for the configured audit topic.
func NewAuditWriter(cfg *config.Config, logger *slog.Logger) *AuditWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAuditTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AuditWriter{writer: w, logger: logger}
}

// PublishPrediction serializes one prediction and writes it to the audit
// topic. Keyed by ZIP code so all predictions for one neighborhood land on
// the same partition.
func (w *AuditWriter) PublishPrediction(ctx context.Context, p domain.Prediction) error {
	msg, err := serializeToMessage(p)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AuditWriter) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Prediction into a Kafka message.
func serializeToMessage(p domain.Prediction) (kafkago.Message, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(p.FeaturesUsed.Zipcode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "grade", Value: []byte(p.Grade)},
			{Key: "predicted_at", Value: []byte(p.PredictedAt.Format(time.RFC3339))},
		},
	}, nil
}
