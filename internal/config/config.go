package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset and model artifact paths, read once at startup.
	InspectionDataPath   string
	NeighborhoodDataPath string
	ModelPath            string

	// Google Places configuration.
	PlacesAPIKey    string
	PlacesEnabled   bool
	PlacesTimeout   time.Duration
	PlacesCacheSize int

	// Kafka prediction-audit stream configuration.
	KafkaBrokers    []string
	KafkaAuditTopic string
	AuditEnabled    bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	placesTimeout, err := parseDuration("PLACES_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	placesKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	placesEnabled := placesKey != ""
	if v := os.Getenv("PLACES_ENABLED"); v != "" {
		placesEnabled = v == "true"
	}

	auditEnabled := os.Getenv("AUDIT_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		InspectionDataPath:   envOrDefault("INSPECTION_DATA_PATH", "data/inspections.csv"),
		NeighborhoodDataPath: envOrDefault("NEIGHBORHOOD_DATA_PATH", "data/neighborhoods.csv"),
		ModelPath:            envOrDefault("MODEL_PATH", "models/grade_model.json"),

		PlacesAPIKey:    placesKey,
		PlacesEnabled:   placesEnabled,
		PlacesTimeout:   placesTimeout,
		PlacesCacheSize: parseCacheSize(),

		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAuditTopic: envOrDefault("KAFKA_AUDIT_TOPIC", "prediction-audit"),
		AuditEnabled:    auditEnabled,
	}

	if cfg.InspectionDataPath == "" {
		return nil, errors.New("INSPECTION_DATA_PATH is required")
	}
	if cfg.ModelPath == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if cfg.PlacesEnabled && cfg.PlacesAPIKey == "" {
		return nil, errors.New("PLACES_ENABLED is true but GOOGLE_MAPS_API_KEY is not set")
	}
	if cfg.AuditEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("AUDIT_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseCacheSize() int {
	if s := os.Getenv("PLACES_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
