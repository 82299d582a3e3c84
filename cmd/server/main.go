package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cleankitchen-nyc/grading-service/internal/adapter/httpapi"
	kafkaadapter "github.com/cleankitchen-nyc/grading-service/internal/adapter/kafka"
	"github.com/cleankitchen-nyc/grading-service/internal/adapter/places"
	"github.com/cleankitchen-nyc/grading-service/internal/config"
	"github.com/cleankitchen-nyc/grading-service/internal/dataset"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/model"
	"github.com/cleankitchen-nyc/grading-service/internal/observability"
	"github.com/cleankitchen-nyc/grading-service/internal/predictor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Load the flat-file extracts and build the derived structures.
	restaurants, err := dataset.LoadInspections(cfg.InspectionDataPath)
	if err != nil {
		logger.Error("failed to load inspection data", "error", err, "path", cfg.InspectionDataPath)
		os.Exit(1)
	}

	neighborhoods, err := dataset.LoadNeighborhoods(cfg.NeighborhoodDataPath)
	if err != nil {
		logger.Error("failed to load neighborhood data", "error", err, "path", cfg.NeighborhoodDataPath)
		os.Exit(1)
	}

	restaurants = dataset.MergeNeighborhoods(restaurants, neighborhoods)

	table, err := dataset.BuildLookupTable(restaurants)
	if err != nil {
		logger.Error("failed to build demographic lookup table", "error", err)
		os.Exit(1)
	}

	store := dataset.NewStore(restaurants)
	metrics.DatasetRestaurants.Set(float64(store.Len()))
	metrics.LookupTableZips.Set(float64(table.Len()))
	logger.Info("dataset loaded", "restaurants", store.Len(), "zip_aggregates", table.Len())

	classifier, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "error", err, "path", cfg.ModelPath)
		os.Exit(1)
	}
	logger.Info("model loaded", "version", classifier.Version(), "classes", classifier.Classes())

	// Initialize place search (feature-flagged via PLACES_ENABLED / GOOGLE_MAPS_API_KEY).
	var searcher domain.PlaceSearcher
	if cfg.PlacesEnabled {
		client := places.NewClient(cfg.PlacesAPIKey, cfg.PlacesTimeout, metrics, logger)
		searcher = places.NewCachedSearcher(client, cfg.PlacesCacheSize, metrics)
		metrics.PlacesEnabled.Set(1)
		logger.Info("places integration enabled", "cache_size", cfg.PlacesCacheSize, "timeout", cfg.PlacesTimeout)
	} else {
		logger.Info("places integration disabled")
	}

	// Initialize the prediction audit stream (feature-flagged via AUDIT_ENABLED).
	var audit predictor.AuditSink
	var auditWriter *kafkaadapter.AuditWriter
	if cfg.AuditEnabled {
		auditWriter = kafkaadapter.NewAuditWriter(cfg, logger)
		audit = auditWriter
		logger.Info("prediction audit stream enabled", "topic", cfg.KafkaAuditTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("prediction audit stream disabled")
	}

	svc := predictor.New(table, classifier, audit, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, store, searcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("audit writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
