package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// grading service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: grade, source={dataset,places}
	PredictionErrors   prometheus.Counter
	PredictionDuration prometheus.Histogram
	DemoLookups        *prometheus.CounterVec // labels: tier={zip,borough,global}

	// Dataset gauges, set once after startup load.
	DatasetRestaurants prometheus.Gauge
	LookupTableZips    prometheus.Gauge

	// Places API metrics.
	PlacesRequests    *prometheus.CounterVec   // labels: method={search,details,geocode}, outcome={success,error,empty}
	PlacesCache       *prometheus.CounterVec   // labels: method, result={hit,miss}
	PlacesAPIDuration *prometheus.HistogramVec // labels: method
	PlacesEnabled     prometheus.Gauge

	// Audit stream metrics.
	AuditPublished prometheus.Counter
	AuditErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "predictions_total",
			Help:      "Grade predictions served, by predicted grade and record source.",
		}, []string{"grade", "source"}),
		PredictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "prediction_errors_total",
			Help:      "Classifier invocation failures.",
		}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cleankitchen",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a full extract-resolve-assemble-classify cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		DemoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "demographic_lookups_total",
			Help:      "Demographic resolutions by fallback tier.",
		}, []string{"tier"}),
		DatasetRestaurants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cleankitchen",
			Name:      "dataset_restaurants",
			Help:      "Restaurant rows loaded from the inspection dataset.",
		}),
		LookupTableZips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cleankitchen",
			Name:      "lookup_table_zips",
			Help:      "ZIP-level rows in the demographic lookup table.",
		}),
		PlacesRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "places_requests_total",
			Help:      "Google Places API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		PlacesCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "places_cache_total",
			Help:      "Places cache lookups by method and result.",
		}, []string{"method", "result"}),
		PlacesAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cleankitchen",
			Name:      "places_api_duration_seconds",
			Help:      "Google Places API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		PlacesEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cleankitchen",
			Name:      "places_enabled",
			Help:      "1 when live Places search is enabled, 0 otherwise.",
		}),
		AuditPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "audit_published_total",
			Help:      "Prediction audit events published to Kafka.",
		}),
		AuditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cleankitchen",
			Name:      "audit_errors_total",
			Help:      "Failed audit event publishes.",
		}),
	}

	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionErrors,
		m.PredictionDuration,
		m.DemoLookups,
		m.DatasetRestaurants,
		m.LookupTableZips,
		m.PlacesRequests,
		m.PlacesCache,
		m.PlacesAPIDuration,
		m.PlacesEnabled,
		m.AuditPublished,
		m.AuditErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PredictionsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "predictions_total"}, []string{"grade", "source"}),
		PredictionErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "prediction_errors_total"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cleankitchen", Name: "prediction_duration_seconds"}),
		DemoLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "demographic_lookups_total"}, []string{"tier"}),
		DatasetRestaurants: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cleankitchen", Name: "dataset_restaurants"}),
		LookupTableZips:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cleankitchen", Name: "lookup_table_zips"}),
		PlacesRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "places_requests_total"}, []string{"method", "outcome"}),
		PlacesCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "places_cache_total"}, []string{"method", "result"}),
		PlacesAPIDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "cleankitchen", Name: "places_api_duration_seconds"}, []string{"method"}),
		PlacesEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cleankitchen", Name: "places_enabled"}),
		AuditPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "audit_published_total"}),
		AuditErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cleankitchen", Name: "audit_errors_total"}),
	}
}
