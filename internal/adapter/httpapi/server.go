// Package httpapi exposes the grading service over HTTP: health and metrics
// endpoints, the restaurant browse API, and the prediction endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleankitchen-nyc/grading-service/internal/dataset"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// Predictor serves grade predictions for raw restaurant records.
type Predictor interface {
	PredictFromRaw(ctx context.Context, raw domain.RawRecord, source string) (domain.Prediction, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the service's HTTP surface.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	store      *dataset.Store
	places     domain.PlaceSearcher
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes. Pass a nil
// places searcher when the Places integration is disabled; its endpoints
// then answer 503.
func NewServer(addr string, predictor Predictor, store *dataset.Store, places domain.PlaceSearcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor: predictor,
		store:     store,
		places:    places,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/restaurants", s.handleRestaurants)
	mux.HandleFunc("GET /api/filters", s.handleFilters)
	mux.HandleFunc("POST /api/predictions", s.handlePredict)
	mux.HandleFunc("GET /api/places/search", s.handlePlaceSearch)
	mux.HandleFunc("POST /api/places/{id}/prediction", s.handlePlacePredict)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.predictor.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
