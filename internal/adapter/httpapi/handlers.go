package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cleankitchen-nyc/grading-service/internal/dataset"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// maxBrowseLimit caps one browse response; the full extract runs to
// hundreds of thousands of rows.
const maxBrowseLimit = 1000

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 100
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxBrowseLimit {
		limit = maxBrowseLimit
	}

	rows := s.store.Query(dataset.Filter{
		Borough:  q.Get("borough"),
		Zipcode:  q.Get("zipcode"),
		Cuisines: q["cuisine"],
		Grade:    q.Get("grade"),
		Limit:    limit,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"restaurants": rows,
		"count":       len(rows),
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Options())
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawRecord
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	prediction, err := s.predictor.PredictFromRaw(r.Context(), raw, "dataset")
	if err != nil {
		s.logger.Error("prediction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handlePlaceSearch(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		writeError(w, http.StatusServiceUnavailable, "places integration disabled")
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	results, err := s.places.TextSearch(r.Context(), query)
	if err != nil {
		s.logger.Error("place search failed", "error", err, "query", query)
		writeError(w, http.StatusBadGateway, "place search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"places": results,
		"count":  len(results),
	})
}

// handlePlacePredict grades a live place. Lookup failures after the details
// call degrade rather than fail: the record is assembled with whatever
// address parts could be recovered and sentinels fill the rest.
func (s *Server) handlePlacePredict(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		writeError(w, http.StatusServiceUnavailable, "places integration disabled")
		return
	}

	placeID := r.PathValue("id")
	if placeID == "" {
		writeError(w, http.StatusBadRequest, "place id is required")
		return
	}

	place, err := s.places.Details(r.Context(), placeID)
	if err != nil {
		s.logger.Error("place details failed", "error", err, "place_id", placeID)
		writeError(w, http.StatusBadGateway, "place lookup failed")
		return
	}
	if place.PlaceID == "" {
		writeError(w, http.StatusNotFound, "place not found")
		return
	}

	addr, err := s.places.ReverseGeocode(r.Context(), place.Lat, place.Lng)
	if err != nil {
		s.logger.Warn("reverse geocode failed, using sentinels",
			"error", err, "place_id", placeID)
		addr = domain.AddressParts{}
	}

	raw := domain.NormalizePlace(place, addr)
	prediction, err := s.predictor.PredictFromRaw(r.Context(), raw, "places")
	if err != nil {
		s.logger.Error("prediction failed", "error", err, "place_id", placeID)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"place":      place,
		"prediction": prediction,
	})
}
