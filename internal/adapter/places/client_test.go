package places

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cleankitchen-nyc/grading-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     testKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_TextSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/place/textsearch/json")
		assert.Equal(t, "ramen east village", r.URL.Query().Get("query"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		resp := searchResponse{
			Status: "OK",
			Results: []placeResult{
				{
					PlaceID:          "ChIJabc123",
					Name:             "Ramen Misoya",
					FormattedAddress: "129 2nd Ave, New York, NY 10003",
					Types:            []string{"restaurant", "food"},
				},
			},
		}
		resp.Results[0].Geometry.Location.Lat = 40.7291
		resp.Results[0].Geometry.Location.Lng = -73.9873
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.TextSearch(context.Background(), "ramen east village")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "ChIJabc123", results[0].PlaceID)
	assert.Equal(t, "Ramen Misoya", results[0].Name)
	assert.Equal(t, "129 2nd Ave, New York, NY 10003", results[0].Address)
	assert.Equal(t, 40.7291, results[0].Lat)
	assert.Equal(t, -73.9873, results[0].Lng)
}

func TestClient_Details_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/place/details/json")
		assert.Equal(t, "ChIJabc123", r.URL.Query().Get("place_id"))

		resp := detailsResponse{
			Status: "OK",
			Result: placeResult{
				PlaceID:          "ChIJabc123",
				Name:             "Ramen Misoya",
				FormattedAddress: "129 2nd Ave, New York, NY 10003",
				Types:            []string{"japanese_restaurant", "restaurant"},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	place, err := c.Details(context.Background(), "ChIJabc123")
	require.NoError(t, err)

	assert.Equal(t, "Ramen Misoya", place.Name)
	assert.Equal(t, []string{"japanese_restaurant", "restaurant"}, place.Types)
}

func TestClient_ReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/geocode/json")
		assert.Equal(t, "40.729100,-73.987300", r.URL.Query().Get("latlng"))

		resp := geocodeResponse{
			Status: "OK",
			Results: []geocodeResult{
				{
					AddressComponents: []addressComponent{
						{LongName: "129", Types: []string{"street_number"}},
						{LongName: "Manhattan", Types: []string{"sublocality_level_1", "sublocality", "political"}},
						{LongName: "10003", Types: []string{"postal_code"}},
					},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	parts, err := c.ReverseGeocode(context.Background(), 40.7291, -73.9873)
	require.NoError(t, err)

	assert.Equal(t, "10003", parts.Zipcode)
	assert.Equal(t, "Manhattan", parts.Borough)
}

func TestClient_ReverseGeocode_NoComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(geocodeResponse{Status: "ZERO_RESULTS"}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	parts, err := c.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, parts.Zipcode)
	assert.Empty(t, parts.Borough)
}

func TestClient_TextSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error_message":"The provided API key is invalid."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.TextSearch(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_Details_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		apiKey:     testKey,
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.Details(context.Background(), "ChIJabc123")
	require.Error(t, err)
}
