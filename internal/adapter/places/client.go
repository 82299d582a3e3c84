// Package places implements domain.PlaceSearcher against the Google Places
// and Geocoding web APIs.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/observability"
)

// Client calls the Google Maps web service APIs. Every request carries the
// configured timeout; the upstream dashboard blocked indefinitely on these
// calls, which this adapter deliberately does not.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Google Places client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://maps.googleapis.com/maps/api",
		metrics: metrics,
		logger:  logger,
	}
}

// TextSearch finds places matching a free-text query, e.g.
// "ramen east village".
func (c *Client) TextSearch(ctx context.Context, query string) ([]domain.Place, error) {
	params := url.Values{
		"query": {query},
		"key":   {c.apiKey},
	}

	var resp searchResponse
	if err := c.doRequest(ctx, "search", "/place/textsearch/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, r.toPlace())
	}
	return places, nil
}

// Details fetches full details for one place.
func (c *Client) Details(ctx context.Context, placeID string) (domain.Place, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {"place_id,name,formatted_address,geometry,types"},
		"key":      {c.apiKey},
	}

	var resp detailsResponse
	if err := c.doRequest(ctx, "details", "/place/details/json?"+params.Encode(), &resp); err != nil {
		return domain.Place{}, err
	}
	return resp.Result.toPlace(), nil
}

// ReverseGeocode recovers ZIP code and borough from coordinates. ZIP comes
// from the postal_code address component, borough from sublocality_level_1.
// An empty result is not an error; callers degrade to sentinel values.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (domain.AddressParts, error) {
	params := url.Values{
		"latlng": {fmt.Sprintf("%.6f,%.6f", lat, lng)},
		"key":    {c.apiKey},
	}

	var resp geocodeResponse
	if err := c.doRequest(ctx, "geocode", "/geocode/json?"+params.Encode(), &resp); err != nil {
		return domain.AddressParts{}, err
	}

	var parts domain.AddressParts
	for _, result := range resp.Results {
		for _, comp := range result.AddressComponents {
			for _, t := range comp.Types {
				switch t {
				case "postal_code":
					if parts.Zipcode == "" {
						parts.Zipcode = comp.LongName
					}
				case "sublocality_level_1":
					if parts.Borough == "" {
						parts.Borough = comp.LongName
					}
				}
			}
		}
	}
	return parts, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.PlacesRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	c.metrics.PlacesAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.PlacesRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("places API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.PlacesRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("decode response: %w", err)
	}

	c.metrics.PlacesRequests.WithLabelValues(method, "success").Inc()
	return nil
}

// Google API response types.

type searchResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type detailsResponse struct {
	Result placeResult `json:"result"`
	Status string      `json:"status"`
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

type geocodeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
}

type addressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (r placeResult) toPlace() domain.Place {
	return domain.Place{
		PlaceID: r.PlaceID,
		Name:    r.Name,
		Address: r.FormattedAddress,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
		Types:   r.Types,
	}
}
