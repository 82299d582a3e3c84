package domain

import (
	"context"
	"strings"
)

// Place is a restaurant discovered through the places-search provider.
type Place struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Types   []string `json:"types,omitempty"`
}

// AddressParts holds the location fields recovered by reverse geocoding.
// Either field may be empty when the geocoder had no answer.
type AddressParts struct {
	Zipcode string
	Borough string
}

// PlaceSearcher finds restaurants through an external places/geocoding
// provider.
type PlaceSearcher interface {
	// TextSearch finds places matching a free-text query.
	TextSearch(ctx context.Context, query string) ([]Place, error)

	// Details fetches full details for one place.
	Details(ctx context.Context, placeID string) (Place, error)

	// ReverseGeocode recovers ZIP and borough from coordinates.
	ReverseGeocode(ctx context.Context, lat, lng float64) (AddressParts, error)
}

// genericPlaceTypes are provider categories that say nothing about cuisine.
var genericPlaceTypes = map[string]bool{
	"point_of_interest": true,
	"establishment":     true,
}

// NormalizePlace converts a place-details result plus its reverse-geocoded
// address parts into the raw record shape the feature pipeline consumes.
// Missing ZIP or borough stay absent from the map; the extractor's defaults
// cover them. The record carries no inspection history, so score and
// critical flag are left unset as well.
func NormalizePlace(place Place, addr AddressParts) RawRecord {
	raw := RawRecord{
		"name":      place.Name,
		"address":   place.Address,
		"latitude":  place.Lat,
		"longitude": place.Lng,
		"cuisine":   guessCuisine(place.Types),
	}
	if addr.Borough != "" {
		raw["borough"] = addr.Borough
	}
	if addr.Zipcode != "" {
		raw["zipcode"] = addr.Zipcode
	}
	return raw
}

// guessCuisine picks the first place type that is neither a generic marker
// nor a restaurant/food catch-all, with underscores turned into spaces:
// "mexican_restaurant" types arrive as ["mexican_restaurant","restaurant",
// "food",...] and yield "mexican". Falls back to the unknown-cuisine
// sentinel.
func guessCuisine(types []string) string {
	for _, t := range types {
		if strings.Contains(t, "restaurant") && t != "restaurant" {
			return strings.ReplaceAll(strings.TrimSuffix(t, "_restaurant"), "_", " ")
		}
	}
	for _, t := range types {
		if strings.Contains(t, "restaurant") || strings.Contains(t, "food") {
			continue
		}
		if genericPlaceTypes[t] {
			continue
		}
		return strings.ReplaceAll(t, "_", " ")
	}
	return UnknownCuisine
}
