package dataset

import (
	"sort"
	"strings"
)

// Filter narrows the browse query. Empty fields match everything; Cuisines
// is an any-of match like the dashboard's multi-select.
type Filter struct {
	Borough  string
	Zipcode  string
	Cuisines []string
	Grade    string
	Limit    int
}

// Options holds the distinct values offered by the sidebar filters.
type Options struct {
	Boroughs []string `json:"boroughs"`
	Zipcodes []string `json:"zipcodes"`
	Cuisines []string `json:"cuisines"`
}

// Store holds the loaded restaurant rows for the browse/filter API.
// Read-only after construction; safe for concurrent use.
type Store struct {
	rows    []Restaurant
	options Options
}

// NewStore indexes the rows and precomputes the distinct filter options.
func NewStore(rows []Restaurant) *Store {
	boroughs := distinct(rows, func(r Restaurant) string { return r.Borough })
	zipcodes := distinct(rows, func(r Restaurant) string { return r.Zipcode })
	cuisines := distinct(rows, func(r Restaurant) string { return r.Cuisine })

	return &Store{
		rows: rows,
		options: Options{
			Boroughs: boroughs,
			Zipcodes: zipcodes,
			Cuisines: cuisines,
		},
	}
}

// Query returns rows matching the filter, in load order, capped at
// filter.Limit when positive.
func (s *Store) Query(f Filter) []Restaurant {
	cuisines := make(map[string]bool, len(f.Cuisines))
	for _, c := range f.Cuisines {
		cuisines[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var out []Restaurant
	for _, r := range s.rows {
		if f.Borough != "" && !strings.EqualFold(r.Borough, f.Borough) {
			continue
		}
		if f.Zipcode != "" && r.Zipcode != f.Zipcode {
			continue
		}
		if len(cuisines) > 0 && !cuisines[r.Cuisine] {
			continue
		}
		if f.Grade != "" && !strings.EqualFold(r.Grade, f.Grade) {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

// Options returns the precomputed distinct filter values.
func (s *Store) Options() Options {
	return s.options
}

// Len returns the number of rows loaded.
func (s *Store) Len() int {
	return len(s.rows)
}

func distinct(rows []Restaurant, key func(Restaurant) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
