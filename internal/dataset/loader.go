// Package dataset loads the flat-file extracts the dashboard is built on:
// the DOHMH restaurant inspection extract and the ZIP/neighborhood
// demographic extract. Both are read once at startup; everything derived
// from them (the browse store, the demographic lookup table) is immutable
// afterwards.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// Restaurant is one row of the inspection extract, with any demographic
// columns the offline merge already attached. Score is nil for rows with no
// recorded inspection.
type Restaurant struct {
	Name          string   `json:"name"`
	Borough       string   `json:"borough"`
	Zipcode       string   `json:"zipcode"`
	Neighborhood  string   `json:"neighborhood,omitempty"`
	Cuisine       string   `json:"cuisine_description"`
	Grade         string   `json:"grade,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	CriticalFlag  int      `json:"critical_flag"`
	ViolationCode string   `json:"violation_code,omitempty"`
	Latitude      float64  `json:"latitude,omitempty"`
	Longitude     float64  `json:"longitude,omitempty"`

	Demo    domain.Demographics `json:"-"`
	HasDemo bool                `json:"-"`
}

// Raw converts the row into the loosely-typed record shape the feature
// pipeline consumes, keyed the way the dataset names its columns.
func (r Restaurant) Raw() domain.RawRecord {
	raw := domain.RawRecord{
		"name":                r.Name,
		"borough":             r.Borough,
		"zipcode":             r.Zipcode,
		"cuisine_description": r.Cuisine,
		"critical_flag":       r.CriticalFlag,
	}
	if r.Score != nil {
		raw["score"] = *r.Score
	}
	if r.ViolationCode != "" {
		raw["violation_code"] = r.ViolationCode
	}
	return raw
}

// NeighborhoodRow is one row of the demographic extract, keyed by borough
// plus normalized neighborhood name.
type NeighborhoodRow struct {
	Borough      string
	Neighborhood string
	Demo         domain.Demographics
}

// LoadInspections reads the inspection extract CSV. Column order is not
// assumed; fields are located by header name. Rows missing a borough and
// ZIP entirely are kept (the feature pipeline handles them), but rows with
// the wrong column count are rejected by the csv reader.
func LoadInspections(path string) ([]Restaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inspection data: %w", err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read inspection data: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(rows))
	for _, row := range rows {
		r := Restaurant{
			Name:          row.get("dba"),
			Borough:       domain.NormalizeBorough(row.get("borough")),
			Zipcode:       strings.TrimSpace(row.get("zipcode")),
			Neighborhood:  normalizeNeighborhood(row.get("neighborhood")),
			Cuisine:       strings.ToLower(strings.TrimSpace(row.get("cuisine_description"))),
			Grade:         strings.TrimSpace(row.get("grade")),
			ViolationCode: strings.TrimSpace(row.get("violation_code")),
			Latitude:      row.getFloat("latitude"),
			Longitude:     row.getFloat("longitude"),
		}
		if s, ok := row.lookupFloat("score"); ok {
			r.Score = &s
		}
		if strings.EqualFold(row.get("critical_flag"), "critical") || row.get("critical_flag") == "1" {
			r.CriticalFlag = 1
		}
		if demo, ok := row.demographics(); ok {
			r.Demo = demo
			r.HasDemo = true
		}
		restaurants = append(restaurants, r)
	}

	return restaurants, nil
}

// LoadNeighborhoods reads the demographic extract CSV. The neighborhood key
// column is "neighborhood_simple", matching the upstream cleaning step; its
// absence is a hard error because the borough+neighborhood join depends on it.
func LoadNeighborhoods(path string) ([]NeighborhoodRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open neighborhood data: %w", err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read neighborhood data: %w", err)
	}
	if len(rows) > 0 {
		if _, ok := rows[0].cols["neighborhood_simple"]; !ok {
			return nil, fmt.Errorf("neighborhood data: missing neighborhood_simple column")
		}
	}

	result := make([]NeighborhoodRow, 0, len(rows))
	for _, row := range rows {
		demo, _ := row.demographics()
		result = append(result, NeighborhoodRow{
			Borough:      domain.NormalizeBorough(row.get("borough")),
			Neighborhood: normalizeNeighborhood(row.get("neighborhood_simple")),
			Demo:         demo,
		})
	}

	return result, nil
}

// csvRow pairs one record with its header index.
type csvRow struct {
	cols   map[string]int
	fields []string
}

func (r csvRow) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r csvRow) getFloat(name string) float64 {
	f, _ := r.lookupFloat(name)
	return f
}

func (r csvRow) lookupFloat(name string) (float64, bool) {
	s := strings.TrimSpace(r.get(name))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// demographics extracts the nine demographic columns, reporting ok only if
// every one of them parses. Partial rows count as missing so the merge step
// imputes them as a unit.
func (r csvRow) demographics() (domain.Demographics, bool) {
	var d domain.Demographics
	ok := true
	read := func(name string) float64 {
		f, present := r.lookupFloat(name)
		if !present {
			ok = false
		}
		return f
	}

	d.Population = read("population")
	d.NYCPovertyRate = read("nyc_poverty_rate")
	d.MedianIncome = read("median_income")
	d.PercWhite = read("perc_white")
	d.PercBlack = read("perc_black")
	d.PercAsian = read("perc_asian")
	d.PercOther = read("perc_other")
	d.PercHispanic = read("perc_hispanic")
	d.IndexScore = read("indexscore")

	return d, ok
}

func readCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows []csvRow
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		rows = append(rows, csvRow{cols: cols, fields: fields})
	}

	return rows, nil
}

// normalizeNeighborhood lower-cases and strips everything except letters and
// spaces, matching the cleaning applied when the extracts were produced.
func normalizeNeighborhood(s string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || c == ' ' {
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
