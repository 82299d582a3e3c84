// Command predict grades a single restaurant record from the command line,
// without starting the HTTP server. It loads the same dataset extracts and
// model artifact the server uses, assembles the feature vector, and prints
// the prediction as JSON.
//
// The record is read as JSON from -record, or from stdin when -record is
// "-". Missing fields degrade to the usual sentinel values, so even an
// empty record ({}) produces a grade.
//
// Usage:
//
//	go run ./cmd/predict \
//	  -inspections data/inspections.csv \
//	  -neighborhoods data/neighborhoods.csv \
//	  -model models/grade_model.json \
//	  -record '{"boro":"Brooklyn","zipcode":"11234","score":12}'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cleankitchen-nyc/grading-service/internal/dataset"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/model"
)

func main() {
	inspections := flag.String("inspections", "data/inspections.csv", "path to the inspection extract CSV")
	neighborhoods := flag.String("neighborhoods", "data/neighborhoods.csv", "path to the neighborhood demographic CSV")
	modelPath := flag.String("model", "models/grade_model.json", "path to the model artifact JSON")
	record := flag.String("record", "", `restaurant record as JSON, or "-" to read stdin`)
	showVector := flag.Bool("vector", false, "also print the assembled feature vector")
	flag.Parse()

	if *record == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*inspections, *neighborhoods, *modelPath, *record, *showVector); code != 0 {
		os.Exit(code)
	}
}

func run(inspectionsPath, neighborhoodsPath, modelPath, record string, showVector bool) int {
	raw, err := readRecord(record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read record: %v\n", err)
		return 1
	}

	restaurants, err := dataset.LoadInspections(inspectionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load inspections: %v\n", err)
		return 1
	}
	neighborhoodRows, err := dataset.LoadNeighborhoods(neighborhoodsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load neighborhoods: %v\n", err)
		return 1
	}
	restaurants = dataset.MergeNeighborhoods(restaurants, neighborhoodRows)

	table, err := dataset.BuildLookupTable(restaurants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build lookup table: %v\n", err)
		return 1
	}

	classifier, err := model.Load(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load model: %v\n", err)
		return 1
	}

	vector := domain.BuildFeatureVector(raw, table)
	result, err := classifier.Classify(vector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: classify: %v\n", err)
		return 1
	}

	out := map[string]any{
		"grade":         result.Grade,
		"probabilities": result.Probabilities,
	}
	if showVector {
		out["features_used"] = vector
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: encode output: %v\n", err)
		return 1
	}
	return 0
}

func readRecord(arg string) (domain.RawRecord, error) {
	data := []byte(arg)
	if arg == "-" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
	}
	var raw domain.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return raw, nil
}
