// Command genmock generates deterministic mock fixtures for local
// development: an inspection extract CSV, a neighborhood demographic CSV,
// and a model artifact JSON. It uses the actual dataset and model packages
// to guarantee the generated files load cleanly through the same code paths
// the server uses.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -rows 500
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cleankitchen-nyc/grading-service/internal/dataset"
	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/model"
)

// Fixed seed so regenerated fixtures are byte-identical.
const seed = 20260312

type zipProfile struct {
	zip          string
	borough      string
	neighborhood string
	demo         domain.Demographics
}

var zipProfiles = []zipProfile{
	{"10003", "Manhattan", "east village", domain.Demographics{Population: 56024, NYCPovertyRate: 0.11, MedianIncome: 112000, PercWhite: 0.68, PercBlack: 0.05, PercAsian: 0.15, PercOther: 0.04, PercHispanic: 0.08, IndexScore: 82}},
	{"10029", "Manhattan", "east harlem", domain.Demographics{Population: 76003, NYCPovertyRate: 0.27, MedianIncome: 38000, PercWhite: 0.12, PercBlack: 0.31, PercAsian: 0.06, PercOther: 0.06, PercHispanic: 0.45, IndexScore: 41}},
	{"11234", "Brooklyn", "flatlands", domain.Demographics{Population: 88513, NYCPovertyRate: 0.13, MedianIncome: 78000, PercWhite: 0.40, PercBlack: 0.42, PercAsian: 0.06, PercOther: 0.04, PercHispanic: 0.08, IndexScore: 64}},
	{"11220", "Brooklyn", "sunset park", domain.Demographics{Population: 99598, NYCPovertyRate: 0.24, MedianIncome: 52000, PercWhite: 0.21, PercBlack: 0.02, PercAsian: 0.41, PercOther: 0.05, PercHispanic: 0.31, IndexScore: 48}},
	{"11101", "Queens", "long island city", domain.Demographics{Population: 39200, NYCPovertyRate: 0.16, MedianIncome: 95000, PercWhite: 0.44, PercBlack: 0.10, PercAsian: 0.26, PercOther: 0.05, PercHispanic: 0.15, IndexScore: 71}},
	{"11372", "Queens", "jackson heights", domain.Demographics{Population: 66730, NYCPovertyRate: 0.19, MedianIncome: 61000, PercWhite: 0.15, PercBlack: 0.03, PercAsian: 0.28, PercOther: 0.06, PercHispanic: 0.48, IndexScore: 53}},
	{"10455", "Bronx", "mott haven", domain.Demographics{Population: 41682, NYCPovertyRate: 0.35, MedianIncome: 29000, PercWhite: 0.02, PercBlack: 0.27, PercAsian: 0.01, PercOther: 0.05, PercHispanic: 0.65, IndexScore: 28}},
	{"10301", "Staten Island", "st george", domain.Demographics{Population: 40563, NYCPovertyRate: 0.18, MedianIncome: 64000, PercWhite: 0.45, PercBlack: 0.21, PercAsian: 0.09, PercOther: 0.06, PercHispanic: 0.19, IndexScore: 57}},
}

var cuisines = []string{"american", "chinese", "pizza", "mexican", "japanese", "caribbean", "italian", "bakery", "thai", "indian"}

var violationCodes = []string{"02B", "04L", "06D", "08A", "10F", ""}

var namePrefixes = []string{"Golden", "Lucky", "Royal", "Corner", "Little", "Grand", "Sunny", "Harbor", "Village", "Park"}
var nameSuffixes = []string{"Dragon", "Kitchen", "Deli", "Bistro", "Grill", "Garden", "House", "Cafe", "Diner", "Palace"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for generated fixtures")
	rows := flag.Int("rows", 500, "number of inspection rows to generate")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))

	inspectionsPath := filepath.Join(*outDir, "inspections.csv")
	if err := writeInspections(inspectionsPath, rng, *rows); err != nil {
		return fmt.Errorf("write inspections: %w", err)
	}
	log.Printf("wrote %d inspection rows: %s", *rows, inspectionsPath)

	neighborhoodsPath := filepath.Join(*outDir, "neighborhoods.csv")
	if err := writeNeighborhoods(neighborhoodsPath); err != nil {
		return fmt.Errorf("write neighborhoods: %w", err)
	}
	log.Printf("wrote %d neighborhood rows: %s", len(zipProfiles), neighborhoodsPath)

	modelPath := filepath.Join(*outDir, "grade_model.json")
	if err := writeModel(modelPath); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	log.Printf("wrote model artifact: %s", modelPath)

	return verify(inspectionsPath, neighborhoodsPath, modelPath)
}

func writeInspections(path string, rng *rand.Rand, rows int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"dba", "borough", "zipcode", "neighborhood", "cuisine_description",
		"grade", "score", "critical_flag", "violation_code",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		zp := zipProfiles[rng.Intn(len(zipProfiles))]
		name := namePrefixes[rng.Intn(len(namePrefixes))] + " " + nameSuffixes[rng.Intn(len(nameSuffixes))]

		score := rng.Intn(45)
		grade := gradeForScore(score)

		critical := "Not Critical"
		if rng.Float64() < 0.4 {
			critical = "Critical"
		}

		// A few rows with no inspection history at all.
		scoreStr := strconv.Itoa(score)
		violation := violationCodes[rng.Intn(len(violationCodes))]
		if rng.Float64() < 0.03 {
			scoreStr = ""
			grade = ""
			violation = ""
			critical = "Not Critical"
		}

		row := []string{
			name, zp.borough, zp.zip, zp.neighborhood,
			cuisines[rng.Intn(len(cuisines))],
			grade, scoreStr, critical, violation,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// gradeForScore applies the DOHMH scoring bands: 0-13 is A, 14-27 is B,
// 28+ is C.
func gradeForScore(score int) string {
	switch {
	case score <= 13:
		return "A"
	case score <= 27:
		return "B"
	default:
		return "C"
	}
}

func writeNeighborhoods(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"borough", "neighborhood_simple", "population", "nyc_poverty_rate",
		"median_income", "perc_white", "perc_black", "perc_asian",
		"perc_other", "perc_hispanic", "indexscore",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, zp := range zipProfiles {
		d := zp.demo
		row := []string{
			zp.borough, zp.neighborhood,
			formatFloat(d.Population), formatFloat(d.NYCPovertyRate),
			formatFloat(d.MedianIncome), formatFloat(d.PercWhite),
			formatFloat(d.PercBlack), formatFloat(d.PercAsian),
			formatFloat(d.PercOther), formatFloat(d.PercHispanic),
			formatFloat(d.IndexScore),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeModel emits a small hand-tuned artifact: grade probability tracks the
// inspection score, with minor categorical adjustments. Good enough for
// development and demos; production deployments ship a real training export.
func writeModel(path string) error {
	classes := []string{"A", "B", "C"}

	boroughAdj := map[string]map[string]float64{
		"A": {"Manhattan": 0.1, "Staten Island": 0.05},
		"B": {},
		"C": {"Bronx": 0.1},
	}

	artifact := model.Artifact{
		Version:        "mock-v1",
		Classes:        classes,
		FeatureColumns: domain.FeatureColumns,
		Scaling: map[string]model.Scaling{
			"score":            {Mean: 18.0, Std: 11.0},
			"median_income":    {Mean: 66000, Std: 26000},
			"nyc_poverty_rate": {Mean: 0.20, Std: 0.08},
			"population":       {Mean: 63500, Std: 22000},
			"indexscore":       {Mean: 55.5, Std: 17.0},
		},
		Weights: map[string]model.ClassWeights{
			"A": {
				Intercept: 1.2,
				Numeric: map[string]float64{
					"score":         -1.8,
					"critical_flag": -0.4,
					"median_income": 0.3,
					"demo_missing":  -0.1,
				},
				Categorical: map[string]map[string]float64{
					"boro":           boroughAdj["A"],
					"violation_code": {"00X": 0.3},
				},
			},
			"B": {
				Intercept: 0.4,
				Numeric: map[string]float64{
					"score": 0.2,
				},
				Categorical: map[string]map[string]float64{
					"boro": boroughAdj["B"],
				},
			},
			"C": {
				Intercept: -1.6,
				Numeric: map[string]float64{
					"score":            1.6,
					"critical_flag":    0.5,
					"nyc_poverty_rate": 0.2,
				},
				Categorical: map[string]map[string]float64{
					"boro":           boroughAdj["C"],
					"violation_code": {"04L": 0.3, "06D": 0.3},
				},
			},
		},
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// verify loads everything back through the real code paths and runs one
// prediction, failing loudly if any generated fixture is unusable.
func verify(inspectionsPath, neighborhoodsPath, modelPath string) error {
	restaurants, err := dataset.LoadInspections(inspectionsPath)
	if err != nil {
		return fmt.Errorf("verify inspections: %w", err)
	}
	neighborhoods, err := dataset.LoadNeighborhoods(neighborhoodsPath)
	if err != nil {
		return fmt.Errorf("verify neighborhoods: %w", err)
	}
	restaurants = dataset.MergeNeighborhoods(restaurants, neighborhoods)

	table, err := dataset.BuildLookupTable(restaurants)
	if err != nil {
		return fmt.Errorf("verify lookup table: %w", err)
	}

	classifier, err := model.Load(modelPath)
	if err != nil {
		return fmt.Errorf("verify model: %w", err)
	}

	vector := domain.BuildFeatureVector(restaurants[0].Raw(), table)
	result, err := classifier.Classify(vector)
	if err != nil {
		return fmt.Errorf("verify prediction: %w", err)
	}

	log.Printf("verified: %d restaurants, %d zip aggregates, sample grade %s",
		len(restaurants), table.Len(), result.Grade)
	return nil
}
