package domain

import (
	"errors"
	"sort"
)

// Resolution tier names, surfaced in logs and metrics.
const (
	TierZip     = "zip"
	TierBorough = "borough"
	TierGlobal  = "global"
)

// ErrNoDemographicData is returned by NewLookupTable when no rows are
// available. Without at least a global aggregate the resolver cannot honor
// its always-returns contract, so this aborts initialization.
var ErrNoDemographicData = errors.New("no demographic rows to build lookup table")

// Demographics holds the nine socioeconomic/population values attached to a
// feature vector.
type Demographics struct {
	Population     float64
	NYCPovertyRate float64
	MedianIncome   float64
	PercWhite      float64
	PercBlack      float64
	PercAsian      float64
	PercOther      float64
	PercHispanic   float64
	IndexScore     float64
}

// DemographicRecord is one ZIP-level row of the lookup table.
type DemographicRecord struct {
	Zipcode string
	Borough string
	Demographics
}

// Resolution is the resolver's answer: complete demographics plus the two
// missingness flags the classifier was trained with, and the tier that
// supplied the values.
type Resolution struct {
	Demographics
	PopMissing  int
	DemoMissing int
	Tier        string
}

// LookupTable is the immutable demographic lookup built once at startup:
// one row per ZIP, median aggregates per borough, and a global median
// aggregate over all ZIP rows. Safe for concurrent reads; never mutated
// after construction.
type LookupTable struct {
	zips     map[string]DemographicRecord
	boroughs map[string]Demographics
	global   Demographics
}

// NewLookupTable builds the three fallback tiers from ZIP-level rows.
// Duplicate ZIPs keep the last row. Returns ErrNoDemographicData for an
// empty input.
func NewLookupTable(records []DemographicRecord) (*LookupTable, error) {
	if len(records) == 0 {
		return nil, ErrNoDemographicData
	}

	zips := make(map[string]DemographicRecord, len(records))
	byBorough := make(map[string][]Demographics)
	all := make([]Demographics, 0, len(records))

	for _, rec := range records {
		zips[rec.Zipcode] = rec
		all = append(all, rec.Demographics)
		if rec.Borough != "" && rec.Borough != UnknownBorough {
			byBorough[rec.Borough] = append(byBorough[rec.Borough], rec.Demographics)
		}
	}

	boroughs := make(map[string]Demographics, len(byBorough))
	for boro, rows := range byBorough {
		boroughs[boro] = aggregate(rows)
	}

	return &LookupTable{
		zips:     zips,
		boroughs: boroughs,
		global:   aggregate(all),
	}, nil
}

// Resolve returns demographics for a ZIP/borough pair through the three-tier
// fallback chain. ZIP hits report both flags as 0; borough and global tier
// results report both as 1 so the model sees the reduced precision. Never
// fails.
func (t *LookupTable) Resolve(zipcode, borough string) Resolution {
	if rec, ok := t.zips[zipcode]; ok {
		return Resolution{Demographics: rec.Demographics, Tier: TierZip}
	}
	if demo, ok := t.boroughs[borough]; ok {
		return Resolution{Demographics: demo, PopMissing: 1, DemoMissing: 1, Tier: TierBorough}
	}
	return Resolution{Demographics: t.global, PopMissing: 1, DemoMissing: 1, Tier: TierGlobal}
}

// HasZip reports whether the table holds a ZIP-level row for the given code.
func (t *LookupTable) HasZip(zipcode string) bool {
	_, ok := t.zips[zipcode]
	return ok
}

// Borough returns the aggregate for a canonical borough name, if present.
func (t *LookupTable) Borough(name string) (Demographics, bool) {
	demo, ok := t.boroughs[name]
	return demo, ok
}

// Global returns the all-NYC aggregate.
func (t *LookupTable) Global() Demographics {
	return t.global
}

// Len returns the number of ZIP-level rows.
func (t *LookupTable) Len() int {
	return len(t.zips)
}

// aggregate computes the per-field median over a set of rows. Median rather
// than mean keeps single outlier ZIPs (airports, parks) from skewing the
// borough fallback values.
func aggregate(rows []Demographics) Demographics {
	pick := func(f func(Demographics) float64) float64 {
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = f(r)
		}
		return median(values)
	}

	return Demographics{
		Population:     pick(func(d Demographics) float64 { return d.Population }),
		NYCPovertyRate: pick(func(d Demographics) float64 { return d.NYCPovertyRate }),
		MedianIncome:   pick(func(d Demographics) float64 { return d.MedianIncome }),
		PercWhite:      pick(func(d Demographics) float64 { return d.PercWhite }),
		PercBlack:      pick(func(d Demographics) float64 { return d.PercBlack }),
		PercAsian:      pick(func(d Demographics) float64 { return d.PercAsian }),
		PercOther:      pick(func(d Demographics) float64 { return d.PercOther }),
		PercHispanic:   pick(func(d Demographics) float64 { return d.PercHispanic }),
		IndexScore:     pick(func(d Demographics) float64 { return d.IndexScore }),
	}
}

// median returns the middle value of the inputs, averaging the two middle
// values for even-length input. Returns 0 for empty input.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
