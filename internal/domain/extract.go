package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key aliases accepted per semantic field, in priority order. Dataset rows
// and Places records name the same fields differently; the first key present
// with a usable value wins.
var (
	scoreKeys     = []string{"score", "inspection_score"}
	boroughKeys   = []string{"boro", "borough", "Boro", "Borough"}
	zipKeys       = []string{"zipcode", "zip", "postal_code", "postalCode"}
	cuisineKeys   = []string{"cuisine_description", "cuisine", "type"}
	criticalKeys  = []string{"critical_flag", "critical_flag_bin", "critical"}
	violationKeys = []string{"violation_code", "violation"}
)

// BaseFields holds the six semantic fields extracted from a raw record,
// after type coercion and defaulting. Boro is already canonicalized through
// NormalizeBorough.
type BaseFields struct {
	Score         float64
	Boro          string
	Zipcode       string
	Cuisine       string
	ViolationCode string
	CriticalFlag  int
}

// ExtractFields pulls the semantic fields out of an arbitrarily-shaped raw
// record. It never fails: every branch terminates in a default, so the
// result is always complete. Pure; the input map is not modified.
func ExtractFields(raw RawRecord) BaseFields {
	return BaseFields{
		Score:         extractScore(raw),
		Boro:          NormalizeBorough(firstString(raw, boroughKeys)),
		Zipcode:       extractZip(raw),
		Cuisine:       extractCuisine(raw),
		ViolationCode: extractViolation(raw),
		CriticalFlag:  extractCriticalFlag(raw),
	}
}

func extractScore(raw RawRecord) float64 {
	for _, key := range scoreKeys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		f, ok := asFloat(v)
		if !ok || math.IsNaN(f) {
			continue
		}
		return f
	}
	return DefaultScore
}

func extractZip(raw RawRecord) string {
	z := firstString(raw, zipKeys)
	if z == "" {
		return UnknownZip
	}
	return z
}

func extractCuisine(raw RawRecord) string {
	c := strings.ToLower(firstString(raw, cuisineKeys))
	if c == "" {
		return UnknownCuisine
	}
	return c
}

func extractViolation(raw RawRecord) string {
	v := firstString(raw, violationKeys)
	if v == "" {
		return UnknownViolation
	}
	return v
}

func extractCriticalFlag(raw RawRecord) int {
	for _, key := range criticalKeys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if strings.EqualFold(strings.TrimSpace(val), "critical") {
				return 1
			}
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				return n
			}
			return 0
		case bool:
			if val {
				return 1
			}
			return 0
		default:
			if f, ok := asFloat(v); ok && !math.IsNaN(f) {
				return int(f)
			}
			return 0
		}
	}
	return 0
}

// firstString returns the first non-empty string coercion among the aliased
// keys, trimmed. Values that cannot be rendered as a string count as absent.
func firstString(raw RawRecord, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		s := asString(v)
		if s == "" {
			continue
		}
		return s
	}
	return ""
}

// asFloat coerces numeric-ish values (numbers, json.Number, numeric strings)
// to float64.
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asString renders scalar values as a trimmed string. Integral floats drop
// the decimal part so JSON-decoded ZIP codes like 11234.0 round-trip as
// "11234". Non-scalar values render as empty.
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return strings.TrimSpace(val.String())
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return asString(float64(val))
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Describe renders the extracted fields for logs.
func (b BaseFields) Describe() string {
	return fmt.Sprintf("boro=%s zip=%s cuisine=%s score=%g critical=%d violation=%s",
		b.Boro, b.Zipcode, b.Cuisine, b.Score, b.CriticalFlag, b.ViolationCode)
}
