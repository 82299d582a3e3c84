package domain

import "strings"

// Boroughs lists the five canonical NYC borough names.
var Boroughs = []string{"Manhattan", "Bronx", "Brooklyn", "Queens", "Staten Island"}

// boroughSynonyms maps lower-cased source spellings, including county names,
// to canonical borough names.
var boroughSynonyms = map[string]string{
	"manhattan":       "Manhattan",
	"new york":        "Manhattan",
	"new york county": "Manhattan",
	"ny":              "Manhattan",
	"bronx":           "Bronx",
	"the bronx":       "Bronx",
	"bronx county":    "Bronx",
	"brooklyn":        "Brooklyn",
	"kings":           "Brooklyn",
	"kings county":    "Brooklyn",
	"queens":          "Queens",
	"queens county":   "Queens",
	"staten island":   "Staten Island",
	"statenisland":    "Staten Island",
	"richmond":        "Staten Island",
	"richmond county": "Staten Island",
}

// NormalizeBorough canonicalizes a free-text borough or locality string.
// Recognized synonyms map to one of the five canonical names; empty input
// maps to UnknownBorough. Unrecognized non-empty input is title-cased and
// passed through so plausible spellings we have not anticipated survive
// instead of collapsing to Unknown; such values will miss the borough tier
// of the demographic lookup and fall through to the global aggregate.
func NormalizeBorough(boro string) string {
	b := strings.TrimSpace(boro)
	if b == "" {
		return UnknownBorough
	}
	if canonical, ok := boroughSynonyms[strings.ToLower(b)]; ok {
		return canonical
	}
	return titleCase(b)
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest, e.g. "sTATEN isLAND" -> "Staten Island".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
