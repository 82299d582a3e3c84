// Package domain models NYC restaurant inspection records and the feature
// pipeline that turns them into classifier input.
//
// # Data Sources
//
// Historical records come from the NYC Department of Health and Mental
// Hygiene (DOHMH) restaurant inspection extract, merged offline with a
// ZIP/neighborhood socioeconomic extract (poverty rate, median income,
// population shares, financial-health index score, population). Live records
// come from Google Places: a place-details response plus a reverse-geocode
// response supplying ZIP code and borough.
//
// The two sources produce structurally different records. Dataset rows carry
// inspection history (score, violation code, critical flag); Places records
// carry none of it. Every field of a raw record may be missing, null, or of
// an unexpected type, so no raw field is trusted.
//
// # Field Conventions
//
// Boroughs:
//
//	Five canonical values: Manhattan, Bronx, Brooklyn, Queens, Staten Island.
//	Source data uses county names ("Kings", "Richmond", "New York") and
//	assorted spellings; [NormalizeBorough] folds these into canonical form.
//	Missing or non-string input yields "Unknown".
//
// ZIP codes:
//
//	Stored as strings to preserve leading zeros. "00000" is the sentinel for
//	an undetermined ZIP.
//
// Inspection score:
//
//	Lower is better; an A grade cuts off at 13 points. Records with no
//	inspection history (Places results) default to 10.0, a mid-range neutral
//	value inside the A band.
//
// Critical flag:
//
//	Upstream encodes it as 0/1, as the string "Critical"/"Not Critical", or
//	omits it. Normalized to a 0/1 integer.
//
// Violation codes:
//
//	DOHMH codes like "10F" or "04L". "00X" is the sentinel for no recorded
//	violation.
//
// Cuisine:
//
//	Free text, lower-cased and trimmed. "other" is the sentinel when the
//	cuisine cannot be determined.
//
// # Demographic Fallback Tiers
//
// Socioeconomic enrichment resolves through three tiers in strict order:
// exact ZIP row, borough-level median aggregate, then the global (all-NYC)
// median aggregate. The classifier was trained with the pop_missing and
// demo_missing flags as first-class features, so resolution below the ZIP
// tier sets both flags to 1 rather than imputing silently. See
// [LookupTable.Resolve].
//
// # Output Contract
//
// [BuildFeatureVector] is total: for any input map, including nil, it returns
// a [FeatureVector] with every field present and correctly typed. The
// classifier cannot accept partial input, so every extraction branch ends in
// a default.
package domain
