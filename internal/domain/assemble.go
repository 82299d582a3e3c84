package domain

// BuildFeatureVector combines field extraction and demographic resolution
// into the canonical classifier input. It is total and pure: for any raw
// record, including nil or an empty map, every output field is present and
// typed, so the classifier never receives a null.
//
// Both data sources funnel through here. Dataset rows and normalized Places
// records differ structurally, but one classifier schema serves both because
// this is the single assembly point.
func BuildFeatureVector(raw RawRecord, table *LookupTable) FeatureVector {
	base := ExtractFields(raw)
	res := table.Resolve(base.Zipcode, base.Boro)

	return FeatureVector{
		Score:          base.Score,
		NYCPovertyRate: res.NYCPovertyRate,
		MedianIncome:   res.MedianIncome,
		PercWhite:      res.PercWhite,
		PercBlack:      res.PercBlack,
		PercAsian:      res.PercAsian,
		PercOther:      res.PercOther,
		PercHispanic:   res.PercHispanic,
		IndexScore:     res.IndexScore,
		Population:     res.Population,
		PopMissing:     res.PopMissing,
		DemoMissing:    res.DemoMissing,
		Boro:           base.Boro,
		Zipcode:        base.Zipcode,
		Cuisine:        base.Cuisine,
		ViolationCode:  base.ViolationCode,
		CriticalFlag:   base.CriticalFlag,
	}
}
