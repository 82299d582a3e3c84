package dataset

import (
	"sort"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
)

// MergeNeighborhoods left-joins restaurant rows against the neighborhood
// demographic extract on borough + normalized neighborhood. Rows that do not
// match any neighborhood keep their existing demographics if present, else
// receive the mean over matched rows of their borough (mean, not median:
// this mirrors the offline merge that produced the historical extract).
// Restaurants in a borough with no matched rows at all stay without
// demographics; the resolver's fallback tiers cover them at prediction time.
func MergeNeighborhoods(restaurants []Restaurant, neighborhoods []NeighborhoodRow) []Restaurant {
	type key struct{ borough, neighborhood string }

	demoByKey := make(map[key]domain.Demographics, len(neighborhoods))
	for _, n := range neighborhoods {
		demoByKey[key{n.Borough, n.Neighborhood}] = n.Demo
	}

	merged := make([]Restaurant, len(restaurants))
	matchedByBorough := make(map[string][]domain.Demographics)

	for i, r := range restaurants {
		if demo, ok := demoByKey[key{r.Borough, r.Neighborhood}]; ok {
			r.Demo = demo
			r.HasDemo = true
			matchedByBorough[r.Borough] = append(matchedByBorough[r.Borough], demo)
		}
		merged[i] = r
	}

	boroughMeans := make(map[string]domain.Demographics, len(matchedByBorough))
	for borough, demos := range matchedByBorough {
		boroughMeans[borough] = meanDemographics(demos)
	}

	for i := range merged {
		if merged[i].HasDemo {
			continue
		}
		if mean, ok := boroughMeans[merged[i].Borough]; ok {
			merged[i].Demo = mean
			merged[i].HasDemo = true
		}
	}

	return merged
}

// BuildLookupTable aggregates restaurant rows that carry demographics into
// ZIP-level records (median per ZIP, borough taken from the first row seen)
// and constructs the three-tier lookup table. Rows with the unknown-ZIP
// sentinel or no demographics are skipped; an input yielding zero usable
// rows surfaces domain.ErrNoDemographicData.
func BuildLookupTable(restaurants []Restaurant) (*domain.LookupTable, error) {
	type group struct {
		borough string
		demos   []domain.Demographics
	}

	groups := make(map[string]*group)
	var order []string

	for _, r := range restaurants {
		if !r.HasDemo || r.Zipcode == "" || r.Zipcode == domain.UnknownZip {
			continue
		}
		g, ok := groups[r.Zipcode]
		if !ok {
			g = &group{borough: r.Borough}
			groups[r.Zipcode] = g
			order = append(order, r.Zipcode)
		}
		g.demos = append(g.demos, r.Demo)
	}

	records := make([]domain.DemographicRecord, 0, len(groups))
	for _, zip := range order {
		g := groups[zip]
		records = append(records, domain.DemographicRecord{
			Zipcode:      zip,
			Borough:      g.borough,
			Demographics: medianDemographics(g.demos),
		})
	}

	return domain.NewLookupTable(records)
}

func medianDemographics(demos []domain.Demographics) domain.Demographics {
	pick := func(f func(domain.Demographics) float64) float64 {
		values := make([]float64, len(demos))
		for i, d := range demos {
			values[i] = f(d)
		}
		sort.Float64s(values)
		mid := len(values) / 2
		if len(values)%2 == 1 {
			return values[mid]
		}
		return (values[mid-1] + values[mid]) / 2
	}

	return domain.Demographics{
		Population:     pick(func(d domain.Demographics) float64 { return d.Population }),
		NYCPovertyRate: pick(func(d domain.Demographics) float64 { return d.NYCPovertyRate }),
		MedianIncome:   pick(func(d domain.Demographics) float64 { return d.MedianIncome }),
		PercWhite:      pick(func(d domain.Demographics) float64 { return d.PercWhite }),
		PercBlack:      pick(func(d domain.Demographics) float64 { return d.PercBlack }),
		PercAsian:      pick(func(d domain.Demographics) float64 { return d.PercAsian }),
		PercOther:      pick(func(d domain.Demographics) float64 { return d.PercOther }),
		PercHispanic:   pick(func(d domain.Demographics) float64 { return d.PercHispanic }),
		IndexScore:     pick(func(d domain.Demographics) float64 { return d.IndexScore }),
	}
}

func meanDemographics(demos []domain.Demographics) domain.Demographics {
	var sum domain.Demographics
	for _, d := range demos {
		sum.Population += d.Population
		sum.NYCPovertyRate += d.NYCPovertyRate
		sum.MedianIncome += d.MedianIncome
		sum.PercWhite += d.PercWhite
		sum.PercBlack += d.PercBlack
		sum.PercAsian += d.PercAsian
		sum.PercOther += d.PercOther
		sum.PercHispanic += d.PercHispanic
		sum.IndexScore += d.IndexScore
	}

	n := float64(len(demos))
	if n == 0 {
		return domain.Demographics{}
	}
	return domain.Demographics{
		Population:     sum.Population / n,
		NYCPovertyRate: sum.NYCPovertyRate / n,
		MedianIncome:   sum.MedianIncome / n,
		PercWhite:      sum.PercWhite / n,
		PercBlack:      sum.PercBlack / n,
		PercAsian:      sum.PercAsian / n,
		PercOther:      sum.PercOther / n,
		PercHispanic:   sum.PercHispanic / n,
		IndexScore:     sum.IndexScore / n,
	}
}
