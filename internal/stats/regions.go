package stats

import (
	"sort"

	"delivery-risk/internal/records"
)

type regionTally struct {
	orders    int
	missing   int
	valueLost float64
}

// AnalyzeRegions aggregates orders per region, sorted by missing rate with
// the worst region first. Unlike drivers, the rate is missing items per
// order rather than per item handled.
func AnalyzeRegions(orders []records.Order) []RegionAnalysis {
	tallies := make(map[string]*regionTally)
	for _, o := range orders {
		t, ok := tallies[o.Region]
		if !ok {
			t = &regionTally{}
			tallies[o.Region] = t
		}
		t.orders++
		t.missing = addCount(t.missing, o.ItemsMissing)
		t.valueLost += WeightedLoss(o)
	}

	results := make([]RegionAnalysis, 0, len(tallies))
	for region, t := range tallies {
		results = append(results, RegionAnalysis{
			Region:         region,
			TotalOrders:    t.orders,
			TotalMissing:   t.missing,
			MissingRate:    ratio(float64(t.missing), float64(t.orders)),
			TotalValueLost: t.valueLost,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MissingRate != results[j].MissingRate {
			return results[i].MissingRate > results[j].MissingRate
		}
		return results[i].Region < results[j].Region
	})
	return results
}
