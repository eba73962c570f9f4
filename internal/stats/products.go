package stats

import (
	"math"
	"sort"

	"delivery-risk/internal/records"
)

type productTally struct {
	count     int
	valueLost float64
}

// AnalyzeProducts counts missing-item incidents per product and splits each
// incident's order value evenly across the products it names. Every slot is
// counted, so a product listed twice in one record counts twice. Results are
// sorted by missing count, highest first.
//
// MissingRate divides by the total number of orders in the dataset.
func AnalyzeProducts(orders []records.Order, products []records.Product, missing []records.MissingItem) []ProductAnalysis {
	amounts := make(map[string]float64, len(orders))
	for _, o := range orders {
		if _, seen := amounts[o.OrderID]; !seen {
			amounts[o.OrderID] = orderValue(o)
		}
	}

	tallies := make(map[string]*productTally)
	for _, m := range missing {
		ids := m.ProductIDs()
		if len(ids) == 0 {
			continue
		}
		share := amounts[m.OrderID] / float64(len(ids))
		for _, id := range ids {
			t, ok := tallies[id]
			if !ok {
				t = &productTally{}
				tallies[id] = t
			}
			t.count++
			t.valueLost += share
		}
	}

	results := make([]ProductAnalysis, 0, len(products))
	for _, p := range products {
		t := tallies[p.ProductID]
		if t == nil {
			t = &productTally{}
		}
		results = append(results, ProductAnalysis{
			ProductID:      p.ProductID,
			ProductName:    p.ProductName,
			Category:       p.Category,
			MissingCount:   t.count,
			TotalValueLost: t.valueLost,
			MissingRate:    ratio(float64(t.count), float64(len(orders))),
			Price:          math.Max(0, ParseAmount(p.Price)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MissingCount > results[j].MissingCount
	})
	return results
}
