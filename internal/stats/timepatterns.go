package stats

import (
	"sort"
	"strings"

	"delivery-risk/internal/records"
)

// DeliveryHour extracts the hour from an "HH:MM" string. Unparsable or
// out-of-range hours fall back to 0.
func DeliveryHour(s string) int {
	head, _, _ := strings.Cut(s, ":")
	h := records.ParseInt(head)
	if h < 0 || h > 23 {
		return 0
	}
	return h
}

// AnalyzeTimePatterns buckets orders by delivery hour. Only hours that
// occur in the data are returned, in ascending order.
func AnalyzeTimePatterns(orders []records.Order) []TimePattern {
	buckets := make(map[int]*TimePattern)
	for _, o := range orders {
		h := DeliveryHour(o.DeliveryHour)
		b, ok := buckets[h]
		if !ok {
			b = &TimePattern{Hour: h}
			buckets[h] = b
		}
		b.TotalOrders++
		b.MissingCount = addCount(b.MissingCount, o.ItemsMissing)
	}

	results := make([]TimePattern, 0, len(buckets))
	for _, b := range buckets {
		b.MissingRate = ratio(float64(b.MissingCount), float64(b.TotalOrders))
		results = append(results, *b)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Hour < results[j].Hour })
	return results
}
