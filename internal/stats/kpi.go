package stats

import "delivery-risk/internal/records"

// CalculateKPIs reduces the order list and driver analyses to headline
// metrics. A driver that is both high risk and an outlier counts once.
func CalculateKPIs(orders []records.Order, drivers []DriverAnalysis) KPIMetrics {
	var missing, items, impact float64
	for _, o := range orders {
		missing += float64(o.ItemsMissing)
		items += float64(o.ItemsMissing) + float64(o.ItemsDelivered)
		impact += WeightedLoss(o)
	}

	highRisk := 0
	for _, d := range drivers {
		if d.Cluster == ClusterHighRisk || d.IsOutlier {
			highRisk++
		}
	}

	return KPIMetrics{
		OverallMissingRate:   ratio(missing, items),
		TotalFinancialImpact: impact,
		HighRiskDrivers:      highRisk,
		CriticalRegions:      CriticalRegionsCount,
	}
}
