package stats

import (
	"math/rand"
	"slices"
	"sort"

	"delivery-risk/internal/records"
)

// Missing-rate boundaries for the risk labels, checked from the top down.
const (
	HighRiskThreshold     = 0.05
	ModerateRiskThreshold = 0.02
	NoviceThreshold       = 0.005
)

var clusterDescriptions = map[int]string{
	ClusterModerateRisk: "Moderate Risk - Standard Performance",
	ClusterTopPerformer: "Top Performers - Low Risk",
	ClusterNovice:       "Novice Drivers - Training Needed",
	ClusterHighRisk:     "High Risk - Immediate Action Required",
}

// ClusterDescription returns the human label for a risk cluster.
func ClusterDescription(cluster int) string {
	if d, ok := clusterDescriptions[cluster]; ok {
		return d
	}
	return "Unknown Cluster"
}

// AssignCluster maps a missing rate to its risk label.
func AssignCluster(rate float64) int {
	switch {
	case rate > HighRiskThreshold:
		return ClusterHighRisk
	case rate > ModerateRiskThreshold:
		return ClusterModerateRisk
	case rate > NoviceThreshold:
		return ClusterNovice
	default:
		return ClusterTopPerformer
	}
}

// DriverRisk is the output of AnalyzeDrivers.
type DriverRisk struct {
	Drivers  []DriverAnalysis
	Clusters []ClusterResult
}

type driverTally struct {
	trips     int
	missing   int
	delivered int
	valueLost float64
}

// AnalyzeDrivers aggregates orders per driver and labels every known driver
// with a risk cluster and an outlier flag. Drivers without orders report
// zeros. Output follows the order of drivers.
//
// K-means runs over [missing_rate, normalised total_missing] and is returned
// as diagnostics only; the Cluster field always comes from AssignCluster.
func AnalyzeDrivers(orders []records.Order, drivers []records.Driver, rng *rand.Rand) DriverRisk {
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}

	tallies := make(map[string]*driverTally)
	for _, o := range orders {
		t, ok := tallies[o.DriverID]
		if !ok {
			t = &driverTally{}
			tallies[o.DriverID] = t
		}
		t.trips++
		t.missing = addCount(t.missing, o.ItemsMissing)
		t.delivered = addCount(t.delivered, o.ItemsDelivered)
		t.valueLost += WeightedLoss(o)
	}

	analyses := make([]DriverAnalysis, len(drivers))
	maxMissing := 0
	for i, d := range drivers {
		t := tallies[d.DriverID]
		if t == nil {
			t = &driverTally{}
		}
		analyses[i] = DriverAnalysis{
			DriverID:       d.DriverID,
			DriverName:     d.DriverName,
			TotalTrips:     t.trips,
			TotalMissing:   t.missing,
			TotalDelivered: t.delivered,
			MissingRate:    ratio(float64(t.missing), float64(t.missing)+float64(t.delivered)),
			TotalValueLost: t.valueLost,
		}
		maxMissing = max(maxMissing, t.missing)
	}

	rates := make([]float64, len(analyses))
	features := make([][]float64, len(analyses))
	for i, a := range analyses {
		rates[i] = a.MissingRate
		features[i] = []float64{a.MissingRate, ratio(float64(a.TotalMissing), float64(maxMissing))}
	}

	km := KMeans(features, ClusterCount, DefaultKMeansIterations, rng)
	outliers := DetectOutliers(rates, DefaultOutlierThreshold)

	for i := range analyses {
		analyses[i].Cluster = AssignCluster(analyses[i].MissingRate)
		analyses[i].IsOutlier = outliers[i]
	}

	return DriverRisk{
		Drivers:  analyses,
		Clusters: describeKMeans(km, analyses),
	}
}

func describeKMeans(km KMeansResult, analyses []DriverAnalysis) []ClusterResult {
	results := make([]ClusterResult, len(km.Centroids))
	for c, center := range km.Centroids {
		var ids []string
		var rates []float64
		for i, a := range km.Assignments {
			if a == c {
				ids = append(ids, analyses[i].DriverID)
				rates = append(rates, analyses[i].MissingRate)
			}
		}
		results[c] = ClusterResult{
			ClusterID:      c,
			Center:         center,
			Drivers:        ids,
			AvgMissingRate: Mean(rates),
			Description:    ClusterDescription(c),
		}
	}
	return results
}

// SummarizeClusters counts drivers under each of the four risk labels.
// The counts always add up to len(drivers).
func SummarizeClusters(drivers []DriverAnalysis) []ClusterSummary {
	rates := make([][]float64, ClusterCount)
	summaries := make([]ClusterSummary, ClusterCount)
	for c := range summaries {
		summaries[c] = ClusterSummary{ClusterID: c, Description: ClusterDescription(c)}
	}

	for _, d := range drivers {
		c := d.Cluster
		if c < 0 || c >= ClusterCount {
			c = AssignCluster(d.MissingRate)
		}
		summaries[c].DriverCount++
		if d.IsOutlier {
			summaries[c].OutlierCount++
		}
		rates[c] = append(rates[c], d.MissingRate)
	}

	for c := range summaries {
		summaries[c].AvgMissingRate = Mean(rates[c])
		summaries[c].MedianMissingRate = CalculateMedianContinuous(rates[c])
	}
	return summaries
}

// RankDrivers returns a copy of drivers ordered by missing rate, highest
// first. Outliers win ties, then value lost.
func RankDrivers(drivers []DriverAnalysis) []DriverAnalysis {
	ranked := slices.Clone(drivers)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MissingRate != b.MissingRate {
			return a.MissingRate > b.MissingRate
		}
		if a.IsOutlier != b.IsOutlier {
			return a.IsOutlier
		}
		return a.TotalValueLost > b.TotalValueLost
	})
	return ranked
}
