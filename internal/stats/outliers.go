package stats

import "math"

// DefaultOutlierThreshold is the z-score beyond which a value is flagged.
const DefaultOutlierThreshold = 3.0

// DetectOutliers flags values whose distance from the mean exceeds
// threshold population standard deviations. A zero (or non-finite) spread
// flags nothing.
func DetectOutliers(values []float64, threshold float64) []bool {
	flags := make([]bool, len(values))
	if len(values) == 0 {
		return flags
	}

	mean := Mean(values)
	sd := PopulationStdDev(values)
	if sd == 0 || math.IsNaN(sd) || math.IsInf(sd, 0) {
		return flags
	}

	for i, v := range values {
		flags[i] = math.Abs(v-mean) > threshold*sd
	}
	return flags
}
