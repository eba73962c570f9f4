package stats

import (
	"math"
	"slices"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the population standard deviation (divisor n).
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

// CalculateMedianContinuous finds the median value in a slice of floats.
func CalculateMedianContinuous(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}

// addCount adds non-negative item counts, saturating at math.MaxInt so a
// corrupt row cannot wrap a total negative.
func addCount(a, b int) int {
	if a > 0 && b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// ratio divides with a floor of 1 on the denominator so empty groups
// report 0 instead of NaN.
func ratio(num, den float64) float64 {
	return num / math.Max(1, den)
}

func euclideanDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		bv := 0.0
		if i < len(b) {
			bv = b[i]
		}
		d := a[i] - bv
		sum += d * d
	}
	return math.Sqrt(sum)
}
