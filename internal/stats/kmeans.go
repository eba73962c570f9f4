package stats

import (
	"math"
	"math/rand"
	"slices"
)

const (
	// DefaultKMeansIterations caps the number of assignment/update rounds.
	DefaultKMeansIterations = 100
	// DefaultSeed makes centroid initialisation reproducible between runs.
	DefaultSeed int64 = 42
)

// KMeansResult holds the final centroids and point assignments.
type KMeansResult struct {
	Centroids   [][]float64
	Assignments []int
	Iterations  int
}

// KMeans partitions points into k clusters using Lloyd's algorithm with
// Euclidean distance. Initial centroids are drawn uniformly inside the
// bounding box of the data. It stops after maxIterations rounds or as soon
// as an assignment round changes nothing. Clusters that lose all their
// points keep their previous centroid.
func KMeans(points [][]float64, k, maxIterations int, rng *rand.Rand) KMeansResult {
	if len(points) == 0 || k <= 0 {
		return KMeansResult{}
	}
	features := len(points[0])

	mins := make([]float64, features)
	maxs := make([]float64, features)
	for j := 0; j < features; j++ {
		mins[j], maxs[j] = math.Inf(1), math.Inf(-1)
		for _, p := range points {
			mins[j] = math.Min(mins[j], p[j])
			maxs[j] = math.Max(maxs[j], p[j])
		}
	}

	centroids := make([][]float64, k)
	for i := range centroids {
		c := make([]float64, features)
		for j := range c {
			c[j] = mins[j] + rng.Float64()*(maxs[j]-mins[j])
		}
		centroids[i] = c
	}

	assignments := make([]int, len(points))
	iter := 0
	for ; iter < maxIterations; iter++ {
		next := make([]int, len(points))
		for i, p := range points {
			next[i] = nearest(p, centroids)
		}

		if slices.Equal(assignments, next) {
			break
		}
		assignments = next

		for c := 0; c < k; c++ {
			sum := make([]float64, features)
			n := 0
			for i, p := range points {
				if assignments[i] != c {
					continue
				}
				n++
				for j, v := range p {
					sum[j] += v
				}
			}
			if n == 0 {
				continue
			}
			for j := range sum {
				sum[j] /= float64(n)
			}
			centroids[c] = sum
		}
	}

	return KMeansResult{
		Centroids:   centroids,
		Assignments: assignments,
		Iterations:  iter,
	}
}

func nearest(p []float64, centroids [][]float64) int {
	best := 0
	minDist := math.Inf(1)
	for j, c := range centroids {
		if d := euclideanDistance(p, c); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}
