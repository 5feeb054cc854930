package segmentation

import (
	"math"
	"math/rand"
)

const (
	clusterSeed    = 42
	kmeansRestarts = 10
	kmeansMaxIter  = 100
)

// kMeans partitions rows into exactly k clusters. It restarts Lloyd's
// algorithm kmeansRestarts times from k-means++ seeds drawn from rng and
// keeps the run with the lowest inertia. With a fixed-seed rng the whole
// procedure is deterministic for identical input.
func kMeans(rows [][]float64, k int, rng *rand.Rand) ([]int, [][]float64) {
	bestInertia := math.Inf(1)
	var bestAssign []int
	var bestCentroids [][]float64

	for r := 0; r < kmeansRestarts; r++ {
		assign, centroids, inertia := lloyd(rows, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestAssign = assign
			bestCentroids = centroids
		}
	}

	return bestAssign, bestCentroids
}

func lloyd(rows [][]float64, k int, rng *rand.Rand) ([]int, [][]float64, float64) {
	centroids := seedCentroids(rows, k, rng)
	assign := make([]int, len(rows))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, row := range rows {
			c := nearestCentroid(row, centroids)
			if c != assign[i] {
				assign[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		recomputeCentroids(rows, assign, centroids)
		fixEmptyClusters(rows, assign, centroids)
	}

	inertia := 0.0
	for i, row := range rows {
		inertia += sqDist(row, centroids[assign[i]])
	}

	return assign, centroids, inertia
}

// seedCentroids picks k initial centroids with k-means++ weighting: each
// next seed is drawn with probability proportional to its squared distance
// from the nearest seed chosen so far.
func seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneRow(rows[rng.Intn(len(rows))]))

	dists := make([]float64, len(rows))
	for len(centroids) < k {
		total := 0.0
		for i, row := range rows {
			d := math.Inf(1)
			for _, c := range centroids {
				if sd := sqDist(row, c); sd < d {
					d = sd
				}
			}
			dists[i] = d
			total += d
		}

		if total == 0 {
			// all remaining points coincide with a seed; fall back to uniform
			centroids = append(centroids, cloneRow(rows[rng.Intn(len(rows))]))
			continue
		}

		target := rng.Float64() * total
		acc := 0.0
		pick := len(rows) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, cloneRow(rows[pick]))
	}

	return centroids
}

// nearestCentroid breaks distance ties toward the lower cluster id.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := sqDist(row, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := sqDist(row, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func recomputeCentroids(rows [][]float64, assign []int, centroids [][]float64) {
	d := len(rows[0])
	counts := make([]int, len(centroids))
	for c := range centroids {
		for j := 0; j < d; j++ {
			centroids[c][j] = 0
		}
	}

	for i, row := range rows {
		c := assign[i]
		counts[c]++
		for j, v := range row {
			centroids[c][j] += v
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue // left for fixEmptyClusters
		}
		for j := 0; j < d; j++ {
			centroids[c][j] /= float64(counts[c])
		}
	}
}

// fixEmptyClusters reseeds any empty cluster with the point farthest from
// its current centroid, so the algorithm always returns exactly k clusters
// when k <= number of distinct points.
func fixEmptyClusters(rows [][]float64, assign []int, centroids [][]float64) {
	counts := make([]int, len(centroids))
	for _, c := range assign {
		counts[c]++
	}

	for c := range centroids {
		if counts[c] > 0 {
			continue
		}

		farthest := -1
		farthestDist := -1.0
		for i, row := range rows {
			if counts[assign[i]] <= 1 {
				continue
			}
			if d := sqDist(row, centroids[assign[i]]); d > farthestDist {
				farthest = i
				farthestDist = d
			}
		}
		if farthest < 0 {
			continue
		}

		counts[assign[farthest]]--
		assign[farthest] = c
		counts[c] = 1
		copy(centroids[c], rows[farthest])
	}
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
