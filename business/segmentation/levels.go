package segmentation

import (
	"math"
	"sort"
)

// clusterValues sums each centroid's standardized coordinates. A larger sum
// approximates a more engaged, more valuable user segment and is used only
// for ranking clusters against each other.
func clusterValues(centroids [][]float64) []float64 {
	values := make([]float64, len(centroids))
	for c, centroid := range centroids {
		sum := 0.0
		for _, v := range centroid {
			sum += v
		}
		values[c] = sum
	}
	return values
}

// spreadLevels returns k evenly spaced integer levels spanning 1..5:
// k=2 -> {1,5}, k=3 -> {1,3,5}, k=5 -> {1,2,3,4,5}.
func spreadLevels(k int) []int {
	levels := make([]int, k)
	if k == 1 {
		levels[0] = 1
		return levels
	}
	for i := range levels {
		levels[i] = int(math.Round(1 + 4*float64(i)/float64(k-1)))
	}
	return levels
}

// mapClusterLevels assigns spread levels to clusters in ascending value
// order: lowest value gets the lowest level. Equal values keep raw cluster
// id order (stable sort), which is arbitrary but deterministic.
func mapClusterLevels(values []float64) map[int]int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	levels := spreadLevels(len(values))

	byCluster := make(map[int]int, len(values))
	for rank, clusterID := range order {
		byCluster[clusterID] = levels[rank]
	}
	return byCluster
}
