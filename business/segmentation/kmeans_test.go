package segmentation

import (
	"math/rand"
	"testing"
)

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	rows := [][]float64{
		{0.1, 0.0},
		{0.0, 0.2},
		{-0.1, 0.1},
		{10.0, 10.1},
		{10.2, 9.9},
		{9.8, 10.0},
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	assign, centroids := kMeans(rows, 2, rng)

	if len(centroids) != 2 {
		t.Fatalf("expected 2 centroids, got %d", len(centroids))
	}

	// the first three points must share one cluster, the last three the other
	low := assign[0]
	for i := 1; i < 3; i++ {
		if assign[i] != low {
			t.Fatalf("low blob split across clusters: %v", assign)
		}
	}
	high := assign[3]
	if high == low {
		t.Fatalf("blobs merged into one cluster: %v", assign)
	}
	for i := 4; i < 6; i++ {
		if assign[i] != high {
			t.Fatalf("high blob split across clusters: %v", assign)
		}
	}
}

func TestKMeansDeterministicForFixedSeed(t *testing.T) {
	rows := [][]float64{
		{1, 2}, {2, 1}, {8, 9}, {9, 8}, {5, 5}, {4, 6}, {0, 0},
	}

	run := func() ([]int, [][]float64) {
		input := make([][]float64, len(rows))
		for i, row := range rows {
			input[i] = cloneRow(row)
		}
		rng := rand.New(rand.NewSource(clusterSeed))
		return kMeans(input, 3, rng)
	}

	assign1, centroids1 := run()
	assign2, centroids2 := run()

	for i := range assign1 {
		if assign1[i] != assign2[i] {
			t.Fatalf("assignments differ between runs: %v vs %v", assign1, assign2)
		}
	}
	for c := range centroids1 {
		for j := range centroids1[c] {
			if centroids1[c][j] != centroids2[c][j] {
				t.Fatalf("centroids differ between runs: %v vs %v", centroids1, centroids2)
			}
		}
	}
}

func TestKMeansOneClusterPerPoint(t *testing.T) {
	rows := [][]float64{
		{0, 0},
		{5, 5},
		{10, 0},
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	assign, _ := kMeans(rows, 3, rng)

	seen := make(map[int]bool)
	for _, c := range assign {
		if seen[c] {
			t.Fatalf("expected each point in its own cluster, got %v", assign)
		}
		seen[c] = true
	}
}

func TestNearestCentroidTieBreaksLow(t *testing.T) {
	centroids := [][]float64{
		{-1, 0},
		{1, 0},
	}

	// equidistant point must go to cluster 0
	if c := nearestCentroid([]float64{0, 0}, centroids); c != 0 {
		t.Errorf("expected tie to break toward cluster 0, got %d", c)
	}
}
