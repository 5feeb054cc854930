package segmentation

import (
	"reflect"
	"testing"
)

func TestSpreadLevels(t *testing.T) {
	cases := []struct {
		k    int
		want []int
	}{
		{1, []int{1}},
		{2, []int{1, 5}},
		{3, []int{1, 3, 5}},
		{4, []int{1, 2, 4, 5}},
		{5, []int{1, 2, 3, 4, 5}},
	}

	for _, tc := range cases {
		got := spreadLevels(tc.k)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("spreadLevels(%d) = %v, want %v", tc.k, got, tc.want)
		}
	}
}

func TestMapClusterLevelsAscendingValue(t *testing.T) {
	// cluster 1 has the lowest value, cluster 0 the highest
	values := []float64{2.0, -1.0, 0.5}

	got := mapClusterLevels(values)

	want := map[int]int{1: 1, 2: 3, 0: 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mapClusterLevels(%v) = %v, want %v", values, got, want)
	}
}

func TestMapClusterLevelsTiesKeepClusterOrder(t *testing.T) {
	values := []float64{1.0, 1.0}

	got := mapClusterLevels(values)

	// equal values keep raw cluster id order
	if got[0] != 1 || got[1] != 5 {
		t.Errorf("expected tie resolved by cluster id, got %v", got)
	}
}

func TestMapClusterLevelsRange(t *testing.T) {
	values := []float64{0.3, -2.1, 4.4, 0.0, 1.2}

	got := mapClusterLevels(values)

	for cluster, level := range got {
		if level < 1 || level > 5 {
			t.Errorf("cluster %d mapped outside 1..5: %d", cluster, level)
		}
	}
	if len(got) != len(values) {
		t.Errorf("expected %d mappings, got %d", len(values), len(got))
	}
}
