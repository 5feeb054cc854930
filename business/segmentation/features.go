package segmentation

import (
	"math"
	"sort"

	"smartCanteen/domain"
)

// featureMatrix is one merchant's user-by-action count matrix. The dimension
// set is the distinct action kinds observed for that merchant alone, so
// different merchants can have different dimensionality and feature spaces
// are never mixed across merchants.
type featureMatrix struct {
	userIDs []uint
	dims    []string
	rows    [][]float64
}

// buildFeatureMatrix pivots (user, action, count) cells into a dense matrix.
// Users and dimensions are sorted so identical input always yields the same
// row and column order. Users with zero events are simply absent from the
// input and therefore from the matrix.
func buildFeatureMatrix(counts []domain.ActionCount) featureMatrix {
	userSet := make(map[uint]struct{})
	dimSet := make(map[string]struct{})
	for _, c := range counts {
		userSet[c.UserID] = struct{}{}
		dimSet[c.ActionType] = struct{}{}
	}

	userIDs := make([]uint, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	dims := make([]string, 0, len(dimSet))
	for d := range dimSet {
		dims = append(dims, d)
	}
	sort.Strings(dims)

	rowIndex := make(map[uint]int, len(userIDs))
	for i, id := range userIDs {
		rowIndex[id] = i
	}
	colIndex := make(map[string]int, len(dims))
	for j, d := range dims {
		colIndex[d] = j
	}

	rows := make([][]float64, len(userIDs))
	for i := range rows {
		rows[i] = make([]float64, len(dims))
	}
	for _, c := range counts {
		rows[rowIndex[c.UserID]][colIndex[c.ActionType]] += float64(c.Count)
	}

	return featureMatrix{
		userIDs: userIDs,
		dims:    dims,
		rows:    rows,
	}
}

// standardize scales each column to zero mean and unit variance in place.
// A zero-variance column becomes all zeros instead of dividing by zero; the
// dimension then simply stops contributing to distances.
func standardize(rows [][]float64) {
	if len(rows) == 0 {
		return
	}

	n := float64(len(rows))
	d := len(rows[0])

	for j := 0; j < d; j++ {
		mean := 0.0
		for i := range rows {
			mean += rows[i][j]
		}
		mean /= n

		variance := 0.0
		for i := range rows {
			diff := rows[i][j] - mean
			variance += diff * diff
		}
		variance /= n

		if variance == 0 {
			for i := range rows {
				rows[i][j] = 0
			}
			continue
		}

		std := math.Sqrt(variance)
		for i := range rows {
			rows[i][j] = (rows[i][j] - mean) / std
		}
	}
}
