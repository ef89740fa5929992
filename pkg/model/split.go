package model

import (
	"fmt"
	"math/rand"
)

// Split holds train/test row indices from a shuffled partition.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit partitions n rows into train and test sets by ratio,
// shuffled with the given seed so runs are reproducible.
func TrainTestSplit(n int, testRatio float64, seed int64) (*Split, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 rows, got %d", n)
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	nTest := int(float64(n) * testRatio)
	if nTest == 0 {
		nTest = 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return &Split{
		Test:  perm[:nTest],
		Train: perm[nTest:],
	}, nil
}

// SelectRows returns the rows of x at the given indices.
func SelectRows(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

// SelectFloats returns the values of y at the given indices.
func SelectFloats(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

// SelectInts returns the values of y at the given indices.
func SelectInts(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
