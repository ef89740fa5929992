package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// QuantileBins assigns each value to one of k quantile-based classes
// (0..k-1). Used for the bivariate choropleth color classes.
func QuantileBins(xs []float64, k int) ([]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 bins, got %d", k)
	}
	if len(xs) < k {
		return nil, fmt.Errorf("need at least %d values, got %d", k, len(xs))
	}

	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)

	cuts := make([]float64, k-1)
	for i := 1; i < k; i++ {
		cuts[i-1] = stat.Quantile(float64(i)/float64(k), stat.Empirical, s, nil)
	}

	out := make([]int, len(xs))
	for i, v := range xs {
		b := 0
		for b < k-1 && v > cuts[b] {
			b++
		}
		out[i] = b
	}
	return out, nil
}
