package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the describe() style statistics for one column.
type Summary struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Q1      float64 `json:"q1"`
	Median  float64 `json:"median"`
	Q3      float64 `json:"q3"`
	Max     float64 `json:"max"`
}

// Describe computes summary statistics for a column. NaN entries are
// counted as missing and excluded from the statistics.
func Describe(column string, xs []float64) (*Summary, error) {
	vals := make([]float64, 0, len(xs))
	missing := 0
	for _, v := range xs {
		if math.IsNaN(v) {
			missing++
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %s has no observed values", column)
	}

	sort.Float64s(vals)

	return &Summary{
		Column:  column,
		Count:   len(vals),
		Missing: missing,
		Mean:    stat.Mean(vals, nil),
		Std:     stat.StdDev(vals, nil),
		Min:     vals[0],
		Q1:      stat.Quantile(0.25, stat.Empirical, vals, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, vals, nil),
		Q3:      stat.Quantile(0.75, stat.Empirical, vals, nil),
		Max:     vals[len(vals)-1],
	}, nil
}

// Median is a convenience wrapper over the empirical quantile.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return stat.Quantile(0.5, stat.Empirical, s, nil)
}
