package viz

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
)

// Histogram renders the distribution of one numeric column. NaN values
// are skipped.
func Histogram(path, column string, xs []float64, bins int) error {
	vals := make(plotter.Values, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return fmt.Errorf("column %s has no observed values", column)
	}
	if bins < 1 {
		bins = 30
	}

	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return fmt.Errorf("error building histogram for %s: %w", column, err)
	}
	h.FillColor = seriesColor(0)

	p := newPlot("Distribution of "+column, column, "count")
	p.Add(h)

	return save(p, path)
}
