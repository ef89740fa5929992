package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// KDE evaluates a gaussian kernel density estimate over an evenly
// spaced grid of the given size spanning [min-h, max+h]. The bandwidth
// follows Silverman's rule of thumb.
func KDE(xs []float64, gridSize int) (grid, density []float64, err error) {
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 points, got %d", len(xs))
	}
	if gridSize < 2 {
		gridSize = 2
	}

	sd := stat.StdDev(xs, nil)
	if sd == 0 {
		return nil, nil, fmt.Errorf("zero variance, density undefined")
	}
	h := 1.06 * sd * math.Pow(float64(len(xs)), -0.2)

	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= h
	hi += h

	grid = make([]float64, gridSize)
	density = make([]float64, gridSize)
	step := (hi - lo) / float64(gridSize-1)
	norm := 1 / (float64(len(xs)) * h * math.Sqrt(2*math.Pi))

	for i := 0; i < gridSize; i++ {
		x := lo + float64(i)*step
		grid[i] = x
		sum := 0.0
		for _, v := range xs {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		density[i] = sum * norm
	}

	return grid, density, nil
}
