package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Loess fits a locally weighted linear regression (tricube weights)
// and returns the smoothed curve evaluated at points spread across the
// x range. span is the fraction of the data used for each local fit,
// clamped to [0.1, 1].
func Loess(xs, ys []float64, span float64, points int) (gx, gy []float64, err error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("x and y length mismatch: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 3 {
		return nil, nil, fmt.Errorf("need at least 3 points, got %d", len(xs))
	}
	if points < 2 {
		points = 2
	}
	span = math.Min(math.Max(span, 0.1), 1)

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	for i, j := range idx {
		sx[i], sy[i] = xs[j], ys[j]
	}

	k := int(math.Ceil(span * float64(len(sx))))
	if k < 2 {
		k = 2
	}

	lo, hi := sx[0], sx[len(sx)-1]
	gx = make([]float64, points)
	gy = make([]float64, points)
	step := (hi - lo) / float64(points-1)

	wx := make([]float64, len(sx))
	wy := make([]float64, len(sx))
	ws := make([]float64, len(sx))
	dists := make([]float64, len(sx))

	for gi := 0; gi < points; gi++ {
		x0 := lo + float64(gi)*step

		// bandwidth: distance to the k-th nearest neighbor
		for i, v := range sx {
			dists[i] = math.Abs(v - x0)
		}
		sort.Float64s(dists)
		h := dists[k-1]
		if h == 0 {
			h = 1e-12
		}

		n := 0
		for i, v := range sx {
			u := math.Abs(v-x0) / h
			if u >= 1 {
				continue
			}
			w := 1 - u*u*u
			wx[n], wy[n], ws[n] = v, sy[i], w*w*w
			n++
		}

		gx[gi] = x0
		if n < 2 {
			gy[gi] = sy[nearest(sx, x0)]
			continue
		}
		alpha, beta := stat.LinearRegression(wx[:n], wy[:n], ws[:n], false)
		gy[gi] = alpha + beta*x0
	}

	return gx, gy, nil
}

// nearest returns the index of the value in sorted closest to x0.
func nearest(sorted []float64, x0 float64) int {
	i := sort.SearchFloat64s(sorted, x0)
	if i == 0 {
		return 0
	}
	if i == len(sorted) {
		return len(sorted) - 1
	}
	if x0-sorted[i-1] <= sorted[i]-x0 {
		return i - 1
	}
	return i
}
