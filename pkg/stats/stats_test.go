package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	xs := []float64{4, 1, 3, 2, 5, math.NaN()}

	s, err := Describe("total_rooms", xs)
	require.NoError(t, err)

	assert.Equal(t, "total_rooms", s.Column)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 4.0, s.Q3)
}

func TestDescribeAllMissing(t *testing.T) {
	_, err := Describe("x", []float64{math.NaN(), math.NaN()})
	assert.Error(t, err)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3, 2, 4}))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestCorrelationsWith(t *testing.T) {
	cols := map[string][]float64{
		"value":  {1, 2, 3, 4, 5},
		"income": {2, 4, 6, 8, 10},
		"age":    {5, 4, 3, 2, 1},
	}

	cs, err := CorrelationsWith("value", cols)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	// sorted descending: income (+1) before age (-1)
	assert.Equal(t, "income", cs[0].Column)
	assert.InDelta(t, 1.0, cs[0].R, 1e-9)
	assert.Equal(t, "age", cs[1].Column)
	assert.InDelta(t, -1.0, cs[1].R, 1e-9)

	_, err = CorrelationsWith("nope", cols)
	assert.Error(t, err)

	cols["short"] = []float64{1}
	_, err = CorrelationsWith("value", cols)
	assert.Error(t, err)
}

func TestLoessRecoversLine(t *testing.T) {
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = 2*float64(i) + 1
	}

	gx, gy, err := Loess(xs, ys, 0.5, 25)
	require.NoError(t, err)
	require.Len(t, gx, 25)

	// a weighted local linear fit reproduces an exact line
	for i := range gx {
		assert.InDelta(t, 2*gx[i]+1, gy[i], 1e-6)
	}
}

func TestLoessErrors(t *testing.T) {
	_, _, err := Loess([]float64{1, 2}, []float64{1}, 0.5, 10)
	assert.Error(t, err)

	_, _, err = Loess([]float64{1, 2}, []float64{1, 2}, 0.5, 10)
	assert.Error(t, err)
}

func TestKDE(t *testing.T) {
	xs := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}

	grid, dens, err := KDE(xs, 64)
	require.NoError(t, err)
	require.Len(t, grid, 64)
	require.Len(t, dens, 64)

	// density is positive and peaks near the mode
	peak := 0
	for i, d := range dens {
		assert.Positive(t, d)
		if d > dens[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 3.0, grid[peak], 1.0)

	_, _, err = KDE([]float64{1}, 10)
	assert.Error(t, err)

	_, _, err = KDE([]float64{2, 2, 2}, 10)
	assert.Error(t, err, "zero variance")
}

func TestQuantileBins(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	bins, err := QuantileBins(xs, 3)
	require.NoError(t, err)
	require.Len(t, bins, len(xs))

	counts := map[int]int{}
	for i, b := range bins {
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 3)
		counts[b]++
		// monotone: larger values never land in lower bins
		if i > 0 {
			assert.GreaterOrEqual(t, b, bins[i-1])
		}
	}
	assert.Len(t, counts, 3)

	_, err = QuantileBins(xs, 1)
	assert.Error(t, err)

	_, err = QuantileBins([]float64{1}, 3)
	assert.Error(t, err)
}
