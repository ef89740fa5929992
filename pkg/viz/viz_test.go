package viz

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), b[:8])
}

func TestHistogram(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	xs := make([]float64, 500)
	for i := range xs {
		xs[i] = rng.NormFloat64()*2 + 10
	}

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, Histogram(path, "median_income", xs, 30))
	assertPNG(t, path)

	err := Histogram(path, "empty", nil, 30)
	assert.Error(t, err)
}

func TestGeoScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := 300
	lons := make([]float64, n)
	lats := make([]float64, n)
	vb := make([]int, n)
	pb := make([]int, n)
	for i := 0; i < n; i++ {
		lons[i] = -124 + rng.Float64()*10
		lats[i] = 32 + rng.Float64()*10
		vb[i] = rng.Intn(GeoClasses)
		pb[i] = rng.Intn(GeoClasses)
	}

	path := filepath.Join(t.TempDir(), "geo.png")
	require.NoError(t, GeoScatter(path, lons, lats, vb, pb))
	assertPNG(t, path)

	assert.Error(t, GeoScatter(path, nil, nil, nil, nil))
	assert.Error(t, GeoScatter(path, lons, lats[:10], vb, pb))
}

func TestDensityRidges(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	groups := map[string][]float64{}
	order := []string{"INLAND", "NEAR BAY", "NEAR OCEAN"}
	for gi, name := range order {
		xs := make([]float64, 200)
		for i := range xs {
			xs[i] = rng.NormFloat64()*50000 + float64(100000+gi*80000)
		}
		groups[name] = xs
	}

	path := filepath.Join(t.TempDir(), "ridges.png")
	require.NoError(t, DensityRidges(path, "median_house_value", groups, order))
	assertPNG(t, path)

	assert.Error(t, DensityRidges(path, "x", groups, nil))
	assert.Error(t, DensityRidges(path, "x", groups, []string{"MISSING"}))
}

func TestScatterWithSmoother(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n := 400
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.Float64() * 15
		ys[i] = 50000*xs[i] + rng.NormFloat64()*20000
	}

	path := filepath.Join(t.TempDir(), "scatter.png")
	require.NoError(t, ScatterWithSmoother(path, "median_income", "median_house_value", xs, ys))
	assertPNG(t, path)

	assert.Error(t, ScatterWithSmoother(path, "x", "y", xs, ys[:5]))
}
