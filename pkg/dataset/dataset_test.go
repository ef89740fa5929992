package dataset

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

const testCSV = `longitude,latitude,housing_median_age,total_rooms,total_bedrooms,population,households,median_income,median_house_value,ocean_proximity
-122.23,37.88,41,880,129,322,126,8.3252,452600,NEAR BAY
-122.22,37.86,21,7099,1106,2401,1138,8.3014,358500,NEAR BAY
-122.24,37.85,52,1467,190,496,177,7.2574,352100,INLAND
-122.25,37.85,52,1274,,558,219,5.6431,341300,INLAND
-122.25,37.85,52,1627,280,565,259,3.8462,342200,<1H OCEAN
-122.25,37.84,52,919,,413,193,4.0368,269700,<1H OCEAN
-122.25,37.84,52,2535,489,1094,514,3.6591,299200,NEAR OCEAN
`

func parseTestFrame(t *testing.T) Frame {
	t.Helper()
	f, err := Parse(strings.NewReader(testCSV))
	require.NoError(t, err)
	require.Len(t, f, 7)
	return f
}

func TestParse(t *testing.T) {
	f := parseTestFrame(t)

	assert.Equal(t, -122.23, f[0].Longitude)
	assert.Equal(t, 452600.0, f[0].MedianHouseValue)
	assert.Equal(t, "NEAR BAY", f[0].OceanProximity)
	assert.Equal(t, 2, f.MissingBedrooms())
	assert.True(t, math.IsNaN(f[3].TotalBedrooms))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err, "wrong field count")

	bad := strings.Replace(testCSV, "longitude", "lon", 1)
	_, err = Parse(strings.NewReader(bad))
	assert.ErrorContains(t, err, "unexpected column")

	bad = strings.Replace(testCSV, "8.3252", "not-a-number", 1)
	_, err = Parse(strings.NewReader(bad))
	assert.ErrorContains(t, err, "median_income")

	header := testCSV[:strings.Index(testCSV, "\n")+1]
	_, err = Parse(strings.NewReader(header))
	assert.ErrorContains(t, err, "no rows")
}

func TestImputeBedrooms(t *testing.T) {
	f := parseTestFrame(t)
	rows := len(f)

	present := make([]float64, 0, rows)
	for _, b := range f {
		if !math.IsNaN(b.TotalBedrooms) {
			present = append(present, b.TotalBedrooms)
		}
	}
	sort.Float64s(present)
	want := stat.Quantile(0.5, stat.Empirical, present, nil)

	res, err := ImputeBedrooms(f)
	require.NoError(t, err)

	// no missing entries after imputation
	assert.Equal(t, 0, f.MissingBedrooms())
	// imputed value equals the pre-imputation median of observed entries
	assert.Equal(t, want, res.Median)
	assert.Equal(t, want, f[3].TotalBedrooms)
	assert.Equal(t, want, f[5].TotalBedrooms)
	// row count unchanged
	assert.Equal(t, rows, len(f))
	assert.Equal(t, rows, res.Rows)
	assert.Equal(t, 2, res.Missing)

	// observed values untouched
	assert.Equal(t, 129.0, f[0].TotalBedrooms)
}

func TestImputeBedroomsEmpty(t *testing.T) {
	_, err := ImputeBedrooms(Frame{})
	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	f := parseTestFrame(t)

	// deriving before imputation must fail
	err := Derive(f)
	assert.ErrorContains(t, err, "missing total_bedrooms")

	_, err = ImputeBedrooms(f)
	require.NoError(t, err)
	require.NoError(t, Derive(f))

	b := f[0]
	assert.InDelta(t, 880.0/126.0, b.RoomsPerHousehold, 1e-9)
	assert.InDelta(t, 129.0/880.0, b.BedroomsPerRoom, 1e-9)
	assert.InDelta(t, 322.0/126.0, b.PopulationPerHousehold, 1e-9)
}

func TestLabelValueLevels(t *testing.T) {
	f := parseTestFrame(t)

	threshold, err := LabelValueLevels(f)
	require.NoError(t, err)

	high, low := 0, 0
	for _, b := range f {
		switch b.ValueLevel {
		case ValueLevelHigh:
			high++
			assert.Greater(t, b.MedianHouseValue, threshold)
		case ValueLevelLow:
			low++
			assert.LessOrEqual(t, b.MedianHouseValue, threshold)
		default:
			t.Fatalf("unlabeled block: %+v", b)
		}
	}
	assert.Equal(t, len(f), high+low)
	assert.Positive(t, high)
	assert.Positive(t, low)
}

func TestFeatures(t *testing.T) {
	f := parseTestFrame(t)
	_, err := ImputeBedrooms(f)
	require.NoError(t, err)
	require.NoError(t, Derive(f))

	x, names, err := Features(f)
	require.NoError(t, err)
	require.Len(t, x, len(f))

	// 11 numeric + 3 proximity dummies; "<1H OCEAN" sorts first and
	// is the reference level
	require.Len(t, names, len(FeatureColumns)+3)
	assert.Contains(t, names, "ocean_proximity=NEAR BAY")
	assert.Contains(t, names, "ocean_proximity=INLAND")
	assert.NotContains(t, names, "ocean_proximity=<1H OCEAN")

	// one-hot block sums to one per row, zero for the reference level
	for i, row := range x {
		require.Len(t, row, len(names))
		sum := 0.0
		for _, v := range row[len(FeatureColumns):] {
			sum += v
		}
		if f[i].OceanProximity == "<1H OCEAN" {
			assert.Equal(t, 0.0, sum)
		} else {
			assert.Equal(t, 1.0, sum)
		}
	}
}

func TestTargets(t *testing.T) {
	f := parseTestFrame(t)

	y := TargetValue(f)
	require.Len(t, y, len(f))
	assert.Equal(t, 452600.0, y[0])

	_, err := TargetLevel(f)
	assert.Error(t, err, "labels not assigned yet")

	_, err = LabelValueLevels(f)
	require.NoError(t, err)

	levels, err := TargetLevel(f)
	require.NoError(t, err)
	for i, b := range f {
		if b.ValueLevel == ValueLevelHigh {
			assert.Equal(t, 1, levels[i])
		} else {
			assert.Equal(t, 0, levels[i])
		}
	}
}
