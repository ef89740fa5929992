package dataset

import (
	"fmt"
	"sort"
)

// FeatureColumns are the numeric predictors used by the models, in
// design-matrix order (before the one-hot proximity block).
var FeatureColumns = []string{
	ColLongitude,
	ColLatitude,
	ColHousingMedianAge,
	ColTotalRooms,
	ColTotalBedrooms,
	ColPopulation,
	ColHouseholds,
	ColMedianIncome,
	ColRoomsPerHousehold,
	ColBedroomsPerRoom,
	ColPopulationPerHousehold,
}

// Features builds the model design matrix: the numeric feature columns
// followed by a one-hot encoding of ocean_proximity. Categories are
// sorted for determinism and the first one is the reference level
// (all zeros), keeping the matrix full rank for regression.
func Features(f Frame) ([][]float64, []string, error) {
	if len(f) == 0 {
		return nil, nil, fmt.Errorf("empty frame")
	}

	cats := map[string]int{}
	for _, b := range f {
		if _, ok := cats[b.OceanProximity]; !ok {
			cats[b.OceanProximity] = 0
		}
	}
	catNames := make([]string, 0, len(cats))
	for c := range cats {
		catNames = append(catNames, c)
	}
	sort.Strings(catNames)
	for i, c := range catNames {
		cats[c] = i
	}

	names := make([]string, 0, len(FeatureColumns)+len(catNames)-1)
	names = append(names, FeatureColumns...)
	for _, c := range catNames[1:] {
		names = append(names, ColOceanProximity+"="+c)
	}

	getters := make([]func(*Block) float64, len(FeatureColumns))
	for i, name := range FeatureColumns {
		getters[i] = columnGetter(name)
	}

	x := make([][]float64, len(f))
	for i, b := range f {
		row := make([]float64, len(names))
		for j, get := range getters {
			row[j] = get(b)
		}
		if ci := cats[b.OceanProximity]; ci > 0 {
			row[len(FeatureColumns)+ci-1] = 1
		}
		x[i] = row
	}

	return x, names, nil
}

// TargetValue returns the regression target (median_house_value).
func TargetValue(f Frame) []float64 {
	out := make([]float64, len(f))
	for i, b := range f {
		out[i] = b.MedianHouseValue
	}
	return out
}

// TargetLevel returns the classification target: 1 for high
// value_level, 0 for low. Errors if labels were never assigned.
func TargetLevel(f Frame) ([]int, error) {
	out := make([]int, len(f))
	for i, b := range f {
		switch b.ValueLevel {
		case ValueLevelHigh:
			out[i] = 1
		case ValueLevelLow:
			out[i] = 0
		default:
			return nil, fmt.Errorf("row %d has no value_level label", i)
		}
	}
	return out, nil
}
