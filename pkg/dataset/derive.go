package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Derive computes the engineered ratio columns for every block.
// It requires a cleaned frame (no missing total_bedrooms).
func Derive(f Frame) error {
	if n := f.MissingBedrooms(); n > 0 {
		return fmt.Errorf("cannot derive features: %d rows still missing total_bedrooms", n)
	}
	for _, b := range f {
		if b.Households > 0 {
			b.RoomsPerHousehold = b.TotalRooms / b.Households
			b.PopulationPerHousehold = b.Population / b.Households
		}
		if b.TotalRooms > 0 {
			b.BedroomsPerRoom = b.TotalBedrooms / b.TotalRooms
		}
	}
	return nil
}

// LabelValueLevels assigns the binary value_level label: high for
// blocks whose median_house_value is strictly above the column median,
// low otherwise. Returns the threshold used.
func LabelValueLevels(f Frame) (float64, error) {
	if len(f) == 0 {
		return math.NaN(), fmt.Errorf("empty frame")
	}

	values := make([]float64, len(f))
	for i, b := range f {
		values[i] = b.MedianHouseValue
	}
	sort.Float64s(values)
	threshold := stat.Quantile(0.5, stat.Empirical, values, nil)

	for _, b := range f {
		if b.MedianHouseValue > threshold {
			b.ValueLevel = ValueLevelHigh
		} else {
			b.ValueLevel = ValueLevelLow
		}
	}
	return threshold, nil
}
