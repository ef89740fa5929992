package dataset

import "math"

// Column names as they appear in the source CSV header.
const (
	ColLongitude        = "longitude"
	ColLatitude         = "latitude"
	ColHousingMedianAge = "housing_median_age"
	ColTotalRooms       = "total_rooms"
	ColTotalBedrooms    = "total_bedrooms"
	ColPopulation       = "population"
	ColHouseholds       = "households"
	ColMedianIncome     = "median_income"
	ColMedianHouseValue = "median_house_value"
	ColOceanProximity   = "ocean_proximity"
)

// Derived column names.
const (
	ColRoomsPerHousehold      = "rooms_per_household"
	ColBedroomsPerRoom        = "bedrooms_per_room"
	ColPopulationPerHousehold = "population_per_household"
	ColValueLevel             = "value_level"
)

// Value level labels for the binary split at the median house value.
const (
	ValueLevelHigh = "high"
	ValueLevelLow  = "low"
)

// Columns is the expected CSV header, in order.
var Columns = []string{
	ColLongitude,
	ColLatitude,
	ColHousingMedianAge,
	ColTotalRooms,
	ColTotalBedrooms,
	ColPopulation,
	ColHouseholds,
	ColMedianIncome,
	ColMedianHouseValue,
	ColOceanProximity,
}

// NumericColumns are the source columns holding numbers.
var NumericColumns = []string{
	ColLongitude,
	ColLatitude,
	ColHousingMedianAge,
	ColTotalRooms,
	ColTotalBedrooms,
	ColPopulation,
	ColHouseholds,
	ColMedianIncome,
	ColMedianHouseValue,
}

// Block is a single census block group from the California housing
// dataset. TotalBedrooms is NaN when the source value is missing;
// Impute clears that.
type Block struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	HousingMedianAge float64 `json:"housing_median_age"`
	TotalRooms       float64 `json:"total_rooms"`
	TotalBedrooms    float64 `json:"total_bedrooms"`
	Population       float64 `json:"population"`
	Households       float64 `json:"households"`
	MedianIncome     float64 `json:"median_income"`
	MedianHouseValue float64 `json:"median_house_value"`
	OceanProximity   string  `json:"ocean_proximity"`

	RoomsPerHousehold      float64 `json:"rooms_per_household,omitempty"`
	BedroomsPerRoom        float64 `json:"bedrooms_per_room,omitempty"`
	PopulationPerHousehold float64 `json:"population_per_household,omitempty"`
	ValueLevel             string  `json:"value_level,omitempty"`
}

// Frame is the in-memory dataset: loaded once, read many times.
type Frame []*Block

// Column returns the named numeric column. Unknown names return nil.
func (f Frame) Column(name string) []float64 {
	get := columnGetter(name)
	if get == nil {
		return nil
	}
	out := make([]float64, len(f))
	for i, b := range f {
		out[i] = get(b)
	}
	return out
}

// Proximities returns the categorical ocean_proximity column.
func (f Frame) Proximities() []string {
	out := make([]string, len(f))
	for i, b := range f {
		out[i] = b.OceanProximity
	}
	return out
}

// MissingBedrooms counts rows where total_bedrooms is not set.
func (f Frame) MissingBedrooms() int {
	n := 0
	for _, b := range f {
		if math.IsNaN(b.TotalBedrooms) {
			n++
		}
	}
	return n
}

func columnGetter(name string) func(*Block) float64 {
	switch name {
	case ColLongitude:
		return func(b *Block) float64 { return b.Longitude }
	case ColLatitude:
		return func(b *Block) float64 { return b.Latitude }
	case ColHousingMedianAge:
		return func(b *Block) float64 { return b.HousingMedianAge }
	case ColTotalRooms:
		return func(b *Block) float64 { return b.TotalRooms }
	case ColTotalBedrooms:
		return func(b *Block) float64 { return b.TotalBedrooms }
	case ColPopulation:
		return func(b *Block) float64 { return b.Population }
	case ColHouseholds:
		return func(b *Block) float64 { return b.Households }
	case ColMedianIncome:
		return func(b *Block) float64 { return b.MedianIncome }
	case ColMedianHouseValue:
		return func(b *Block) float64 { return b.MedianHouseValue }
	case ColRoomsPerHousehold:
		return func(b *Block) float64 { return b.RoomsPerHousehold }
	case ColBedroomsPerRoom:
		return func(b *Block) float64 { return b.BedroomsPerRoom }
	case ColPopulationPerHousehold:
		return func(b *Block) float64 { return b.PopulationPerHousehold }
	default:
		return nil
	}
}
