package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ImputeResult records what the cleaning step did.
type ImputeResult struct {
	Rows    int     `json:"rows"`
	Missing int     `json:"missing"`
	Median  float64 `json:"median"`
}

// ImputeBedrooms replaces missing total_bedrooms values with the
// median of the non-missing entries. Row count is never changed.
func ImputeBedrooms(f Frame) (*ImputeResult, error) {
	if len(f) == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	present := make([]float64, 0, len(f))
	for _, b := range f {
		if !math.IsNaN(b.TotalBedrooms) {
			present = append(present, b.TotalBedrooms)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("total_bedrooms has no observed values to impute from")
	}

	sort.Float64s(present)
	median := stat.Quantile(0.5, stat.Empirical, present, nil)

	missing := 0
	for _, b := range f {
		if math.IsNaN(b.TotalBedrooms) {
			b.TotalBedrooms = median
			missing++
		}
	}

	return &ImputeResult{
		Rows:    len(f),
		Missing: missing,
		Median:  median,
	}, nil
}
