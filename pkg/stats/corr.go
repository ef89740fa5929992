package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Correlation is a single Pearson coefficient between two columns.
type Correlation struct {
	Column string  `json:"column"`
	With   string  `json:"with"`
	R      float64 `json:"r"`
}

// CorrelationsWith computes the Pearson correlation of every column in
// cols against the target column, sorted by descending coefficient.
func CorrelationsWith(target string, cols map[string][]float64) ([]*Correlation, error) {
	ty, ok := cols[target]
	if !ok {
		return nil, fmt.Errorf("target column %s not present", target)
	}

	out := make([]*Correlation, 0, len(cols)-1)
	for name, xs := range cols {
		if name == target {
			continue
		}
		if len(xs) != len(ty) {
			return nil, fmt.Errorf("column %s length %d does not match target length %d", name, len(xs), len(ty))
		}
		out = append(out, &Correlation{
			Column: name,
			With:   target,
			R:      stat.Correlation(xs, ty, nil),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].R > out[j].R })
	return out, nil
}
