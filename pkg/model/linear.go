package model

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model solved by QR
// decomposition.
type LinearRegression struct {
	Names     []string  `json:"names,omitempty"`
	Intercept float64   `json:"intercept"`
	Coef      []float64 `json:"coef"`
}

// NewLinearRegression returns an unfit model; names are optional
// feature labels used in summaries.
func NewLinearRegression(names []string) *LinearRegression {
	return &LinearRegression{Names: names}
}

// Fit solves the least squares problem for x (n rows, p features) and
// y (n targets). An intercept column is added internally.
func (m *LinearRegression) Fit(x [][]float64, y []float64) error {
	n := len(x)
	if n == 0 {
		return errors.New("empty design matrix")
	}
	if len(y) != n {
		return fmt.Errorf("x rows %d and y length %d mismatch", n, len(y))
	}
	p := len(x[0])
	if n <= p {
		return fmt.Errorf("need more rows (%d) than features (%d)", n, p)
	}

	a := mat.NewDense(n, p+1, nil)
	for i, row := range x {
		if len(row) != p {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), p)
		}
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(n, y)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("least squares solve failed: %w", err)
		}
		slog.Debug("ill-conditioned design matrix", "cond", float64(cond))
	}

	m.Intercept = beta.AtVec(0)
	m.Coef = make([]float64, p)
	for j := 0; j < p; j++ {
		m.Coef[j] = beta.AtVec(j + 1)
	}
	return nil
}

// Predict returns fitted values for the rows of x.
func (m *LinearRegression) Predict(x [][]float64) ([]float64, error) {
	if m.Coef == nil {
		return nil, errors.New("model not fit")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Coef) {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), len(m.Coef))
		}
		sum := m.Intercept
		for j, v := range row {
			sum += m.Coef[j] * v
		}
		out[i] = sum
	}
	return out, nil
}
