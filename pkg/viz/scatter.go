package viz

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/hctl-dev/hctl/pkg/stats"
)

const (
	loessSpan   = 0.3
	loessPoints = 100
)

// ScatterWithSmoother renders a scatter of y against x with a loess
// trend line on top.
func ScatterWithSmoother(path, xLabel, yLabel string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("x and y length mismatch: %d vs %d", len(xs), len(ys))
	}

	xys := make(plotter.XYs, len(xs))
	for i := range xys {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("error building scatter: %w", err)
	}
	s.GlyphStyle = draw.GlyphStyle{
		Color:  pointColor,
		Radius: vg.Points(1.2),
		Shape:  draw.CircleGlyph{},
	}

	gx, gy, err := stats.Loess(xs, ys, loessSpan, loessPoints)
	if err != nil {
		return fmt.Errorf("error fitting smoother: %w", err)
	}
	sm := make(plotter.XYs, len(gx))
	for i := range sm {
		sm[i].X = gx[i]
		sm[i].Y = gy[i]
	}
	l, err := plotter.NewLine(sm)
	if err != nil {
		return fmt.Errorf("error building smoother line: %w", err)
	}
	l.Color = smootherColor
	l.Width = vg.Points(2)

	p := newPlot(yLabel+" vs "+xLabel, xLabel, yLabel)
	p.Add(s, l)
	p.Legend.Add("loess", l)
	p.Legend.Top = true

	return save(p, path)
}
