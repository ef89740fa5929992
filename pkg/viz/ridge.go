package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hctl-dev/hctl/pkg/stats"
)

const ridgeGridSize = 256

// DensityRidges renders one kernel density curve per group, offset
// vertically in the given order (ridgeline style). Group densities are
// scaled to a common height so the shapes are comparable.
func DensityRidges(path, xLabel string, groups map[string][]float64, order []string) error {
	if len(order) == 0 {
		return fmt.Errorf("no groups to plot")
	}

	type curve struct {
		name string
		gx   []float64
		gy   []float64
	}

	curves := make([]curve, 0, len(order))
	maxDensity := 0.0
	for _, name := range order {
		xs, ok := groups[name]
		if !ok {
			return fmt.Errorf("group %s has no data", name)
		}
		gx, gy, err := stats.KDE(xs, ridgeGridSize)
		if err != nil {
			return fmt.Errorf("error estimating density for group %s: %w", name, err)
		}
		for _, d := range gy {
			if d > maxDensity {
				maxDensity = d
			}
		}
		curves = append(curves, curve{name: name, gx: gx, gy: gy})
	}

	p := newPlot("Distribution of "+xLabel+" by ocean proximity", xLabel, "")

	ticks := make([]plot.Tick, 0, len(curves))
	for i, c := range curves {
		offset := float64(i)
		xys := make(plotter.XYs, len(c.gx))
		for j := range c.gx {
			xys[j].X = c.gx[j]
			xys[j].Y = offset + 0.9*c.gy[j]/maxDensity
		}

		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("error building ridge line for group %s: %w", c.name, err)
		}
		l.Color = seriesColor(i)
		l.Width = vg.Points(1.5)
		p.Add(l)

		ticks = append(ticks, plot.Tick{Value: offset, Label: c.name})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = -0.2
	p.Y.Max = float64(len(curves))

	return save(p, path)
}
