// Package viz renders the report figures as static PNG files using
// gonum/plot.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

var (
	seriesColors = []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
	}

	smootherColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	pointColor    = color.RGBA{R: 31, G: 119, B: 180, A: 128}
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("error saving plot to %s: %w", path, err)
	}
	return nil
}

// seriesColor cycles the palette for an arbitrary series index.
func seriesColor(i int) color.RGBA {
	return seriesColors[i%len(seriesColors)]
}
