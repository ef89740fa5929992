package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// GeoClasses is the number of quantile classes per variable in the
// bivariate scheme; the map uses GeoClasses x GeoClasses color cells.
const GeoClasses = 3

// GeoScatter renders the longitude/latitude map with a bivariate
// color: valueBins drives hue (blue to red) and popBins drives
// saturation (light to dark). Both bin slices must hold classes in
// [0, GeoClasses).
func GeoScatter(path string, lons, lats []float64, valueBins, popBins []int) error {
	n := len(lons)
	if n == 0 {
		return fmt.Errorf("no points to plot")
	}
	if len(lats) != n || len(valueBins) != n || len(popBins) != n {
		return fmt.Errorf("inputs must have equal length, got %d/%d/%d/%d",
			n, len(lats), len(valueBins), len(popBins))
	}

	xys := make(plotter.XYs, n)
	for i := range xys {
		xys[i].X = lons[i]
		xys[i].Y = lats[i]
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("error building geo scatter: %w", err)
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  bivariateColor(valueBins[i], popBins[i]),
			Radius: vg.Points(1.2),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := newPlot("House value and population by location", "longitude", "latitude")
	p.Add(s)

	return save(p, path)
}

// bivariateColor maps (value class, population class) to a color cell:
// value moves blue to red, population darkens.
func bivariateColor(valueClass, popClass int) color.RGBA {
	clamp := func(c int) int {
		if c < 0 {
			return 0
		}
		if c >= GeoClasses {
			return GeoClasses - 1
		}
		return c
	}
	v := float64(clamp(valueClass)) / float64(GeoClasses-1)
	d := 1 - 0.3*float64(clamp(popClass))/float64(GeoClasses-1)

	return color.RGBA{
		R: uint8(d * (60 + 195*v)),
		G: uint8(d * 70),
		B: uint8(d * (60 + 195*(1-v))),
		A: 200,
	}
}
