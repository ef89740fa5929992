package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/dataset"
	"github.com/hctl-dev/hctl/pkg/report"
	"github.com/hctl-dev/hctl/pkg/stats"
	"github.com/hctl-dev/hctl/pkg/viz"
)

const outDirMode = 0755

var (
	outDirFlag = &urfave.StringFlag{
		Name:  "dir",
		Usage: "Output directory for figures (defaults to the configured out_dir)",
	}

	plotCmd = &urfave.Command{
		Name:    "plot",
		Aliases: []string{"p"},
		Usage:   "Render the report figures as PNG files",
		Action:  cmdPlot,
		Flags: []urfave.Flag{
			outDirFlag,
		},
	}
)

// PlotResult is the plot command output.
type PlotResult struct {
	Dir      string          `json:"dir"`
	Figures  []report.Figure `json:"figures"`
	Duration string          `json:"duration"`
}

func cmdPlot(c *urfave.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	dir := c.String(outDirFlag.Name)
	if dir == "" {
		dir = cfg.Conf.OutDir
	}
	if err := os.MkdirAll(dir, outDirMode); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	frame, err := data.GetBlocks(cfg.DB)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	figures, err := renderFigures(frame, dir, cfg.Conf.HistBins)
	if err != nil {
		return fmt.Errorf("rendering figures: %w", err)
	}

	res := &PlotResult{
		Dir:      dir,
		Figures:  figures,
		Duration: time.Since(start).String(),
	}
	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// renderFigures writes every report figure into dir and returns their
// metadata in document order.
func renderFigures(frame dataset.Frame, dir string, bins int) ([]report.Figure, error) {
	figures := make([]report.Figure, 0, len(dataset.NumericColumns)+3)

	for _, col := range dataset.NumericColumns {
		file := "hist_" + col + ".png"
		if err := viz.Histogram(filepath.Join(dir, file), col, frame.Column(col), bins); err != nil {
			return nil, fmt.Errorf("histogram for %s: %w", col, err)
		}
		figures = append(figures, report.Figure{
			Title: "Distribution of " + col,
			File:  file,
		})
	}

	values := frame.Column(dataset.ColMedianHouseValue)
	valueBins, err := stats.QuantileBins(values, viz.GeoClasses)
	if err != nil {
		return nil, fmt.Errorf("binning house values: %w", err)
	}
	popBins, err := stats.QuantileBins(frame.Column(dataset.ColPopulation), viz.GeoClasses)
	if err != nil {
		return nil, fmt.Errorf("binning population: %w", err)
	}
	file := "map_value_population.png"
	err = viz.GeoScatter(filepath.Join(dir, file),
		frame.Column(dataset.ColLongitude), frame.Column(dataset.ColLatitude),
		valueBins, popBins)
	if err != nil {
		return nil, fmt.Errorf("geo scatter: %w", err)
	}
	figures = append(figures, report.Figure{
		Title: "House value (blue to red) and population (light to dark) by location",
		File:  file,
	})

	groups, order := valueGroups(frame)
	file = "ridge_value_by_proximity.png"
	err = viz.DensityRidges(filepath.Join(dir, file),
		dataset.ColMedianHouseValue, groups, order)
	if err != nil {
		return nil, fmt.Errorf("density ridges: %w", err)
	}
	figures = append(figures, report.Figure{
		Title: "Density of median house value by ocean proximity",
		File:  file,
	})

	file = "scatter_income_value.png"
	err = viz.ScatterWithSmoother(filepath.Join(dir, file),
		dataset.ColMedianIncome, dataset.ColMedianHouseValue,
		frame.Column(dataset.ColMedianIncome), values)
	if err != nil {
		return nil, fmt.Errorf("income scatter: %w", err)
	}
	figures = append(figures, report.Figure{
		Title: "Median house value vs median income with loess smoother",
		File:  file,
	})

	return figures, nil
}

// valueGroups buckets house values by proximity class, ordered by
// descending group size. Groups too small for a density estimate are
// skipped.
func valueGroups(frame dataset.Frame) (map[string][]float64, []string) {
	groups := map[string][]float64{}
	for _, b := range frame {
		groups[b.OceanProximity] = append(groups[b.OceanProximity], b.MedianHouseValue)
	}

	order := make([]string, 0, len(groups))
	for name, xs := range groups {
		if len(xs) < 10 {
			slog.Warn("skipping small proximity group", "group", name, "rows", len(xs))
			delete(groups, name)
			continue
		}
		order = append(order, name)
	}
	sort.Slice(order, func(i, j int) bool {
		if len(groups[order[i]]) != len(groups[order[j]]) {
			return len(groups[order[i]]) > len(groups[order[j]])
		}
		return strings.Compare(order[i], order[j]) < 0
	})
	return groups, order
}
