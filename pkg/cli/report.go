package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/report"
	"github.com/hctl-dev/hctl/pkg/stats"
)

var reportCmd = &urfave.Command{
	Name:    "report",
	Aliases: []string{"r"},
	Usage:   "Render the full report: figures, summaries, and model fits",
	Action:  cmdReport,
	Flags: []urfave.Flag{
		outDirFlag,
		testRatioFlag,
		seedFlag,
	},
}

// ReportResult is the report command output.
type ReportResult struct {
	Path     string `json:"path"`
	Figures  int    `json:"figures"`
	Models   int    `json:"models"`
	Duration string `json:"duration"`
}

func cmdReport(c *urfave.Context) error {
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

	imp, err := data.GetLastImport(cfg.DB)
	if err != nil {
		return fmt.Errorf("loading import state: %w", err)
	}
	if imp == nil {
		return fmt.Errorf("no import recorded, run import first")
	}

	d := &report.Data{
		GeneratedAt:    start,
		Source:         imp.Source,
		Rows:           imp.Rows,
		Imputed:        imp.Imputed,
		BedroomMedian:  imp.BedroomMedian,
		ValueThreshold: imp.ValueThreshold,
	}

	for _, col := range describeColumns {
		s, err := stats.Describe(col, frame.Column(col))
		if err != nil {
			return fmt.Errorf("describing column %s: %w", col, err)
		}
		d.Summaries = append(d.Summaries, s)
	}

	d.Proximity, err = data.GetProximityStats(cfg.DB)
	if err != nil {
		return fmt.Errorf("querying proximity stats: %w", err)
	}

	d.Correlations, err = correlations(frame)
	if err != nil {
		return fmt.Errorf("computing correlations: %w", err)
	}

	d.Figures, err = renderFigures(frame, dir, cfg.Conf.HistBins)
	if err != nil {
		return fmt.Errorf("rendering figures: %w", err)
	}

	ratio := c.Float64(testRatioFlag.Name)
	if ratio == 0 {
		ratio = cfg.Conf.TestRatio
	}
	seed := cfg.Conf.Seed
	if c.IsSet(seedFlag.Name) {
		seed = c.Int64(seedFlag.Name)
	}
	models, err := buildModels(frame, ratio, seed)
	if err != nil {
		return err
	}
	d.Models = modelSummaries(models)

	path := filepath.Join(dir, report.FileName)
	if err := report.Render(path, d); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	res := &ReportResult{
		Path:     path,
		Figures:  len(d.Figures),
		Models:   len(d.Models),
		Duration: time.Since(start).String(),
	}
	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// modelSummaries flattens the fitted models into the report's generic
// label/value tables.
func modelSummaries(m *ModelsResult) []*report.Model {
	f := func(format string, args ...any) string { return fmt.Sprintf(format, args...) }

	linear := &report.Model{
		Name: "Linear regression (median_house_value)",
		Metrics: []report.Metric{
			{Label: "RMSE", Value: f("%.2f", m.Linear.Metrics.RMSE)},
			{Label: "MAE", Value: f("%.2f", m.Linear.Metrics.MAE)},
			{Label: "R²", Value: f("%.4f", m.Linear.Metrics.R2)},
			{Label: "Intercept", Value: f("%.2f", m.Linear.Intercept)},
		},
	}
	for _, c := range m.Linear.Coefficients {
		linear.Metrics = append(linear.Metrics, report.Metric{
			Label: "β " + c.Name, Value: f("%.4f", c.Value),
		})
	}

	class := &report.Model{
		Name: "Classification tree (value_level)",
		Metrics: []report.Metric{
			{Label: "Accuracy", Value: f("%.4f", m.ClassificationTree.Classification.Accuracy)},
			{Label: "Precision", Value: f("%.4f", m.ClassificationTree.Classification.Precision)},
			{Label: "Recall", Value: f("%.4f", m.ClassificationTree.Classification.Recall)},
			{Label: "Leaves", Value: f("%d", m.ClassificationTree.Leaves)},
		},
	}

	reg := &report.Model{
		Name: "Regression tree (median_house_value)",
		Metrics: []report.Metric{
			{Label: "RMSE", Value: f("%.2f", m.RegressionTree.Regression.RMSE)},
			{Label: "MAE", Value: f("%.2f", m.RegressionTree.Regression.MAE)},
			{Label: "R²", Value: f("%.4f", m.RegressionTree.Regression.R2)},
			{Label: "Leaves", Value: f("%d", m.RegressionTree.Leaves)},
		},
	}

	return []*report.Model{linear, class, reg}
}
