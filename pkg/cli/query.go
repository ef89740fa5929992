package cli

import (
	"fmt"
	"log/slog"

	urfave "github.com/urfave/cli/v2"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/dataset"
	"github.com/hctl-dev/hctl/pkg/stats"
)

// describeColumns are the columns summarized by query describe and the
// report, source order then derived.
var describeColumns = append(append([]string{}, dataset.NumericColumns...),
	dataset.ColRoomsPerHousehold,
	dataset.ColBedroomsPerRoom,
	dataset.ColPopulationPerHousehold,
)

var queryCmd = &urfave.Command{
	Name:    "query",
	Aliases: []string{"q"},
	Usage:   "Summary statistics over the stored dataset",
	Subcommands: []*urfave.Command{
		{
			Name:    "describe",
			Usage:   "Per-column summary statistics",
			Aliases: []string{"d"},
			Action:  cmdQueryDescribe,
		},
		{
			Name:    "proximity",
			Usage:   "Block counts and averages by ocean proximity",
			Aliases: []string{"p"},
			Action:  cmdQueryProximity,
		},
		{
			Name:    "correlation",
			Usage:   "Correlation of every column with median house value",
			Aliases: []string{"c"},
			Action:  cmdQueryCorrelation,
		},
	},
}

// DescribeResult is the query describe output.
type DescribeResult struct {
	Rows    int              `json:"rows"`
	Columns []*stats.Summary `json:"columns"`
}

func cmdQueryDescribe(c *urfave.Context) error {
	cfg := getConfig(c)

	frame, err := data.GetBlocks(cfg.DB)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	res := &DescribeResult{
		Rows:    len(frame),
		Columns: make([]*stats.Summary, 0, len(describeColumns)),
	}
	for _, col := range describeColumns {
		s, err := stats.Describe(col, frame.Column(col))
		if err != nil {
			return fmt.Errorf("describing column %s: %w", col, err)
		}
		res.Columns = append(res.Columns, s)
	}

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func cmdQueryProximity(c *urfave.Context) error {
	cfg := getConfig(c)

	out, err := data.GetProximityStats(cfg.DB)
	if err != nil {
		return fmt.Errorf("querying proximity stats: %w", err)
	}
	if len(out) == 0 {
		slog.Warn("no blocks stored, run import first")
	}

	if err := encode(out); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// CorrelationResult is the query correlation output.
type CorrelationResult struct {
	Target       string               `json:"target"`
	Correlations []*stats.Correlation `json:"correlations"`
}

func cmdQueryCorrelation(c *urfave.Context) error {
	cfg := getConfig(c)

	frame, err := data.GetBlocks(cfg.DB)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	cs, err := correlations(frame)
	if err != nil {
		return fmt.Errorf("computing correlations: %w", err)
	}

	res := &CorrelationResult{
		Target:       dataset.ColMedianHouseValue,
		Correlations: cs,
	}
	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func correlations(frame dataset.Frame) ([]*stats.Correlation, error) {
	cols := make(map[string][]float64, len(describeColumns))
	for _, col := range describeColumns {
		cols[col] = frame.Column(col)
	}
	return stats.CorrelationsWith(dataset.ColMedianHouseValue, cols)
}
