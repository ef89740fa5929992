package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/dataset"
	"github.com/hctl-dev/hctl/pkg/net"
)

const csvFileName = "housing.csv"

var (
	srcFlag = &urfave.StringFlag{
		Name:  "src",
		Usage: "URL of the housing CSV (defaults to the configured source)",
	}

	freshFlag = &urfave.BoolFlag{
		Name:  "fresh",
		Usage: "Re-download the CSV even if a local copy exists",
	}

	importCmd = &urfave.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Download the housing dataset, clean it, and store it locally",
		UsageText: `hctl import                 # download (or reuse cached CSV), clean, store
   hctl import --fresh         # force re-download
   hctl import --src URL       # import from an alternate location`,
		Action: cmdImport,
		Flags: []urfave.Flag{
			srcFlag,
			freshFlag,
		},
	}
)

// ImportResult summarizes one import run.
type ImportResult struct {
	Source         string  `json:"source"`
	Rows           int     `json:"rows"`
	Imputed        int     `json:"imputed"`
	BedroomMedian  float64 `json:"bedroom_median"`
	ValueThreshold float64 `json:"value_threshold"`
	Duration       string  `json:"duration"`
}

func cmdImport(c *urfave.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	src := c.String(srcFlag.Name)
	if src == "" {
		src = cfg.Conf.Source
	}

	csvPath := filepath.Join(cfg.Home, csvFileName)
	if _, err := os.Stat(csvPath); c.Bool(freshFlag.Name) || errors.Is(err, os.ErrNotExist) {
		slog.Info("downloading dataset", "src", src)
		if err := net.Download(src, csvPath); err != nil {
			return fmt.Errorf("downloading dataset: %w", err)
		}
	} else {
		slog.Info("using cached dataset", "path", csvPath)
	}

	frame, err := dataset.ParseFile(csvPath)
	if err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}
	slog.Info("parsed dataset", "rows", len(frame), "missing_bedrooms", frame.MissingBedrooms())

	imp, err := dataset.ImputeBedrooms(frame)
	if err != nil {
		return fmt.Errorf("imputing total_bedrooms: %w", err)
	}
	slog.Info("imputed total_bedrooms", "missing", imp.Missing, "median", imp.Median)

	if err := dataset.Derive(frame); err != nil {
		return fmt.Errorf("deriving features: %w", err)
	}

	threshold, err := dataset.LabelValueLevels(frame)
	if err != nil {
		return fmt.Errorf("labeling value levels: %w", err)
	}

	// each import replaces the stored dataset
	if err := data.ClearBlocks(cfg.DB); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	if err := data.SaveBlocks(cfg.DB, frame); err != nil {
		return fmt.Errorf("saving blocks: %w", err)
	}
	if err := data.SaveImport(cfg.DB, &data.Import{
		Source:         src,
		ImportedAt:     start,
		Rows:           int64(imp.Rows),
		Imputed:        int64(imp.Missing),
		BedroomMedian:  imp.Median,
		ValueThreshold: threshold,
	}); err != nil {
		return fmt.Errorf("saving import state: %w", err)
	}
	slog.Info("stored dataset", "rows", len(frame), "db", cfg.DBPath)

	res := &ImportResult{
		Source:         src,
		Rows:           imp.Rows,
		Imputed:        imp.Missing,
		BedroomMedian:  imp.Median,
		ValueThreshold: threshold,
		Duration:       time.Since(start).String(),
	}
	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
