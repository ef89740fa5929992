package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/stats"
)

func TestRender(t *testing.T) {
	d := &Data{
		GeneratedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:         "https://example.com/housing.csv",
		Rows:           20640,
		Imputed:        207,
		BedroomMedian:  435,
		ValueThreshold: 179700,
		Summaries: []*stats.Summary{
			{Column: "median_income", Count: 20640, Mean: 3.87, Std: 1.9, Min: 0.5, Q1: 2.56, Median: 3.53, Q3: 4.74, Max: 15},
		},
		Proximity: []*data.ProximityStat{
			{OceanProximity: "INLAND", Blocks: 6551, AvgValue: 124805, AvgIncome: 3.2},
		},
		Correlations: []*stats.Correlation{
			{Column: "median_income", With: "median_house_value", R: 0.688},
		},
		Figures: []Figure{
			{Title: "Distribution of median_income", File: "hist_median_income.png"},
		},
		Models: []*Model{
			{Name: "Linear regression", Metrics: []Metric{{Label: "RMSE", Value: "68433.12"}}},
		},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Render(path, d))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, "California Housing Report")
	assert.Contains(t, html, "median_income")
	assert.Contains(t, html, "INLAND")
	assert.Contains(t, html, "0.6880")
	assert.Contains(t, html, "hist_median_income.png")
	assert.Contains(t, html, "Linear regression")
	assert.Contains(t, html, "20640")
}

func TestRenderErrors(t *testing.T) {
	assert.Error(t, Render(filepath.Join(t.TempDir(), FileName), nil))
	assert.Error(t, Render(filepath.Join(t.TempDir(), "missing", FileName), &Data{}))
}
