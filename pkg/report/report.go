// Package report assembles the rendered EDA document: figures plus
// dataset and model summaries in a standalone HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/stats"
)

//go:embed templates/*
var embedFS embed.FS

// FileName is the report document name inside the output dir.
const FileName = "report.html"

// Figure is one rendered plot referenced from the document.
type Figure struct {
	Title string `json:"title"`
	File  string `json:"file"`
}

// Metric is a labeled value in a model summary table.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Model is a generic fitted-model summary.
type Model struct {
	Name    string   `json:"name"`
	Metrics []Metric `json:"metrics"`
}

// Data is everything the report template needs.
type Data struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	Source         string                `json:"source"`
	Rows           int64                 `json:"rows"`
	Imputed        int64                 `json:"imputed"`
	BedroomMedian  float64               `json:"bedroom_median"`
	ValueThreshold float64               `json:"value_threshold"`
	Summaries      []*stats.Summary      `json:"summaries"`
	Proximity      []*data.ProximityStat `json:"proximity"`
	Correlations   []*stats.Correlation  `json:"correlations"`
	Figures        []Figure              `json:"figures"`
	Models         []*Model              `json:"models"`
}

// Render writes the report document to path.
func Render(path string, d *Data) error {
	if d == nil {
		return fmt.Errorf("report data required")
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f4": func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}).ParseFS(embedFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("error parsing report template: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report file %s: %w", path, err)
	}
	defer out.Close()

	if err := tmpl.ExecuteTemplate(out, "report", d); err != nil {
		return fmt.Errorf("error rendering report: %w", err)
	}
	return nil
}
