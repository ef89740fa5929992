package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	// DatasetURLDefault is the canonical location of the California
	// housing CSV used when no source is configured.
	DatasetURLDefault = "https://raw.githubusercontent.com/ageron/handson-ml2/master/datasets/housing/housing.csv"

	testRatioDefault = 0.2
	seedDefault      = 42
	histBinsDefault  = 30
)

// Config represents the app config persisted in the hctl home dir.
type Config struct {
	Source    string  `yaml:"source"`
	OutDir    string  `yaml:"out_dir"`
	Seed      int64   `yaml:"seed"`
	TestRatio float64 `yaml:"test_ratio"`
	HistBins  int     `yaml:"hist_bins"`
}

func getDefaultConfig() *Config {
	return &Config{
		Source:    DatasetURLDefault,
		OutDir:    "report",
		Seed:      seedDefault,
		TestRatio: testRatioDefault,
		HistBins:  histBinsDefault,
	}
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one
// with defaults.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("failed to create dir %s: %w", dirPath, err)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}

	// fill gaps left by hand-edited files
	d := getDefaultConfig()
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.OutDir == "" {
		c.OutDir = d.OutDir
	}
	if c.TestRatio <= 0 || c.TestRatio >= 1 {
		c.TestRatio = d.TestRatio
	}
	if c.HistBins <= 0 {
		c.HistBins = d.HistBins
	}

	return &c, nil
}

// GetOrCreateHomeDir returns the home directory for the app,
// creating it when missing. The created flag is set to true if the
// directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
