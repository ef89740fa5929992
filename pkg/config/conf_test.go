package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, DatasetURLDefault, c1.Source)
	assert.Equal(t, 0.2, c1.TestRatio)

	c1.Seed = 7
	c1.OutDir = "out"
	c1.HistBins = 20

	err = Save(dir, c1)
	require.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, c1.Seed, c2.Seed)
	assert.Equal(t, c1.OutDir, c2.OutDir)
	assert.Equal(t, c1.HistBins, c2.HistBins)
}

func TestConfigDefaultsFillGaps(t *testing.T) {
	dir := t.TempDir()

	err := Save(dir, &Config{Seed: 1, TestRatio: 2.5})
	require.NoError(t, err)

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, DatasetURLDefault, c.Source)
	assert.Equal(t, 0.2, c.TestRatio, "out of range ratio replaced by default")
	assert.Equal(t, int64(1), c.Seed)
}

func TestConfigErrors(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	err = Save("", &Config{})
	assert.Error(t, err)

	err = Save(filepath.Join(t.TempDir()), nil)
	assert.Error(t, err)
}
