package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, appName, app.Name)

	want := []string{"import", "query", "plot", "model", "report", "server"}
	require.Len(t, app.Commands, len(want))
	for i, name := range want {
		assert.Equal(t, name, app.Commands[i].Name)
	}
}

func TestEncode(t *testing.T) {
	outputFormat = formatJSON
	assert.NoError(t, encode(map[string]string{"test": "value"}))

	outputFormat = formatYAML
	assert.NoError(t, encode(map[string]string{"test": "value"}))
	outputFormat = formatJSON
}

func TestDescribeColumns(t *testing.T) {
	// derived columns follow the source columns
	require.Greater(t, len(describeColumns), 3)
	assert.Equal(t, "rooms_per_household", describeColumns[len(describeColumns)-3])
	assert.Equal(t, "bedrooms_per_room", describeColumns[len(describeColumns)-2])
	assert.Equal(t, "population_per_household", describeColumns[len(describeColumns)-1])
}
