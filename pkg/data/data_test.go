package data

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hctl-dev/hctl/pkg/dataset"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))
	db, err := GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testFrame() dataset.Frame {
	return dataset.Frame{
		{
			Longitude: -122.23, Latitude: 37.88, HousingMedianAge: 41,
			TotalRooms: 880, TotalBedrooms: 129, Population: 322,
			Households: 126, MedianIncome: 8.3252, MedianHouseValue: 452600,
			OceanProximity: "NEAR BAY", RoomsPerHousehold: 6.98,
			BedroomsPerRoom: 0.146, PopulationPerHousehold: 2.55,
			ValueLevel: dataset.ValueLevelHigh,
		},
		{
			Longitude: -122.25, Latitude: 37.85, HousingMedianAge: 52,
			TotalRooms: 1627, TotalBedrooms: 280, Population: 565,
			Households: 259, MedianIncome: 3.8462, MedianHouseValue: 342200,
			OceanProximity: "INLAND", RoomsPerHousehold: 6.28,
			BedroomsPerRoom: 0.172, PopulationPerHousehold: 2.18,
			ValueLevel: dataset.ValueLevelLow,
		},
		{
			Longitude: -122.26, Latitude: 37.84, HousingMedianAge: 42,
			TotalRooms: 2555, TotalBedrooms: 665, Population: 1206,
			Households: 595, MedianIncome: 2.0804, MedianHouseValue: 226700,
			OceanProximity: "INLAND", RoomsPerHousehold: 4.29,
			BedroomsPerRoom: 0.26, PopulationPerHousehold: 2.03,
			ValueLevel: dataset.ValueLevelLow,
		},
	}
}

func TestInitErrors(t *testing.T) {
	assert.Error(t, Init(""))
}

func TestSaveAndGetBlocks(t *testing.T) {
	db := testDB(t)

	_, err := GetBlocks(db)
	assert.Error(t, err, "empty store")

	require.NoError(t, SaveBlocks(db, testFrame()))

	n, err := CountBlocks(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	f, err := GetBlocks(db)
	require.NoError(t, err)
	require.Len(t, f, 3)
	assert.Equal(t, -122.23, f[0].Longitude)
	assert.Equal(t, "NEAR BAY", f[0].OceanProximity)
	assert.Equal(t, dataset.ValueLevelHigh, f[0].ValueLevel)
	assert.Equal(t, 452600.0, f[0].MedianHouseValue)
}

func TestSaveBlocksErrors(t *testing.T) {
	db := testDB(t)
	assert.Error(t, SaveBlocks(nil, testFrame()))
	assert.Error(t, SaveBlocks(db, nil))
}

func TestClearBlocks(t *testing.T) {
	db := testDB(t)
	require.NoError(t, SaveBlocks(db, testFrame()))
	require.NoError(t, SaveImport(db, &Import{
		Source: "test", ImportedAt: time.Now(), Rows: 3,
	}))

	require.NoError(t, ClearBlocks(db))

	n, err := CountBlocks(db)
	require.NoError(t, err)
	assert.Zero(t, n)

	imp, err := GetLastImport(db)
	require.NoError(t, err)
	assert.Nil(t, imp)
}

func TestProximityStats(t *testing.T) {
	db := testDB(t)
	require.NoError(t, SaveBlocks(db, testFrame()))

	stats, err := GetProximityStats(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// sorted by block count descending
	assert.Equal(t, "INLAND", stats[0].OceanProximity)
	assert.Equal(t, int64(2), stats[0].Blocks)
	assert.InDelta(t, (342200.0+226700.0)/2, stats[0].AvgValue, 1e-6)
	assert.Equal(t, "NEAR BAY", stats[1].OceanProximity)
}

func TestImportState(t *testing.T) {
	db := testDB(t)

	imp, err := GetLastImport(db)
	require.NoError(t, err)
	assert.Nil(t, imp)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, SaveImport(db, &Import{
		Source:         "https://example.com/housing.csv",
		ImportedAt:     now,
		Rows:           20640,
		Imputed:        207,
		BedroomMedian:  435,
		ValueThreshold: 179700,
	}))

	imp, err = GetLastImport(db)
	require.NoError(t, err)
	require.NotNil(t, imp)
	assert.Equal(t, "https://example.com/housing.csv", imp.Source)
	assert.Equal(t, int64(20640), imp.Rows)
	assert.Equal(t, int64(207), imp.Imputed)
	assert.Equal(t, 435.0, imp.BedroomMedian)
	assert.True(t, imp.ImportedAt.Equal(now))

	assert.Error(t, SaveImport(db, nil))
	assert.Error(t, SaveImport(db, &Import{}))
}
