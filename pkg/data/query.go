package data

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hctl-dev/hctl/pkg/dataset"
)

const (
	selectBlocksSQL = `SELECT
			longitude, latitude, housing_median_age, total_rooms,
			total_bedrooms, population, households, median_income,
			median_house_value, ocean_proximity, rooms_per_household,
			bedrooms_per_room, population_per_household, value_level
		FROM block
		ORDER BY id`

	selectProximitySQL = `SELECT
			ocean_proximity,
			COUNT(*) as blocks,
			AVG(median_house_value) as avg_value,
			AVG(median_income) as avg_income
		FROM block
		GROUP BY ocean_proximity
		ORDER BY blocks DESC`
)

// CountBlocks returns the number of stored housing blocks.
func CountBlocks(db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM block").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count blocks")
	}
	return n, nil
}

// GetBlocks loads the full dataset back into a frame.
func GetBlocks(db *sql.DB) (dataset.Frame, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectBlocksSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query blocks")
	}
	defer rows.Close()

	frame := make(dataset.Frame, 0, 1024)
	for rows.Next() {
		b := &dataset.Block{}
		err := rows.Scan(
			&b.Longitude, &b.Latitude, &b.HousingMedianAge, &b.TotalRooms,
			&b.TotalBedrooms, &b.Population, &b.Households, &b.MedianIncome,
			&b.MedianHouseValue, &b.OceanProximity, &b.RoomsPerHousehold,
			&b.BedroomsPerRoom, &b.PopulationPerHousehold, &b.ValueLevel,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan block row")
		}
		frame = append(frame, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating block rows")
	}
	if len(frame) == 0 {
		return nil, errors.New("no blocks stored, run import first")
	}

	return frame, nil
}

// ProximityStat is the per-category aggregate for ocean_proximity.
type ProximityStat struct {
	OceanProximity string  `json:"ocean_proximity"`
	Blocks         int64   `json:"blocks"`
	AvgValue       float64 `json:"avg_value"`
	AvgIncome      float64 `json:"avg_income"`
}

// GetProximityStats returns aggregate stats grouped by proximity class.
func GetProximityStats(db *sql.DB) ([]*ProximityStat, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectProximitySQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query proximity stats")
	}
	defer rows.Close()

	out := make([]*ProximityStat, 0, 5)
	for rows.Next() {
		s := &ProximityStat{}
		if err := rows.Scan(&s.OceanProximity, &s.Blocks, &s.AvgValue, &s.AvgIncome); err != nil {
			return nil, errors.Wrap(err, "failed to scan proximity row")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating proximity rows")
	}

	return out, nil
}
