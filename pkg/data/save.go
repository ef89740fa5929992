package data

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hctl-dev/hctl/pkg/dataset"
)

const insertBlockSQL = `INSERT INTO block (
		longitude, latitude, housing_median_age, total_rooms,
		total_bedrooms, population, households, median_income,
		median_house_value, ocean_proximity, rooms_per_household,
		bedrooms_per_room, population_per_household, value_level
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveBlocks inserts the frame in a single transaction.
func SaveBlocks(db *sql.DB, f dataset.Frame) error {
	if db == nil {
		return errDBNotInitialized
	}
	if len(f) == 0 {
		return errors.New("nothing to save")
	}

	stmt, err := db.Prepare(insertBlockSQL)
	if err != nil {
		return errors.Wrap(err, "failed to prepare block insert statement")
	}
	defer stmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	for _, b := range f {
		_, err = tx.Stmt(stmt).Exec(
			b.Longitude, b.Latitude, b.HousingMedianAge, b.TotalRooms,
			b.TotalBedrooms, b.Population, b.Households, b.MedianIncome,
			b.MedianHouseValue, b.OceanProximity, b.RoomsPerHousehold,
			b.BedroomsPerRoom, b.PopulationPerHousehold, b.ValueLevel,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Wrap(rbErr, "failed to rollback transaction")
			}
			return errors.Wrap(err, "failed to execute block insert")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// ClearBlocks removes all stored blocks and import state; each import
// replaces the previous dataset.
func ClearBlocks(db *sql.DB) error {
	if db == nil {
		return errDBNotInitialized
	}
	if _, err := db.Exec("DELETE FROM block"); err != nil {
		return errors.Wrap(err, "failed to clear blocks")
	}
	if _, err := db.Exec("DELETE FROM import_state"); err != nil {
		return errors.Wrap(err, "failed to clear import state")
	}
	return nil
}
