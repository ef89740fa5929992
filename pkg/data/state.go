package data

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

const (
	insertImportSQL = `INSERT INTO import_state
		(source, imported_at, rows, imputed, bedroom_median, value_threshold)
		VALUES (?, ?, ?, ?, ?, ?)`

	selectImportSQL = `SELECT source, imported_at, rows, imputed, bedroom_median, value_threshold
		FROM import_state ORDER BY id DESC LIMIT 1`
)

// Import records one dataset import.
type Import struct {
	Source         string    `json:"source"`
	ImportedAt     time.Time `json:"imported_at"`
	Rows           int64     `json:"rows"`
	Imputed        int64     `json:"imputed"`
	BedroomMedian  float64   `json:"bedroom_median"`
	ValueThreshold float64   `json:"value_threshold"`
}

// SaveImport appends an import record.
func SaveImport(db *sql.DB, imp *Import) error {
	if db == nil {
		return errDBNotInitialized
	}
	if imp == nil || imp.Source == "" {
		return errors.New("import with source required")
	}

	_, err := db.Exec(insertImportSQL,
		imp.Source, imp.ImportedAt.UTC().Format(time.RFC3339),
		imp.Rows, imp.Imputed, imp.BedroomMedian, imp.ValueThreshold)
	if err != nil {
		return errors.Wrap(err, "failed to insert import state")
	}
	return nil
}

// GetLastImport returns the most recent import record, or nil when the
// store is empty.
func GetLastImport(db *sql.DB) (*Import, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	imp := &Import{}
	var importedAt string
	err := db.QueryRow(selectImportSQL).Scan(
		&imp.Source, &importedAt, &imp.Rows, &imp.Imputed,
		&imp.BedroomMedian, &imp.ValueThreshold)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to scan import state")
	}

	imp.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse import timestamp")
	}

	return imp, nil
}
