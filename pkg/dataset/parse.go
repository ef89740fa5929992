package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads a housing CSV from disk.
func ParseFile(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the housing CSV, validating the header against the
// expected columns. Empty total_bedrooms fields become NaN; any other
// empty or malformed numeric field is an error.
func Parse(r io.Reader) (Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading dataset header: %w", err)
	}
	for i, name := range Columns {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	frame := make(Frame, 0, 1024)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading dataset row %d: %w", line, err)
		}

		b, err := parseBlock(rec)
		if err != nil {
			return nil, fmt.Errorf("error parsing dataset row %d: %w", line, err)
		}
		frame = append(frame, b)
	}

	if len(frame) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}

	return frame, nil
}

func parseBlock(rec []string) (*Block, error) {
	b := &Block{}
	for i, name := range NumericColumns {
		raw := strings.TrimSpace(rec[i])
		if raw == "" {
			if name == ColTotalBedrooms {
				b.TotalBedrooms = math.NaN()
				continue
			}
			return nil, fmt.Errorf("missing value in column %s", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in column %s: %w", raw, name, err)
		}
		setColumn(b, name, v)
	}
	b.OceanProximity = strings.TrimSpace(rec[len(Columns)-1])
	if b.OceanProximity == "" {
		return nil, fmt.Errorf("missing value in column %s", ColOceanProximity)
	}
	return b, nil
}

func setColumn(b *Block, name string, v float64) {
	switch name {
	case ColLongitude:
		b.Longitude = v
	case ColLatitude:
		b.Latitude = v
	case ColHousingMedianAge:
		b.HousingMedianAge = v
	case ColTotalRooms:
		b.TotalRooms = v
	case ColTotalBedrooms:
		b.TotalBedrooms = v
	case ColPopulation:
		b.Population = v
	case ColHouseholds:
		b.Households = v
	case ColMedianIncome:
		b.MedianIncome = v
	case ColMedianHouseValue:
		b.MedianHouseValue = v
	}
}
