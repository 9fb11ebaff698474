// Package dataprocessing provides transformations over loaded station
// collections: combination into a single tagged table, row filtering, and
// coordinate-bound computation.
package dataprocessing

import (
	"math"
	"sort"

	apperrors "hydra/internal/errors"
	"hydra/pkg/contracts/domain"
)

// Combine concatenates every station table in the collection into a single
// table, appending a station-identifier column to every row. Input tables
// are copied, never mutated. The resulting column set is the union of all
// input columns; the row count is the sum of the inputs. Stations are
// concatenated in sorted-key order so the result is deterministic.
func Combine(collection domain.Collection, stationIDColumn string) *domain.Table {
	stations := make([]string, 0, len(collection))
	for station := range collection {
		stations = append(stations, station)
	}
	sort.Strings(stations)

	tagged := make([]*domain.Table, 0, len(stations))
	for _, station := range stations {
		t := collection[station].Copy()
		ids := make([]string, t.NumRows())
		for i := range ids {
			ids[i] = station
		}
		t.SetStringColumn(stationIDColumn, ids)
		tagged = append(tagged, t)
	}
	return domain.Concat(tagged)
}

// ExtractCoordinates reads the (lat, lon) sample path of one table in row
// order from the named columns. Columns that were coerced use their numeric
// form; otherwise cells are parsed on the fly.
func ExtractCoordinates(t *domain.Table, latColumn, lonColumn string) (domain.CoordinateSequence, error) {
	lats, err := numericColumn(t, latColumn)
	if err != nil {
		return nil, err
	}
	lons, err := numericColumn(t, lonColumn)
	if err != nil {
		return nil, err
	}

	coords := make(domain.CoordinateSequence, t.NumRows())
	for i := range coords {
		coords[i] = domain.Coordinate{Lat: lats[i], Lon: lons[i]}
	}
	return coords, nil
}

// FilterByColumnMin returns a copy of the table keeping only rows whose
// value in the named numeric column is at least min. Rows with missing
// (NaN) values are dropped. A missing column is a schema error.
func FilterByColumnMin(t *domain.Table, column string, min float64) (*domain.Table, error) {
	vals, err := numericColumn(t, column)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, t.NumRows())
	for i, v := range vals {
		keep[i] = !math.IsNaN(v) && v >= min
	}
	return t.FilterRows(keep), nil
}

func numericColumn(t *domain.Table, name string) ([]float64, error) {
	if vals, ok := t.Floats(name); ok {
		return vals, nil
	}
	raw, ok := t.Strings(name)
	if !ok {
		return nil, &apperrors.MissingColumnsError{Columns: []string{name}}
	}
	vals := make([]float64, len(raw))
	for i, cell := range raw {
		vals[i] = domain.ParseNumeric(cell)
	}
	return vals, nil
}
