package dataprocessing

import (
	"context"
	"math"

	"hydra/internal/tabular"
	"hydra/pkg/contracts/domain"
)

// Default bounds used when a directory holds no usable coordinates.
const (
	DefaultMinLat = -90.0
	DefaultMaxLat = 90.0
	DefaultMinLon = -180.0
	DefaultMaxLon = 180.0
)

// ComputeLatLonBounds scans the bottle directory and returns the latitude
// and longitude ranges spanned by the sensor coordinates, for use as map
// extents. Missing cells are skipped; with no data at all the full-globe
// defaults are returned.
func ComputeLatLonBounds(ctx context.Context, loader *tabular.Loader, dir, latColumn, lonColumn string) (latBounds, lonBounds domain.Range, err error) {
	collection, err := loader.LoadTables(ctx, dir, nil, []string{latColumn, lonColumn}, []string{latColumn, lonColumn})
	if err != nil {
		return domain.Range{}, domain.Range{}, err
	}

	latBounds = domain.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	lonBounds = domain.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	foundLat, foundLon := false, false
	for _, table := range collection {
		lats, _ := table.Floats(latColumn)
		lons, _ := table.Floats(lonColumn)
		for _, v := range lats {
			if math.IsNaN(v) {
				continue
			}
			foundLat = true
			latBounds.Min = math.Min(latBounds.Min, v)
			latBounds.Max = math.Max(latBounds.Max, v)
		}
		for _, v := range lons {
			if math.IsNaN(v) {
				continue
			}
			foundLon = true
			lonBounds.Min = math.Min(lonBounds.Min, v)
			lonBounds.Max = math.Max(lonBounds.Max, v)
		}
	}

	// Each axis falls back independently so one unusable column never
	// produces an inverted window on the other.
	if !foundLat {
		latBounds = domain.Range{Min: DefaultMinLat, Max: DefaultMaxLat}
	}
	if !foundLon {
		lonBounds = domain.Range{Min: DefaultMinLon, Max: DefaultMaxLon}
	}
	return latBounds, lonBounds, nil
}
