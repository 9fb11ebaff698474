// Package geo implements coordinate validation and along-track distance
// computation for station sample paths.
package geo

import (
	"math"

	apperrors "hydra/internal/errors"
)

const (
	minLat = -90.0
	maxLat = 90.0
	minLon = -180.0
	maxLon = 180.0
)

// ValidateCoordinates checks that the latitude and longitude sequences have
// equal length, that every value is numeric, and that every value lies in
// its valid domain. NaN and infinities count as non-numeric: NaN is the
// loaders' missing-value marker and must never be silently range-checked.
// On success it returns nil and has no side effects.
func ValidateCoordinates(latitudes, longitudes []float64) error {
	if len(latitudes) != len(longitudes) {
		return &apperrors.LengthMismatchError{
			LatCount: len(latitudes),
			LonCount: len(longitudes),
		}
	}

	for i, lat := range latitudes {
		if math.IsNaN(lat) || math.IsInf(lat, 0) {
			return &apperrors.TypeMismatchError{Axis: "latitude", Index: i, Value: lat}
		}
		if lat < minLat || lat > maxLat {
			return &apperrors.RangeError{Axis: "latitude", Index: i, Value: lat, Min: minLat, Max: maxLat}
		}
	}

	for i, lon := range longitudes {
		if math.IsNaN(lon) || math.IsInf(lon, 0) {
			return &apperrors.TypeMismatchError{Axis: "longitude", Index: i, Value: lon}
		}
		if lon < minLon || lon > maxLon {
			return &apperrors.RangeError{Axis: "longitude", Index: i, Value: lon, Min: minLon, Max: maxLon}
		}
	}

	return nil
}
