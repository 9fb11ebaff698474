package domain

import "fmt"

// Warning is a soft diagnostic produced while assembling a bundle. Soft
// conditions (a station missing from the bottle-type map, a listed bottle
// number matching no row) are reported here instead of being printed or
// raised.
type Warning struct {
	Code    string `json:"code"`
	Station string `json:"station,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Station != "" {
		return fmt.Sprintf("%s [%s]: %s", w.Code, w.Station, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warning codes.
const (
	WarnStationNotInTypeMap   = "station_not_in_type_map"
	WarnStationNotInData      = "station_not_in_data"
	WarnBottleNumberUnmatched = "bottle_number_unmatched"
)

// DataBundle is the integrator's output and the sole interface handed to
// plotting consumers. CumulativeDistances is nil unless distance computation
// was requested.
type DataBundle struct {
	BottleData          Collection
	ProfileData         Collection
	Bathymetry          *GriddedField
	CombinedBottleData  *Table
	CTDCoordinates      map[string]CoordinateSequence
	CumulativeDistances map[string]CumulativeDistanceSequence
	Warnings            []Warning
}
