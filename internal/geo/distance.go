package geo

import (
	"github.com/golang/geo/s2"
	"github.com/pymaxion/geographiclib-go/geodesic"
	"github.com/umahmood/haversine"

	apperrors "hydra/internal/errors"
	"hydra/pkg/contracts/domain"
)

// Distance calculation methods.
const (
	MethodGeodesic    = "geodesic"
	MethodGreatCircle = "great_circle"
	MethodHaversine   = "haversine"
)

// AllowedMethods lists the accepted distance methods, in the order they are
// reported by InvalidMethodError.
var AllowedMethods = []string{MethodGeodesic, MethodGreatCircle, MethodHaversine}

// Mean Earth radius used for the great-circle method, in kilometers
// (IUGG mean radius, the same constant geodesy libraries default to).
const earthRadiusKm = 6371.009

// PairwiseDistance returns the distance between two coordinates in
// kilometers using the named method.
func PairwiseDistance(a, b domain.Coordinate, method string) (float64, error) {
	switch method {
	case MethodGeodesic:
		r := geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon)
		return r.S12 / 1000.0, nil
	case MethodGreatCircle:
		p := s2.LatLngFromDegrees(a.Lat, a.Lon)
		q := s2.LatLngFromDegrees(b.Lat, b.Lon)
		return p.Distance(q).Radians() * earthRadiusKm, nil
	case MethodHaversine:
		_, km := haversine.Distance(
			haversine.Coord{Lat: a.Lat, Lon: a.Lon},
			haversine.Coord{Lat: b.Lat, Lon: b.Lon},
		)
		return km, nil
	default:
		return 0, &apperrors.InvalidMethodError{Method: method, Allowed: AllowedMethods}
	}
}

// CumulativeDistances computes running along-track distances for an ordered
// coordinate sequence. The result has the same length as the input, starts
// at zero, and each subsequent element adds the pairwise distance from the
// previous coordinate. Empty and single-element inputs yield [0]. The input
// is never mutated.
func CumulativeDistances(coords domain.CoordinateSequence, method string) (domain.CumulativeDistanceSequence, error) {
	// Reject bad methods up front, even for trivially short inputs.
	if _, err := PairwiseDistance(domain.Coordinate{}, domain.Coordinate{}, method); err != nil {
		return nil, err
	}

	cumulative := domain.CumulativeDistanceSequence{0}
	for i := 1; i < len(coords); i++ {
		d, err := PairwiseDistance(coords[i-1], coords[i], method)
		if err != nil {
			return nil, err
		}
		cumulative = append(cumulative, cumulative[i-1]+d)
	}
	return cumulative, nil
}
