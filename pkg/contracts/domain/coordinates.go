package domain

// Coordinate is a single geographic position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CoordinateSequence is an ordered sample path for one station. Order is
// significant: it preserves the original row (temporal) order of the source
// table.
type CoordinateSequence []Coordinate

// CumulativeDistanceSequence holds running along-track distances in
// kilometers. It always has the same length as its source coordinate
// sequence and starts at zero.
type CumulativeDistanceSequence []float64

// Range is an inclusive numeric interval used for spatial selection.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the inclusive interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
