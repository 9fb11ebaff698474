package domain

// BottleTypeMap maps a station identifier to the bottle numbers sampled for
// each category label, e.g. {"PS137_018": {"DNA": [1, 2], "Hydrogen": [3]}}.
// It is read-only input to the type assigner.
type BottleTypeMap map[string]map[string][]int

// Categories returns the category labels for one station, or nil if the
// station has no entry.
func (m BottleTypeMap) Categories(station string) map[string][]int {
	return m[station]
}
