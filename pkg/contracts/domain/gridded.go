package domain

// GriddedField is an array-based field (bathymetry) with named latitude and
// longitude axes and one or more named 2-D data variables dimensioned
// [lat][lon].
type GriddedField struct {
	Name string
	Lats []float64
	Lons []float64
	Vars map[string][][]float64
}

// HasAxes reports whether both coordinate axes are present.
func (f *GriddedField) HasAxes() bool {
	return len(f.Lats) > 0 && len(f.Lons) > 0
}

// Subset returns the inclusive bounding-box selection of the field along
// both axes. Axis values outside the ranges are dropped together with the
// corresponding rows/columns of every variable.
func (f *GriddedField) Subset(latRange, lonRange Range) *GriddedField {
	var latIdx, lonIdx []int
	for i, v := range f.Lats {
		if latRange.Contains(v) {
			latIdx = append(latIdx, i)
		}
	}
	for j, v := range f.Lons {
		if lonRange.Contains(v) {
			lonIdx = append(lonIdx, j)
		}
	}

	out := &GriddedField{
		Name: f.Name,
		Lats: make([]float64, len(latIdx)),
		Lons: make([]float64, len(lonIdx)),
		Vars: make(map[string][][]float64, len(f.Vars)),
	}
	for n, i := range latIdx {
		out.Lats[n] = f.Lats[i]
	}
	for n, j := range lonIdx {
		out.Lons[n] = f.Lons[j]
	}
	for name, grid := range f.Vars {
		sub := make([][]float64, len(latIdx))
		for n, i := range latIdx {
			row := make([]float64, len(lonIdx))
			if i < len(grid) {
				for m, j := range lonIdx {
					if j < len(grid[i]) {
						row[m] = grid[i][j]
					}
				}
			}
			sub[n] = row
		}
		out.Vars[name] = sub
	}
	return out
}
