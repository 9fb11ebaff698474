package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testField() *GriddedField {
	return &GriddedField{
		Name: "bathy.nc",
		Lats: []float64{10, 20, 30, 40},
		Lons: []float64{-60, -50, -40},
		Vars: map[string][][]float64{
			"elevation": {
				{-100, -101, -102},
				{-110, -111, -112},
				{-120, -121, -122},
				{-130, -131, -132},
			},
		},
	}
}

func TestHasAxes(t *testing.T) {
	assert.True(t, testField().HasAxes())
	assert.False(t, (&GriddedField{Lons: []float64{1}}).HasAxes())
	assert.False(t, (&GriddedField{Lats: []float64{1}}).HasAxes())
}

func TestSubsetInclusiveBounds(t *testing.T) {
	sub := testField().Subset(Range{Min: 20, Max: 30}, Range{Min: -50, Max: -40})

	assert.Equal(t, []float64{20, 30}, sub.Lats)
	assert.Equal(t, []float64{-50, -40}, sub.Lons)
	require.Contains(t, sub.Vars, "elevation")
	assert.Equal(t, [][]float64{
		{-111, -112},
		{-121, -122},
	}, sub.Vars["elevation"])
}

func TestSubsetEmptyWindow(t *testing.T) {
	sub := testField().Subset(Range{Min: 90, Max: 91}, Range{Min: -60, Max: -40})
	assert.Empty(t, sub.Lats)
	assert.Empty(t, sub.Vars["elevation"])
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: -5, Max: 5}
	assert.True(t, r.Contains(-5))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(5.0001))
}
