package bottletypes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydra/pkg/contracts/domain"
)

func bottleTable(t *testing.T, bottles ...string) *domain.Table {
	t.Helper()
	records := make([][]string, len(bottles))
	for i, b := range bottles {
		records[i] = []string{b}
	}
	table := domain.NewTable([]string{"Bottle"}, records)
	table.Coerce("Bottle")
	return table
}

func typeColumn(t *testing.T, table *domain.Table) []string {
	t.Helper()
	col, ok := table.Strings(TypeColumn)
	require.True(t, ok, "Bottle_Type column missing")
	return col
}

func TestAssignTypes(t *testing.T) {
	coll := domain.Collection{"S1": bottleTable(t, "1", "2", "3")}
	typeMap := domain.BottleTypeMap{
		"S1": {"A": []int{1}, "B": []int{2}},
	}

	assigner := NewAssigner(nil, LastMatchWins, "")
	got, warnings := assigner.AssignTypes(coll, typeMap)

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"A", "B", "Unknown"}, typeColumn(t, got["S1"]))
}

func TestAssignTypesTieBreak(t *testing.T) {
	typeMap := domain.BottleTypeMap{
		// Bottle 1 is claimed by both categories; they are applied in
		// sorted label order (A then B).
		"S1": {"A": []int{1}, "B": []int{1}},
	}

	tests := []struct {
		name   string
		policy Policy
		want   string
	}{
		{name: "last match wins", policy: LastMatchWins, want: "B"},
		{name: "first match wins", policy: FirstMatchWins, want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := domain.Collection{"S1": bottleTable(t, "1")}
			assigner := NewAssigner(nil, tt.policy, "")
			got, _ := assigner.AssignTypes(coll, typeMap)
			assert.Equal(t, []string{tt.want}, typeColumn(t, got["S1"]))
		})
	}
}

func TestAssignTypesStationNotInMap(t *testing.T) {
	coll := domain.Collection{"S1": bottleTable(t, "1")}

	assigner := NewAssigner(nil, LastMatchWins, "")
	got, warnings := assigner.AssignTypes(coll, domain.BottleTypeMap{})

	// Passed through untouched: no Bottle_Type column.
	assert.False(t, got["S1"].HasColumn(TypeColumn))
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnStationNotInTypeMap, warnings[0].Code)
	assert.Equal(t, "S1", warnings[0].Station)
}

func TestAssignTypesStationNotInData(t *testing.T) {
	coll := domain.Collection{}
	typeMap := domain.BottleTypeMap{"S9": {"DNA": []int{1}}}

	assigner := NewAssigner(nil, LastMatchWins, "")
	_, warnings := assigner.AssignTypes(coll, typeMap)

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnStationNotInData, warnings[0].Code)
	assert.Equal(t, "S9", warnings[0].Station)
}

func TestAssignTypesUnmatchedBottleNumber(t *testing.T) {
	coll := domain.Collection{"S1": bottleTable(t, "1", "2")}
	typeMap := domain.BottleTypeMap{"S1": {"Hydrogen": []int{7}}}

	assigner := NewAssigner(nil, LastMatchWins, "")
	got, warnings := assigner.AssignTypes(coll, typeMap)

	assert.Equal(t, []string{"Unknown", "Unknown"}, typeColumn(t, got["S1"]))
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnBottleNumberUnmatched, warnings[0].Code)
}

func TestAssignTypesMutatesInPlace(t *testing.T) {
	table := bottleTable(t, "1")
	coll := domain.Collection{"S1": table}
	typeMap := domain.BottleTypeMap{"S1": {"DNA": []int{1}}}

	assigner := NewAssigner(nil, LastMatchWins, "")
	got, _ := assigner.AssignTypes(coll, typeMap)

	// The contract is in-place mutation, not copy-on-write.
	assert.Same(t, table, got["S1"])
	assert.True(t, table.HasColumn(TypeColumn))
}

func TestLoadTypeMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"PS137_018": {"DNA": [1, 2], "Hydrogen": [3]}}`), 0o644))

	m, err := LoadTypeMap(path)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, m["PS137_018"]["DNA"])
	assert.Equal(t, []int{3}, m["PS137_018"]["Hydrogen"])

	_, err = LoadTypeMap(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
