package tabular

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hydra/internal/errors"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStationKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		suffixes []string
		want     string
	}{
		{
			name:     "strips first matching suffix",
			filename: "PS137_018_01_btl.csv",
			suffixes: []string{"_01_btl", "_02_btl"},
			want:     "PS137_018",
		},
		{
			name:     "second suffix in list order",
			filename: "PS137_022_02_btl.csv",
			suffixes: []string{"_01_btl", "_02_btl"},
			want:     "PS137_022",
		},
		{
			name:     "first match wins over longer later match",
			filename: "st1_btl.csv",
			suffixes: []string{"_btl", "1_btl"},
			want:     "st1",
		},
		{
			name:     "no suffix matches",
			filename: "station.csv",
			suffixes: []string{"_01_btl"},
			want:     "station",
		},
		{
			name:     "xlsx extension stripped",
			filename: "PS137_018_01_btl.xlsx",
			suffixes: []string{"_01_btl"},
			want:     "PS137_018",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StationKey(tt.filename, tt.suffixes))
		})
	}
}

func TestLoadTablesEmptyDirectory(t *testing.T) {
	loader := NewLoader(nil)

	got, err := loader.LoadTables(context.Background(), t.TempDir(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTablesIgnoresNonTabularFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o644))

	loader := NewLoader(nil)
	got, err := loader.LoadTables(context.Background(), dir, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTablesCoercesNumericColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "st1_01_btl.csv",
		"CTD_lat,CTD_lon,Bottle\n40.7128,-74.006,1\nbad,-74.0,2\n,-73.9,3\n")

	loader := NewLoader(nil)
	got, err := loader.LoadTables(context.Background(), dir,
		[]string{"_01_btl"}, []string{"CTD_lat", "CTD_lon", "Bottle"}, nil)
	require.NoError(t, err)
	require.Contains(t, got, "st1")

	table := got["st1"]
	assert.Equal(t, 3, table.NumRows())

	lats, ok := table.Floats("CTD_lat")
	require.True(t, ok)
	assert.Equal(t, 40.7128, lats[0])
	assert.True(t, math.IsNaN(lats[1]), "unparseable cell should coerce to NaN")
	assert.True(t, math.IsNaN(lats[2]), "empty cell should coerce to NaN")

	bottles, ok := table.Floats("Bottle")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, bottles)
}

func TestLoadTablesMissingRequiredColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a_station.csv", "CTD_lat,CTD_lon\n1,2\n")

	loader := NewLoader(nil)
	_, err := loader.LoadTables(context.Background(), dir,
		nil, nil, []string{"CTD_lat", "CTD_lon", "Bottle", "TimeS_mean"})

	var mce *apperrors.MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "a_station.csv", mce.File)
	assert.Equal(t, []string{"Bottle", "TimeS_mean"}, mce.Columns)
}

func TestLoadTablesReportsFirstOffendingFileInListingOrder(t *testing.T) {
	dir := t.TempDir()
	// Directory listing is name-sorted; both files are invalid, the first
	// one must be named.
	writeCSV(t, dir, "a_station.csv", "CTD_lat\n1\n")
	writeCSV(t, dir, "b_station.csv", "CTD_lat\n2\n")

	loader := NewLoader(nil)
	_, err := loader.LoadTables(context.Background(), dir, nil, nil, []string{"Bottle"})

	var mce *apperrors.MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, "a_station.csv", mce.File)
}

func TestLoadTablesXLSX(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"CTD_lat", "CTD_lon", "Bottle"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{51.5074, -0.1278, 1}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "st2_01_btl.xlsx")))
	require.NoError(t, f.Close())

	loader := NewLoader(nil)
	got, err := loader.LoadTables(context.Background(), dir,
		[]string{"_01_btl"}, []string{"CTD_lat", "CTD_lon"}, []string{"CTD_lat", "CTD_lon", "Bottle"})
	require.NoError(t, err)
	require.Contains(t, got, "st2")

	lats, ok := got["st2"].Floats("CTD_lat")
	require.True(t, ok)
	require.Len(t, lats, 1)
	assert.InDelta(t, 51.5074, lats[0], 1e-9)
}

func TestLoadTablesRoundTripKey(t *testing.T) {
	dir := t.TempDir()
	suffixes := []string{"_01_btl", "_02_btl"}
	filename := "PS137_040_02_btl.csv"
	writeCSV(t, dir, filename, "Bottle\n1\n")

	loader := NewLoader(nil)
	got, err := loader.LoadTables(context.Background(), dir, suffixes, nil, nil)
	require.NoError(t, err)

	// Re-deriving the key from the original filename reproduces the
	// collection entry.
	assert.Contains(t, got, StationKey(filename, suffixes))
}
