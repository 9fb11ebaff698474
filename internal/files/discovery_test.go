package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestFindTableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "st1_01_btl.csv")
	writeFile(t, dir, "st2_02_btl.CSV")
	writeFile(t, dir, "survey.xlsx")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "bathy.nc")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	found, err := FindTableFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"st1_01_btl.csv", "st2_02_btl.CSV", "survey.xlsx"}, names)
}

func TestFindGridFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gebco.nc")
	writeFile(t, dir, "old_grid.netcdf")
	writeFile(t, dir, "table.csv")

	found, err := FindGridFiles(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "gebco.nc", found[0].Name)
	assert.Equal(t, "old_grid.netcdf", found[1].Name)
}

func TestFindByExtensionsEmptyAndMissing(t *testing.T) {
	dir := t.TempDir()

	found, err := FindTableFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = FindTableFiles(filepath.Join(dir, "does-not-exist"))
	assert.Error(t, err)
}
