package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"_01_btl", "_02_btl"}, cfg.Schemas.BottleSuffixes)
	assert.Equal(t, []string{"_01_cnv", "_02_cnv"}, cfg.Schemas.ProfileSuffixes)
	assert.Contains(t, cfg.Schemas.BottleRequiredColumns, "TimeS_mean")
	assert.Contains(t, cfg.Schemas.ProfileRequiredColumns, "upoly0")
	assert.Contains(t, cfg.Schemas.ProfileRequiredColumns, "CTD_depth")
	assert.Equal(t, []string{"elevation"}, cfg.Bathymetry.Variables)
	assert.Equal(t, "haversine", cfg.Distance.Method)
	assert.Equal(t, "last", cfg.Bottles.TypePriority)

	require.NoError(t, cfg.Validate())
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydra.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bathymetry:\n  variables: [depth]\ndistance:\n  method: geodesic\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"depth"}, cfg.Bathymetry.Variables)
	assert.Equal(t, "geodesic", cfg.Distance.Method)
	// Untouched sections keep their defaults.
	assert.Equal(t, "Station_ID", cfg.Schemas.StationIDColumn)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydra.yml")
	require.NoError(t, os.WriteFile(path, []byte("distance:\n  method: geodesic\n"), 0o644))

	t.Setenv("HYDRA_DISTANCE_METHOD", "great_circle")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "great_circle", cfg.Distance.Method)
}

func TestLoadRejectsInvalidMethod(t *testing.T) {
	t.Setenv("HYDRA_DISTANCE_METHOD", "euclidean")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
