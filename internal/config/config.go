// Package config holds the pipeline configuration: schema contracts for the
// tabular loaders, bathymetry parameters, distance settings, and logging.
// There is no process-wide mutable configuration; callers build one Config
// per run and pass it down explicitly.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete pipeline configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Schemas    SchemaConfig     `yaml:"schemas" envconfig:"SCHEMAS"`
	Bathymetry BathymetryConfig `yaml:"bathymetry" envconfig:"BATHYMETRY"`
	Distance   DistanceConfig   `yaml:"distance" envconfig:"DISTANCE"`
	Bottles    BottleConfig     `yaml:"bottles" envconfig:"BOTTLES"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SchemaConfig holds the canonical column contracts. The required-column
// lists changed between historical versions of the loaders; they are
// configuration with documented defaults, not constants.
type SchemaConfig struct {
	BottleSuffixes         []string `yaml:"bottle_suffixes" envconfig:"BOTTLE_SUFFIXES"`
	ProfileSuffixes        []string `yaml:"profile_suffixes" envconfig:"PROFILE_SUFFIXES"`
	BottleNumericColumns   []string `yaml:"bottle_numeric_columns" envconfig:"BOTTLE_NUMERIC_COLUMNS" validate:"min=1"`
	BottleRequiredColumns  []string `yaml:"bottle_required_columns" envconfig:"BOTTLE_REQUIRED_COLUMNS" validate:"min=1"`
	ProfileNumericColumns  []string `yaml:"profile_numeric_columns" envconfig:"PROFILE_NUMERIC_COLUMNS" validate:"min=1"`
	ProfileRequiredColumns []string `yaml:"profile_required_columns" envconfig:"PROFILE_REQUIRED_COLUMNS" validate:"min=1"`
	StationIDColumn        string   `yaml:"station_id_column" envconfig:"STATION_ID_COLUMN" validate:"required"`
	BottleColumn           string   `yaml:"bottle_column" envconfig:"BOTTLE_COLUMN" validate:"required"`
	CTDLatColumn           string   `yaml:"ctd_lat_column" envconfig:"CTD_LAT_COLUMN" validate:"required"`
	CTDLonColumn           string   `yaml:"ctd_lon_column" envconfig:"CTD_LON_COLUMN" validate:"required"`
}

// BathymetryConfig holds gridded-field parameters. The variable name changed
// from "depth" to "elevation" between source datasets; "elevation" is the
// canonical default and "depth" remains reachable here.
type BathymetryConfig struct {
	Variables []string `yaml:"variables" envconfig:"VARIABLES" validate:"min=1"`
	LatAxes   []string `yaml:"lat_axes" envconfig:"LAT_AXES" validate:"min=1"`
	LonAxes   []string `yaml:"lon_axes" envconfig:"LON_AXES" validate:"min=1"`
}

// DistanceConfig holds distance-computation settings.
type DistanceConfig struct {
	Method string `yaml:"method" envconfig:"METHOD" validate:"oneof=geodesic great_circle haversine"`
}

// BottleConfig holds bottle-type assignment settings.
type BottleConfig struct {
	// TypePriority resolves the tie-break when a bottle number appears in
	// more than one category: "last" or "first" match wins over the sorted
	// category order.
	TypePriority string `yaml:"type_priority" envconfig:"TYPE_PRIORITY" validate:"oneof=last first"`
}

// Default returns the canonical configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/hydra.log",
		},
		Schemas: SchemaConfig{
			BottleSuffixes:  []string{"_01_btl", "_02_btl"},
			ProfileSuffixes: []string{"_01_cnv", "_02_cnv"},
			BottleNumericColumns: []string{
				"CTD_lon", "CTD_lat", "LONGITUDE", "LATITUDE", "TimeS_mean", "Bottle",
			},
			BottleRequiredColumns: []string{
				"CTD_lon", "CTD_lat", "LONGITUDE", "LATITUDE", "TimeS_mean", "Bottle",
			},
			ProfileNumericColumns: []string{
				"Dship_lon", "Dship_lat", "CTD_lon", "CTD_lat",
				"LONGITUDE", "LATITUDE", "timeS", "upoly0", "CTD_depth",
			},
			ProfileRequiredColumns: []string{
				"Dship_lon", "Dship_lat", "CTD_lon", "CTD_lat",
				"LONGITUDE", "LATITUDE", "timeS", "upoly0", "CTD_depth",
			},
			StationIDColumn: "Station_ID",
			BottleColumn:    "Bottle",
			CTDLatColumn:    "CTD_lat",
			CTDLonColumn:    "CTD_lon",
		},
		Bathymetry: BathymetryConfig{
			Variables: []string{"elevation"},
			LatAxes:   []string{"lat", "latitude"},
			LonAxes:   []string{"lon", "longitude"},
		},
		Distance: DistanceConfig{
			Method: "haversine",
		},
		Bottles: BottleConfig{
			TypePriority: "last",
		},
	}
}

// Load builds the configuration in three layers: canonical defaults, an
// optional YAML file, then HYDRA_* environment variables. The result is
// validated before being returned.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("HYDRA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
