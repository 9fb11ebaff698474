// Package integrator assembles bottle, profile, and bathymetry data into a
// single bundle and derives per-station coordinate paths and along-track
// distances.
package integrator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"hydra/internal/config"
	"hydra/internal/dataprocessing"
	apperrors "hydra/internal/errors"
	"hydra/internal/geo"
	"hydra/pkg/contracts/domain"
)

// TableLoader loads a directory of per-station tables.
type TableLoader interface {
	LoadTables(ctx context.Context, dir string, suffixes, numericColumns, requiredColumns []string) (domain.Collection, error)
}

// FieldLoader loads a directory of gridded fields.
type FieldLoader interface {
	LoadFields(ctx context.Context, dir string, variables []string, latRange, lonRange *domain.Range) (map[string]*domain.GriddedField, error)
}

// TypeAssigner annotates a bottle collection with categorical labels.
type TypeAssigner interface {
	AssignTypes(collection domain.Collection, typeMap domain.BottleTypeMap) (domain.Collection, []domain.Warning)
}

// Options parameterizes one LoadAll run. It replaces the cross-call mutable
// configuration dictionary of earlier designs: callers build one Options
// value per run.
type Options struct {
	BottleDir      string
	ProfileDir     string
	BathymetryPath string
	BottleTypes    domain.BottleTypeMap
	// StationFilter, when non-empty, restricts both collections to the
	// named stations after load, before type assignment and combination.
	StationFilter []string
	LatBounds     *domain.Range
	LonBounds     *domain.Range
	// CalculateDistances controls whether the bundle carries cumulative
	// distances; Method selects the distance algorithm and defaults to the
	// configured one when empty.
	CalculateDistances bool
	Method             string
}

// Integrator wires the loaders and the assigner into the full pipeline.
type Integrator struct {
	cfg    *config.Config
	logger *slog.Logger
	tables TableLoader
	fields FieldLoader
	types  TypeAssigner
}

// New creates an integrator. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger, tables TableLoader, fields FieldLoader, types TypeAssigner) *Integrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Integrator{cfg: cfg, logger: logger, tables: tables, fields: fields, types: types}
}

// LoadAll runs the full integration: bottle tables, type assignment, profile
// tables, bathymetry lookup, combination, coordinate extraction, and
// optional distance computation. Any sub-load failure propagates unmodified
// and no partial bundle is returned.
func (g *Integrator) LoadAll(ctx context.Context, opts Options) (*domain.DataBundle, error) {
	schemas := g.cfg.Schemas
	bundle := &domain.DataBundle{}

	g.logger.InfoContext(ctx, "Loading survey data",
		slog.String("bottle_dir", opts.BottleDir),
		slog.String("profile_dir", opts.ProfileDir),
		slog.String("bathymetry", opts.BathymetryPath))

	bottles, err := g.tables.LoadTables(ctx, opts.BottleDir,
		schemas.BottleSuffixes, schemas.BottleNumericColumns, schemas.BottleRequiredColumns)
	if err != nil {
		return nil, fmt.Errorf("loading bottle data: %w", err)
	}

	profiles, err := g.tables.LoadTables(ctx, opts.ProfileDir,
		schemas.ProfileSuffixes, schemas.ProfileNumericColumns, schemas.ProfileRequiredColumns)
	if err != nil {
		return nil, fmt.Errorf("loading profile data: %w", err)
	}

	if len(opts.StationFilter) > 0 {
		bottles = filterStations(bottles, opts.StationFilter)
		profiles = filterStations(profiles, opts.StationFilter)
		g.logger.DebugContext(ctx, "Applied station filter",
			slog.Int("bottle_stations", len(bottles)),
			slog.Int("profile_stations", len(profiles)))
	}

	bottles, warnings := g.types.AssignTypes(bottles, opts.BottleTypes)
	bundle.Warnings = warnings
	bundle.BottleData = bottles
	bundle.ProfileData = profiles

	bathymetry, err := g.loadBathymetry(ctx, opts)
	if err != nil {
		return nil, err
	}
	bundle.Bathymetry = bathymetry

	bundle.CombinedBottleData = dataprocessing.Combine(bottles, schemas.StationIDColumn)

	bundle.CTDCoordinates = make(map[string]domain.CoordinateSequence, len(bottles))
	for station, table := range bottles {
		coords, err := dataprocessing.ExtractCoordinates(table, schemas.CTDLatColumn, schemas.CTDLonColumn)
		if err != nil {
			return nil, fmt.Errorf("extracting coordinates for station %s: %w", station, err)
		}
		bundle.CTDCoordinates[station] = coords
	}

	if opts.CalculateDistances {
		method := opts.Method
		if method == "" {
			method = g.cfg.Distance.Method
		}
		bundle.CumulativeDistances = make(map[string]domain.CumulativeDistanceSequence, len(bundle.CTDCoordinates))
		for station, coords := range bundle.CTDCoordinates {
			distances, err := geo.CumulativeDistances(coords, method)
			if err != nil {
				return nil, fmt.Errorf("computing distances for station %s: %w", station, err)
			}
			bundle.CumulativeDistances[station] = distances
		}
	}

	g.logger.InfoContext(ctx, "Survey data loaded",
		slog.Int("bottle_stations", len(bundle.BottleData)),
		slog.Int("profile_stations", len(bundle.ProfileData)),
		slog.Int("combined_rows", bundle.CombinedBottleData.NumRows()),
		slog.Int("warnings", len(bundle.Warnings)))

	return bundle, nil
}

// loadBathymetry loads exactly one gridded field: the bathymetry path is
// split into directory and filename, the directory is scanned, and the
// named file must appear in the scan result.
func (g *Integrator) loadBathymetry(ctx context.Context, opts Options) (*domain.GriddedField, error) {
	dir, name := filepath.Split(opts.BathymetryPath)
	dir = filepath.Clean(dir)

	fields, err := g.fields.LoadFields(ctx, dir, g.cfg.Bathymetry.Variables, opts.LatBounds, opts.LonBounds)
	if err != nil {
		return nil, fmt.Errorf("loading bathymetry: %w", err)
	}
	field, ok := fields[name]
	if !ok {
		return nil, &apperrors.BathymetryNotFoundError{File: name, Dir: dir}
	}
	return field, nil
}

func filterStations(collection domain.Collection, stations []string) domain.Collection {
	wanted := make(map[string]bool, len(stations))
	for _, s := range stations {
		wanted[s] = true
	}
	filtered := make(domain.Collection)
	for station, table := range collection {
		if wanted[station] {
			filtered[station] = table
		}
	}
	return filtered
}
