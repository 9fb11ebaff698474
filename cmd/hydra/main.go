// Command hydra runs the field-survey integration pipeline: it loads bottle
// and profile tables, assigns bottle types, attaches bathymetry, and writes
// the combined table and per-station cumulative distances as CSV reports.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"hydra/internal/bottletypes"
	"hydra/internal/config"
	"hydra/internal/dataprocessing"
	"hydra/internal/exporter"
	"hydra/internal/geo"
	"hydra/internal/gridded"
	"hydra/internal/infrastructure"
	"hydra/internal/integrator"
	"hydra/internal/tabular"
	"hydra/pkg/contracts/domain"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file (HYDRA_* env vars override)")
	bottleDir := flag.String("bottle-dir", "data/bottles", "directory containing bottle files (.csv/.xlsx)")
	profileDir := flag.String("profile-dir", "data/profiles", "directory containing profile files (.csv/.xlsx)")
	bathymetry := flag.String("bathymetry", "data/bathymetry/bathymetry.nc", "path to the bathymetry NetCDF file")
	typesFile := flag.String("bottle-types", "", "optional JSON file mapping stations to bottle-type categories")
	outDir := flag.String("out", "data/reports", "output directory for CSV reports")
	stations := flag.String("stations", "", "comma-separated station keys to keep (default: all)")
	method := flag.String("method", "", "distance method: geodesic | great_circle | haversine (default: configured)")
	distances := flag.Bool("distances", true, "compute per-station cumulative distances")
	zoom := flag.Bool("zoom", false, "reduce bathymetry to the lat/lon box spanned by the bottle data")
	filterColumn := flag.String("filter-column", "", "optional numeric column to filter the combined table on")
	filterMin := flag.Float64("filter-min", 0, "minimum value for -filter-column (rows below are dropped)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())

	logger.InfoContext(ctx, "Starting survey integration",
		slog.String("bottle_dir", *bottleDir),
		slog.String("profile_dir", *profileDir),
		slog.String("bathymetry", *bathymetry),
		slog.String("output_dir", *outDir))

	typeMap := domain.BottleTypeMap{}
	if *typesFile != "" {
		typeMap, err = bottletypes.LoadTypeMap(*typesFile)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load bottle-type map",
				slog.String("path", *typesFile),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	tables := tabular.NewLoader(logger)
	fields := gridded.NewLoader(logger, cfg.Bathymetry.LatAxes, cfg.Bathymetry.LonAxes)
	assigner := bottletypes.NewAssigner(logger, typePolicy(cfg.Bottles.TypePriority), cfg.Schemas.BottleColumn)

	opts := integrator.Options{
		BottleDir:          *bottleDir,
		ProfileDir:         *profileDir,
		BathymetryPath:     *bathymetry,
		BottleTypes:        typeMap,
		StationFilter:      splitList(*stations),
		CalculateDistances: *distances,
		Method:             *method,
	}

	if *zoom {
		latBounds, lonBounds, err := dataprocessing.ComputeLatLonBounds(ctx, tables, *bottleDir,
			cfg.Schemas.CTDLatColumn, cfg.Schemas.CTDLonColumn)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to compute bathymetry bounds", slog.String("error", err.Error()))
			os.Exit(1)
		}
		opts.LatBounds = &latBounds
		opts.LonBounds = &lonBounds
		logger.InfoContext(ctx, "Bathymetry zoom window",
			slog.Float64("min_lat", latBounds.Min), slog.Float64("max_lat", latBounds.Max),
			slog.Float64("min_lon", lonBounds.Min), slog.Float64("max_lon", lonBounds.Max))
	}

	g := integrator.New(cfg, logger, tables, fields, assigner)
	bundle, err := g.LoadAll(ctx, opts)
	if err != nil {
		logger.ErrorContext(ctx, "Integration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, w := range bundle.Warnings {
		logger.WarnContext(ctx, w.Message,
			slog.String("code", w.Code),
			slog.String("station", w.Station))
	}

	if err := validateBundle(bundle); err != nil {
		logger.ErrorContext(ctx, "Coordinate validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	combined := bundle.CombinedBottleData
	if *filterColumn != "" {
		filtered, err := dataprocessing.FilterByColumnMin(combined, *filterColumn, *filterMin)
		if err != nil {
			logger.ErrorContext(ctx, "Row filter failed",
				slog.String("column", *filterColumn),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "Applied row filter",
			slog.String("column", *filterColumn),
			slog.Float64("min", *filterMin),
			slog.Int("rows_before", combined.NumRows()),
			slog.Int("rows_after", filtered.NumRows()))
		combined = filtered
	}

	writer := exporter.NewCSVWriter(*outDir, logger)
	if err := writer.WriteTable("combined_bottle_data.csv", combined); err != nil {
		logger.ErrorContext(ctx, "Failed to write combined table", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if bundle.CumulativeDistances != nil {
		if err := writer.WriteDistances("cumulative_distances.csv", bundle.CumulativeDistances); err != nil {
			logger.ErrorContext(ctx, "Failed to write distances", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "Survey integration completed",
		slog.Int("bottle_stations", len(bundle.BottleData)),
		slog.Int("profile_stations", len(bundle.ProfileData)),
		slog.Int("combined_rows", combined.NumRows()),
		slog.Int("warnings", len(bundle.Warnings)))
}

// validateBundle checks every per-station coordinate path against the
// geographic ranges before anything is written.
func validateBundle(bundle *domain.DataBundle) error {
	for _, coords := range bundle.CTDCoordinates {
		lats := make([]float64, len(coords))
		lons := make([]float64, len(coords))
		for i, c := range coords {
			lats[i] = c.Lat
			lons[i] = c.Lon
		}
		if err := geo.ValidateCoordinates(lats, lons); err != nil {
			return err
		}
	}
	return nil
}

func typePolicy(priority string) bottletypes.Policy {
	if strings.EqualFold(priority, "first") {
		return bottletypes.FirstMatchWins
	}
	return bottletypes.LastMatchWins
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
