// Package gridded loads array-based scientific data files (NetCDF) into
// in-memory gridded fields.
package gridded

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fhs/go-netcdf/netcdf"

	apperrors "hydra/internal/errors"
	"hydra/internal/files"
	"hydra/pkg/contracts/domain"
)

// Default candidate names for the coordinate axis variables. The first name
// present in a file wins.
var (
	DefaultLatAxes = []string{"lat", "latitude"}
	DefaultLonAxes = []string{"lon", "longitude"}
)

// Loader reads gridded fields from a directory of NetCDF files.
type Loader struct {
	logger  *slog.Logger
	latAxes []string
	lonAxes []string
}

// NewLoader creates a gridded-field loader. Empty axis-name lists fall back
// to the defaults; a nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger, latAxes, lonAxes []string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if len(latAxes) == 0 {
		latAxes = DefaultLatAxes
	}
	if len(lonAxes) == 0 {
		lonAxes = DefaultLonAxes
	}
	return &Loader{logger: logger, latAxes: latAxes, lonAxes: lonAxes}
}

// LoadFields scans dir for NetCDF files (.nc, .netcdf), ignoring everything
// else, and extracts the requested variables plus coordinate axes from each.
// A file missing any requested variable fails the call with a
// MissingVariablesError. When both latRange and lonRange are given, each
// field is reduced to the inclusive bounding box; a file without usable
// lat/lon axes then fails with a MissingCoordinateAxesError. The result is
// keyed by filename.
func (l *Loader) LoadFields(ctx context.Context, dir string, variables []string, latRange, lonRange *domain.Range) (map[string]*domain.GriddedField, error) {
	found, err := files.FindGridFiles(dir)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loading gridded fields",
		slog.String("dir", dir),
		slog.Int("file_count", len(found)),
		slog.Any("variables", variables))

	fields := make(map[string]*domain.GriddedField, len(found))
	for _, fi := range found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		field, err := l.loadFile(fi, variables, latRange, lonRange)
		if err != nil {
			return nil, err
		}
		fields[fi.Name] = field
	}
	return fields, nil
}

func (l *Loader) loadFile(fi files.FileInfo, variables []string, latRange, lonRange *domain.Range) (*domain.GriddedField, error) {
	ds, err := netcdf.OpenFile(fi.Path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fi.Name, err)
	}
	defer ds.Close()

	var missing []string
	for _, name := range variables {
		if _, err := ds.Var(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &apperrors.MissingVariablesError{File: fi.Name, Variables: missing}
	}

	field := &domain.GriddedField{
		Name: fi.Name,
		Vars: make(map[string][][]float64, len(variables)),
	}
	field.Lats = l.readAxis(ds, l.latAxes)
	field.Lons = l.readAxis(ds, l.lonAxes)

	for _, name := range variables {
		v, err := ds.Var(name)
		if err != nil {
			return nil, fmt.Errorf("failed to access variable %s in %s: %w", name, fi.Name, err)
		}
		grid, err := readGrid(v, len(field.Lats), len(field.Lons))
		if err != nil {
			return nil, fmt.Errorf("failed to read variable %s in %s: %w", name, fi.Name, err)
		}
		field.Vars[name] = grid
	}

	if latRange != nil && lonRange != nil {
		if !field.HasAxes() {
			return nil, &apperrors.MissingCoordinateAxesError{
				File: fi.Name,
				Axes: append(append([]string{}, l.latAxes...), l.lonAxes...),
			}
		}
		field = field.Subset(*latRange, *lonRange)
		l.logger.Debug("Applied spatial selection",
			slog.String("filename", fi.Name),
			slog.Int("lat_points", len(field.Lats)),
			slog.Int("lon_points", len(field.Lons)))
	}

	return field, nil
}

// readAxis reads the first present candidate axis variable as a 1-D float
// sequence. Returns nil when none of the candidates exists.
func (l *Loader) readAxis(ds netcdf.Dataset, candidates []string) []float64 {
	for _, name := range candidates {
		v, err := ds.Var(name)
		if err != nil {
			continue
		}
		vals, err := readFloats(v)
		if err != nil {
			l.logger.Warn("Failed to read axis variable",
				slog.String("axis", name),
				slog.String("error", err.Error()))
			continue
		}
		return vals
	}
	return nil
}

// readGrid reads a variable into a [lat][lon] matrix. 1-D variables become a
// single-row matrix. 2-D variables dimensioned [lon][lat] are transposed
// based on the axis lengths; square grids are assumed to be [lat][lon].
func readGrid(v netcdf.Var, nlat, nlon int) ([][]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, err
	}
	flat, err := readFloats(v)
	if err != nil {
		return nil, err
	}

	switch len(dims) {
	case 1:
		return [][]float64{flat}, nil
	case 2:
		d0, err := dims[0].Len()
		if err != nil {
			return nil, err
		}
		d1, err := dims[1].Len()
		if err != nil {
			return nil, err
		}
		rows, cols := int(d0), int(d1)
		if rows*cols != len(flat) {
			return nil, fmt.Errorf("dimension mismatch: %d x %d != %d values", rows, cols, len(flat))
		}
		transpose := rows == nlon && cols == nlat && nlat != nlon
		grid := make([][]float64, rows)
		for i := range grid {
			grid[i] = flat[i*cols : (i+1)*cols]
		}
		if transpose {
			t := make([][]float64, cols)
			for j := 0; j < cols; j++ {
				t[j] = make([]float64, rows)
				for i := 0; i < rows; i++ {
					t[j][i] = grid[i][j]
				}
			}
			return t, nil
		}
		return grid, nil
	default:
		return nil, fmt.Errorf("unsupported rank %d", len(dims))
	}
}

// readFloats reads a whole variable as float64 regardless of its stored
// numeric type.
func readFloats(v netcdf.Var) ([]float64, error) {
	n, err := v.Len()
	if err != nil {
		return nil, err
	}
	t, err := v.Type()
	if err != nil {
		return nil, err
	}

	switch t {
	case netcdf.DOUBLE:
		out := make([]float64, n)
		if err := v.ReadFloat64s(out); err != nil {
			return nil, err
		}
		return out, nil
	case netcdf.FLOAT:
		buf := make([]float32, n)
		if err := v.ReadFloat32s(buf); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, x := range buf {
			out[i] = float64(x)
		}
		return out, nil
	case netcdf.INT:
		buf := make([]int32, n)
		if err := v.ReadInt32s(buf); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, x := range buf {
			out[i] = float64(x)
		}
		return out, nil
	case netcdf.SHORT:
		buf := make([]int16, n)
		if err := v.ReadInt16s(buf); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, x := range buf {
			out[i] = float64(x)
		}
		return out, nil
	case netcdf.INT64:
		buf := make([]int64, n)
		if err := v.ReadInt64s(buf); err != nil {
			return nil, err
		}
		out := make([]float64, n)
		for i, x := range buf {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported variable type %v", t)
	}
}
