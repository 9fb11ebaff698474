// Package tabular loads directories of per-station delimited-text and
// spreadsheet files into station tables.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	apperrors "hydra/internal/errors"
	"hydra/internal/files"
	"hydra/pkg/contracts/domain"
)

// Loader reads station tables from a directory.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a table loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadTables scans dir non-recursively for table files (.csv, .xlsx) and
// loads each into a station table keyed by its derived station identifier.
// Files are loaded in parallel; results and error reporting keep
// directory-listing order. If requiredColumns is non-empty and any file
// lacks one of them, the whole call fails with a MissingColumnsError naming
// the first offending file in listing order. Columns named in
// numericColumns are coerced to numeric with NaN marking unparseable cells.
// An empty directory yields an empty collection.
func (l *Loader) LoadTables(ctx context.Context, dir string, suffixes, numericColumns, requiredColumns []string) (domain.Collection, error) {
	found, err := files.FindTableFiles(dir)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loading station tables",
		slog.String("dir", dir),
		slog.Int("file_count", len(found)))

	tables := make([]*domain.Table, len(found))
	errs := make([]error, len(found))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, fi := range found {
		i, fi := i, fi
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tables[i], errs[i] = l.loadFile(fi, numericColumns, requiredColumns)
			// Per-file errors are collected positionally so the first
			// offending file in listing order wins, not the first to finish.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	collection := make(domain.Collection, len(found))
	for i, fi := range found {
		key := StationKey(fi.Name, suffixes)
		if _, dup := collection[key]; dup {
			l.logger.Warn("Duplicate station key, keeping last file",
				slog.String("station", key),
				slog.String("filename", fi.Name))
		}
		collection[key] = tables[i]
		l.logger.Debug("Loaded station table",
			slog.String("station", key),
			slog.String("filename", fi.Name),
			slog.Int("rows", tables[i].NumRows()))
	}
	return collection, nil
}

// StationKey derives a station identifier from a filename: the first
// matching suffix in list order is stripped from the stem, then the
// extension is dropped. The suffix list is tried in order and matching
// stops at the first hit.
func StationKey(filename string, suffixes []string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(stem, suffix) {
			return strings.TrimSuffix(stem, suffix)
		}
	}
	return stem
}

func (l *Loader) loadFile(fi files.FileInfo, numericColumns, requiredColumns []string) (*domain.Table, error) {
	var (
		header  []string
		records [][]string
		err     error
	)
	if strings.HasSuffix(strings.ToLower(fi.Name), ".xlsx") {
		header, records, err = readXLSX(fi.Path)
	} else {
		header, records, err = readCSV(fi.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fi.Name, err)
	}

	table := domain.NewTable(header, records)

	if len(requiredColumns) > 0 {
		if missing := table.MissingColumns(requiredColumns); len(missing) > 0 {
			return nil, &apperrors.MissingColumnsError{File: fi.Name, Columns: missing}
		}
	}

	table.Coerce(numericColumns...)
	return table, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, like the short-row padding below
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets in workbook")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}
