// Package exporter writes assembled pipeline results to CSV reports.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"hydra/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality rooted at an output directory.
type CSVWriter struct {
	outDir string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. Relative paths resolve under outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

// WriteTable writes a station table (or the combined table) as CSV, using
// each column's raw cell text, streaming row by row.
func (w *CSVWriter) WriteTable(filePath string, table *domain.Table) error {
	columns := table.Columns()

	stream, err := w.CreateStreamWriter(filePath, columns)
	if err != nil {
		return err
	}

	cells := make(map[string][]string, len(columns))
	for _, name := range columns {
		col, _ := table.Strings(name)
		cells[name] = col
	}

	record := make([]string, len(columns))
	for i := 0; i < table.NumRows(); i++ {
		for j, name := range columns {
			col := cells[name]
			if i < len(col) {
				record[j] = col[i]
			} else {
				record[j] = ""
			}
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return stream.Close()
}

// WriteDistances writes per-station cumulative distances as long-form CSV
// (station, sample index, kilometers), stations in sorted order.
func (w *CSVWriter) WriteDistances(filePath string, distances map[string]domain.CumulativeDistanceSequence) error {
	stations := make([]string, 0, len(distances))
	for station := range distances {
		stations = append(stations, station)
	}
	sort.Strings(stations)

	var records [][]string
	for _, station := range stations {
		for i, km := range distances[station] {
			records = append(records, []string{
				station,
				strconv.Itoa(i),
				strconv.FormatFloat(km, 'f', 3, 64),
			})
		}
	}
	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{"Station_ID", "Sample", "Cumulative_km"},
		Records: records,
	})
}

// StreamWriter provides streaming CSV writing for large tables.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer with a header row.
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.outDir == "" {
		return filePath
	}
	return filepath.Join(w.outDir, filePath)
}
