// Package files provides extension-filtered discovery of survey data files.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo describes one discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Table-data and gridded-data extensions recognized by the loaders. Matching
// is case-insensitive; everything else in a directory is silently ignored.
var (
	TableExtensions = []string{".csv", ".xlsx"}
	GridExtensions  = []string{".nc", ".netcdf"}
)

// FindByExtensions scans dir non-recursively for files whose extension is in
// exts, returning them in directory-listing order. Listing order is
// significant: schema-error reporting names the first offending file in this
// order.
func FindByExtensions(dir string, exts []string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var out []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !hasAnySuffix(strings.ToLower(name), exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

// FindTableFiles finds delimited/spreadsheet table files in dir.
func FindTableFiles(dir string) ([]FileInfo, error) {
	return FindByExtensions(dir, TableExtensions)
}

// FindGridFiles finds gridded scientific data files in dir.
func FindGridFiles(dir string) ([]FileInfo, error) {
	return FindByExtensions(dir, GridExtensions)
}

func hasAnySuffix(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
