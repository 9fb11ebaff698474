package domain

import (
	"math"
	"strconv"
	"strings"
)

// Table is a column-oriented record table loaded from a single station file.
// Every column keeps the raw text form read from the source; columns that
// have been coerced additionally carry float64 values where NaN marks a cell
// that could not be parsed as a number (the missing-value marker).
type Table struct {
	columns []string
	raw     map[string][]string
	floats  map[string][]float64
	rows    int
}

// Collection maps a station identifier to its loaded table.
type Collection map[string]*Table

// NewTable builds a table from a header row and data records. Records shorter
// than the header are padded with empty cells; duplicate header names keep
// the first occurrence.
func NewTable(header []string, records [][]string) *Table {
	t := &Table{
		raw:    make(map[string][]string, len(header)),
		floats: make(map[string][]float64),
		rows:   len(records),
	}
	for i, name := range header {
		if _, dup := t.raw[name]; dup {
			continue
		}
		t.columns = append(t.columns, name)
		col := make([]string, len(records))
		for r, rec := range records {
			if i < len(rec) {
				col[r] = rec[i]
			}
		}
		t.raw[name] = col
	}
	return t
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.rows
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.raw[name]
	return ok
}

// MissingColumns returns the subset of required names absent from the table,
// preserving the order of the required list.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Strings returns the raw text cells of a column. The returned slice is
// shared with the table and must not be modified by callers.
func (t *Table) Strings(name string) ([]string, bool) {
	col, ok := t.raw[name]
	return col, ok
}

// Floats returns the coerced numeric cells of a column. The second result is
// false when the column is absent or has not been coerced.
func (t *Table) Floats(name string) ([]float64, bool) {
	col, ok := t.floats[name]
	return col, ok
}

// IsNumeric reports whether the named column has been coerced.
func (t *Table) IsNumeric(name string) bool {
	_, ok := t.floats[name]
	return ok
}

// Coerce converts the named columns to numeric form. Cells that cannot be
// parsed become NaN; names not present in the table are ignored.
func (t *Table) Coerce(names ...string) {
	for _, name := range names {
		col, ok := t.raw[name]
		if !ok {
			continue
		}
		vals := make([]float64, len(col))
		for i, cell := range col {
			vals[i] = ParseNumeric(cell)
		}
		t.floats[name] = vals
	}
}

// SetStringColumn adds or overwrites a text column. Values beyond the row
// count are dropped; missing trailing values become empty cells. Any numeric
// form of an overwritten column is discarded.
func (t *Table) SetStringColumn(name string, values []string) {
	col := make([]string, t.rows)
	copy(col, values)
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	t.raw[name] = col
	delete(t.floats, name)
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	c := &Table{
		columns: make([]string, len(t.columns)),
		raw:     make(map[string][]string, len(t.raw)),
		floats:  make(map[string][]float64, len(t.floats)),
		rows:    t.rows,
	}
	copy(c.columns, t.columns)
	for name, col := range t.raw {
		dup := make([]string, len(col))
		copy(dup, col)
		c.raw[name] = dup
	}
	for name, col := range t.floats {
		dup := make([]float64, len(col))
		copy(dup, col)
		c.floats[name] = dup
	}
	return c
}

// FilterRows returns a new table holding only the rows where keep is true.
// keep must have one entry per row.
func (t *Table) FilterRows(keep []bool) *Table {
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	c := &Table{
		columns: make([]string, len(t.columns)),
		raw:     make(map[string][]string, len(t.raw)),
		floats:  make(map[string][]float64, len(t.floats)),
		rows:    kept,
	}
	copy(c.columns, t.columns)
	for name, col := range t.raw {
		dup := make([]string, 0, kept)
		for i, k := range keep {
			if k && i < len(col) {
				dup = append(dup, col[i])
			}
		}
		c.raw[name] = dup
	}
	for name, col := range t.floats {
		dup := make([]float64, 0, kept)
		for i, k := range keep {
			if k && i < len(col) {
				dup = append(dup, col[i])
			}
		}
		c.floats[name] = dup
	}
	return c
}

// Concat concatenates tables in order into a single table. The column set is
// the union of all input columns in first-seen order; rows from tables that
// lack a column get empty cells (NaN in the numeric form). A column is
// numeric in the result only if it is numeric in every table that carries it.
func Concat(tables []*Table) *Table {
	totalRows := 0
	var columns []string
	seen := make(map[string]bool)
	numeric := make(map[string]bool)
	for _, t := range tables {
		totalRows += t.rows
		for _, name := range t.columns {
			if !seen[name] {
				seen[name] = true
				numeric[name] = t.IsNumeric(name)
				columns = append(columns, name)
			} else if !t.IsNumeric(name) {
				numeric[name] = false
			}
		}
	}

	out := &Table{
		columns: columns,
		raw:     make(map[string][]string, len(columns)),
		floats:  make(map[string][]float64),
		rows:    totalRows,
	}
	for _, name := range columns {
		raw := make([]string, 0, totalRows)
		var vals []float64
		if numeric[name] {
			vals = make([]float64, 0, totalRows)
		}
		for _, t := range tables {
			col, ok := t.raw[name]
			for i := 0; i < t.rows; i++ {
				if ok && i < len(col) {
					raw = append(raw, col[i])
				} else {
					raw = append(raw, "")
				}
			}
			if numeric[name] {
				fcol, fok := t.floats[name]
				for i := 0; i < t.rows; i++ {
					if fok && i < len(fcol) {
						vals = append(vals, fcol[i])
					} else {
						vals = append(vals, math.NaN())
					}
				}
			}
		}
		out.raw[name] = raw
		if numeric[name] {
			out.floats[name] = vals
		}
	}
	return out
}

// ParseNumeric parses a single cell the way the loaders coerce numeric
// columns: surrounding whitespace and thousands separators are stripped, and
// anything unparseable yields NaN.
func ParseNumeric(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
