package errors

import (
	"fmt"
	"strings"
)

// ErrorType classifies pipeline errors for logging and reporting.
type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// LengthMismatchError reports latitude/longitude sequences of different
// lengths handed to the coordinate validator.
type LengthMismatchError struct {
	LatCount int
	LonCount int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("[%s] latitude and longitude lists must have the same length: got %d latitudes and %d longitudes",
		ErrTypeValidation, e.LatCount, e.LonCount)
}

// TypeMismatchError reports a non-numeric coordinate value. Axis is
// "latitude" or "longitude"; Value is the offending cell (NaN for a coerced
// missing value).
type TypeMismatchError struct {
	Axis  string
	Index int
	Value float64
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("[%s] %s values must be numeric: invalid value %v at index %d",
		ErrTypeValidation, e.Axis, e.Value, e.Index)
}

// RangeError reports a coordinate outside its valid domain.
type RangeError struct {
	Axis  string
	Index int
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("[%s] %s value %v at index %d outside [%v, %v]",
		ErrTypeValidation, e.Axis, e.Value, e.Index, e.Min, e.Max)
}

// InvalidMethodError reports an unknown distance-calculation method.
type InvalidMethodError struct {
	Method  string
	Allowed []string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("[%s] invalid distance method %q: choose one of %s",
		ErrTypeValidation, e.Method, strings.Join(e.Allowed, ", "))
}

// MissingColumnsError reports required columns absent from a tabular file.
// File is empty when the table was built in memory rather than loaded.
type MissingColumnsError struct {
	File    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("[%s] missing columns [%s]",
			ErrTypeSchema, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("[%s] missing columns [%s] in file %s",
		ErrTypeSchema, strings.Join(e.Columns, ", "), e.File)
}

// MissingVariablesError reports requested variables absent from a gridded
// data file.
type MissingVariablesError struct {
	File      string
	Variables []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("[%s] missing variables [%s] in file %s",
		ErrTypeSchema, strings.Join(e.Variables, ", "), e.File)
}

// MissingCoordinateAxesError reports a gridded file that lacks the latitude
// or longitude axes needed for a bounding-box selection.
type MissingCoordinateAxesError struct {
	File string
	Axes []string
}

func (e *MissingCoordinateAxesError) Error() string {
	return fmt.Sprintf("[%s] file %s lacks coordinate axes [%s] required for spatial selection",
		ErrTypeSchema, e.File, strings.Join(e.Axes, ", "))
}

// BathymetryNotFoundError reports that the named bathymetry file was absent
// from its directory's scan result.
type BathymetryNotFoundError struct {
	File string
	Dir  string
}

func (e *BathymetryNotFoundError) Error() string {
	return fmt.Sprintf("[%s] bathymetry file %s not found in directory %s",
		ErrTypeNotFound, e.File, e.Dir)
}
