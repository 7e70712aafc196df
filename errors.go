package xlsheet

import (
	"errors"
	"fmt"
)

// ErrNoKeyValue is returned by AppendRow when the values carry nothing for the
// sheet's key column.
var ErrNoKeyValue = errors.New("no value for key column")

// ErrNilCellValue is returned by ExtractHyperlink when there is no cell value
// to parse.
var ErrNilCellValue = errors.New("cell value is nil")

// ErrNotHyperlink indicates a value is not an Excel HYPERLINK formula.
var ErrNotHyperlink = errors.New("cell value is not an Excel hyperlink")

// ErrRowNotFound is returned by row formatting when the row key does not
// resolve to a row.
var ErrRowNotFound = errors.New("row not found")

// ErrUnknownColumn is returned by cell formatting for a header the column
// index does not know.
var ErrUnknownColumn = errors.New("unknown column")

// ConfigurationError reports a sheet that cannot be attached or kept
// consistent with the requested setup (missing key column, missing sheet).
type ConfigurationError struct {
	Sheet  string
	Column string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("sheet %q: column %q: %s", e.Sheet, e.Column, e.Reason)
	}
	return fmt.Sprintf("sheet %q: %s", e.Sheet, e.Reason)
}

// FormatError reports a hyperlink formula that could not be parsed.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("parse hyperlink %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
