package xlsheet

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/sirupsen/logrus"
)

// Sheet is a keyed view over one Grid: rows are addressed by the value in
// the key column and columns by their header. A Sheet is not safe for
// concurrent use, and two Sheets over the same grid do not see each
// other's index updates.
type Sheet struct {
	grid      Grid
	name      string
	keyColumn string

	cols *ColumnIndex
	rows *RowIndex

	missing     []string
	missingSeen map[string]bool

	config   *FormatConfig
	formats  map[string][]Action // nil until ColumnFormats runs
	programs map[string]*vm.Program

	log logrus.FieldLogger
}

type namedGrid interface {
	Name() string
}

// NewSheet attaches to a grid and builds the column and row indexes. It
// fails with a *ConfigurationError when keyColumn is not a header.
func NewSheet(g Grid, keyColumn string, opts ...Option) (*Sheet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Sheet{
		grid:        g,
		name:        o.sheetName,
		keyColumn:   keyColumn,
		missingSeen: make(map[string]bool),
		config:      o.formatConfig,
		programs:    make(map[string]*vm.Program),
	}
	if ng, ok := g.(namedGrid); ok {
		s.name = ng.Name()
	}
	if s.config == nil {
		s.config = DefaultFormatConfig()
	}
	s.log = o.logger.WithField("sheet", s.name)

	if err := s.Reindex(); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"columns": s.cols.Len(),
		"rows":    s.rows.Len(),
	}).Debug("sheet attached")
	return s, nil
}

// OpenSheet attaches to a worksheet of wb, selected with WithSheetName or
// the first sheet by default.
func OpenSheet(wb *Workbook, keyColumn string, opts ...Option) (*Sheet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	g, err := wb.Grid(o.sheetName)
	if err != nil {
		return nil, err
	}
	return NewSheet(g, keyColumn, opts...)
}

// Reindex rebuilds both indexes from the grid.
func (s *Sheet) Reindex() error {
	cols, err := BuildColumnIndex(s.grid)
	if err != nil {
		return fmt.Errorf("sheet %q: build column index: %w", s.name, err)
	}
	rows, err := BuildRowIndex(s.grid, cols, s.keyColumn)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Sheet = s.name
			return cfgErr
		}
		return fmt.Errorf("sheet %q: build row index: %w", s.name, err)
	}
	s.cols, s.rows = cols, rows
	return nil
}

func (s *Sheet) rebuildRows() error {
	rows, err := BuildRowIndex(s.grid, s.cols, s.keyColumn)
	if err != nil {
		return fmt.Errorf("sheet %q: rebuild row index: %w", s.name, err)
	}
	s.rows = rows
	return nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// KeyColumn returns the header of the key column.
func (s *Sheet) KeyColumn() string { return s.keyColumn }

// Grid returns the grid the sheet is attached to.
func (s *Sheet) Grid() Grid { return s.grid }

// Columns returns the column index.
func (s *Sheet) Columns() *ColumnIndex { return s.cols }

// Rows returns the row index.
func (s *Sheet) Rows() *RowIndex { return s.rows }

// Headers returns the indexed headers ordered by column.
func (s *Sheet) Headers() []string { return s.cols.Headers() }

// MissingColumns lists headers passed to AppendRow that the sheet does not
// have, each recorded once.
func (s *Sheet) MissingColumns() []string {
	out := make([]string, len(s.missing))
	copy(out, s.missing)
	return out
}

// FormatConfig returns the formatting rules in effect.
func (s *Sheet) FormatConfig() *FormatConfig { return s.config }

// SetFormatConfig replaces the formatting rules and drops cached column
// formats. A nil config disables formatting.
func (s *Sheet) SetFormatConfig(cfg *FormatConfig) {
	s.config = cfg
	s.InvalidateFormats()
}

// ResolveRow translates a row key to a row coordinate.
func (s *Sheet) ResolveRow(k Key) (int, bool) {
	if n, ok := k.Coordinate(); ok {
		return n, n > 0
	}
	return s.rows.Lookup(k.String())
}

// ResolveColumn translates a column key to a column coordinate.
func (s *Sheet) ResolveColumn(k Key) (int, bool) {
	if n, ok := k.Coordinate(); ok {
		return n, n > 0
	}
	return s.cols.Lookup(k.String())
}

// Resolve translates both keys; an unresolved side is returned as 0.
func (s *Sheet) Resolve(row, col Key) (int, int) {
	r, ok := s.ResolveRow(row)
	if !ok {
		r = 0
	}
	c, ok := s.ResolveColumn(col)
	if !ok {
		c = 0
	}
	return r, c
}
