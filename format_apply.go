package xlsheet

import (
	"fmt"
	"unicode/utf8"
)

// Number formats written by FormatCell.
const (
	numFmtInteger   = "0"
	numFmtDecimal   = "#,#0.0"
	numFmtCountDays = `# "Days"`
	numFmtDate      = "mm-dd-yy"
)

const (
	blackFillColor     = "000000"
	lightGreyFillColor = "F2F2F2"
	headerFontFamily   = "Calibri"

	// DefaultWidthMultiplier scales the longest value length to a column width.
	DefaultWidthMultiplier = 1.23
)

// FormatCell applies the cached actions of header to the cell at (row, col):
// the number category first, then border, alignment and fill. A date column
// gets the date format whatever the cell holds; a cell in a column without a
// category still gets the date format when it already renders as a date.
func (s *Sheet) FormatCell(header string, row, col int) error {
	actions, ok := s.ColumnFormats()[header]
	if !ok {
		return fmt.Errorf("sheet %q: format %q: %w", s.name, header, ErrUnknownColumn)
	}
	if err := s.applyCategory(actions, row, col); err != nil {
		return fmt.Errorf("sheet %q: format %q: %w", s.name, header, err)
	}
	if err := s.applyDecoration(actions, row, col); err != nil {
		return fmt.Errorf("sheet %q: format %q: %w", s.name, header, err)
	}
	s.grid.MarkDirty()
	return nil
}

func (s *Sheet) applyCategory(actions []Action, row, col int) error {
	g := s.grid
	switch {
	case hasAction(actions, ActionPercent):
		return g.SetCellStyle(row, col, StylePercent)
	case hasAction(actions, ActionCurrency):
		return g.SetCellStyle(row, col, StyleCurrency)
	case hasAction(actions, ActionInteger):
		return g.SetCellNumberFormat(row, col, numFmtInteger)
	case hasAction(actions, ActionCommaFormat):
		return g.SetCellStyle(row, col, StyleCommaFormat)
	case hasAction(actions, ActionDecimal):
		return g.SetCellNumberFormat(row, col, numFmtDecimal)
	case hasAction(actions, ActionCountDays):
		return g.SetCellNumberFormat(row, col, numFmtCountDays)
	case hasAction(actions, ActionFullDate):
		return g.SetCellStyle(row, col, StyleFullDateFormat)
	case hasAction(actions, ActionDate):
		return g.SetCellNumberFormat(row, col, numFmtDate)
	}
	temporal, err := g.CellIsTemporal(row, col)
	if err != nil {
		return err
	}
	if temporal {
		return g.SetCellNumberFormat(row, col, numFmtDate)
	}
	return nil
}

func (s *Sheet) applyDecoration(actions []Action, row, col int) error {
	g := s.grid
	if hasAction(actions, ActionDefaultBorder) {
		if err := g.SetCellBorder(row, col, Border{Style: "thin"}); err != nil {
			return err
		}
	}

	shrink := s.config != nil && s.config.ShrinkToFitCell
	var horizontal string
	switch {
	case hasAction(actions, ActionLeftAlign):
		horizontal = "left"
	case hasAction(actions, ActionCenterAlign):
		horizontal = "center"
	case hasAction(actions, ActionRightAlign):
		horizontal = "right"
	}
	if horizontal != "" {
		if err := g.SetCellAlignment(row, col, Alignment{Horizontal: horizontal, ShrinkToFit: shrink}); err != nil {
			return err
		}
	}

	switch {
	case hasAction(actions, ActionBlackFill):
		return g.SetCellFill(row, col, blackFillColor)
	case hasAction(actions, ActionLightGreyFill):
		return g.SetCellFill(row, col, lightGreyFillColor)
	}
	return nil
}

// FormatRow formats every indexed column of one row. It fails with
// ErrRowNotFound when the key is missing or does not resolve.
func (s *Sheet) FormatRow(row Key) error {
	if row == (Key{}) {
		return fmt.Errorf("sheet %q: format row: no row key: %w", s.name, ErrRowNotFound)
	}
	r, ok := s.ResolveRow(row)
	if !ok {
		return fmt.Errorf("sheet %q: format row %s: %w", s.name, row, ErrRowNotFound)
	}
	return s.formatRowAt(r)
}

func (s *Sheet) formatRowAt(r int) error {
	for _, h := range s.cols.Headers() {
		c, _ := s.cols.Lookup(h)
		if err := s.FormatCell(h, r, c); err != nil {
			return err
		}
	}
	return nil
}

// FormatAllCells formats the header row and every indexed row. It returns
// false without touching the grid when the sheet has no format config.
func (s *Sheet) FormatAllCells() (bool, error) {
	if s.config == nil {
		return false, nil
	}
	if err := s.FormatHeader(); err != nil {
		return false, err
	}
	for _, r := range s.rows.Rows() {
		if err := s.formatRowAt(r); err != nil {
			return false, err
		}
	}
	s.log.WithField("rows", s.rows.Len()).Debug("sheet formatted")
	return true, nil
}

// FormatHeader applies the configured header font to row 1.
func (s *Sheet) FormatHeader() error {
	if s.config == nil || s.config.Header == nil {
		return nil
	}
	font := Font{
		Family: headerFontFamily,
		Size:   s.config.Header.FontSize,
		Bold:   s.config.Header.Bold,
	}
	for _, h := range s.cols.Headers() {
		c, _ := s.cols.Lookup(h)
		if err := s.grid.SetCellFont(1, c, font); err != nil {
			return fmt.Errorf("sheet %q: format header %q: %w", s.name, h, err)
		}
	}
	s.grid.MarkDirty()
	return nil
}

// AutoSizeColumns sets each column's width to the length of its longest
// value times multiplier. Empty columns keep their width.
func (s *Sheet) AutoSizeColumns(multiplier float64) error {
	if multiplier <= 0 {
		multiplier = DefaultWidthMultiplier
	}
	width, err := s.grid.HeaderRowWidth()
	if err != nil {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	total, err := s.grid.TotalRowCount()
	if err != nil {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	changed := false
	for c := 1; c <= width; c++ {
		longest := 0
		for r := 1; r <= total; r++ {
			v, err := s.grid.CellValue(r, c)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", s.name, err)
			}
			if n := utf8.RuneCountInString(Stringify(v)); n > longest {
				longest = n
			}
		}
		if longest == 0 {
			continue
		}
		if err := s.grid.SetColumnWidth(c, float64(longest)*multiplier); err != nil {
			return fmt.Errorf("sheet %q: %w", s.name, err)
		}
		changed = true
	}
	if changed {
		s.grid.MarkDirty()
	}
	return nil
}
