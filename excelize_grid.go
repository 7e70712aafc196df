package xlsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelizeGrid implements Grid for one worksheet of an excelize workbook.
type ExcelizeGrid struct {
	wb    *Workbook
	sheet string
}

// builtin number format IDs that render as dates or times.
var dateNumFmtIDs = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// borderStyles maps border names to excelize border style indexes.
var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

// Name returns the worksheet name.
func (g *ExcelizeGrid) Name() string { return g.sheet }

// Workbook returns the workbook the grid belongs to.
func (g *ExcelizeGrid) Workbook() *Workbook { return g.wb }

func (g *ExcelizeGrid) file() *excelize.File { return g.wb.file }

func cellName(row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	return name, nil
}

// CellValue returns the typed value of a cell. Formulas are returned as
// "=" + formula text; numbers as int or float64 (time.Time when the cell
// carries a date format); booleans as bool; empty cells as nil.
func (g *ExcelizeGrid) CellValue(row, col int) (any, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return nil, err
	}
	f := g.file()

	formula, err := f.GetCellFormula(g.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read formula %s!%s: %w", g.sheet, cell, err)
	}
	if formula != "" {
		return "=" + formula, nil
	}

	typ, err := f.GetCellType(g.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read type %s!%s: %w", g.sheet, cell, err)
	}
	raw, err := f.GetCellValue(g.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read value %s!%s: %w", g.sheet, cell, err)
	}
	if raw == "" {
		return nil, nil
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw, nil
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, nil
		}
		return raw, nil
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if temporal, _ := g.CellIsTemporal(row, col); temporal {
			return excelize.ExcelDateToTime(float64(i), false)
		}
		return int(i), nil
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		if temporal, _ := g.CellIsTemporal(row, col); temporal {
			return excelize.ExcelDateToTime(fl, false)
		}
		return fl, nil
	}
	return raw, nil
}

// SetCellValue writes a value, keeping the cell's style. nil clears the cell.
func (g *ExcelizeGrid) SetCellValue(row, col int, value any) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	if s, ok := value.(string); ok && strings.HasPrefix(s, "=") && len(s) > 1 {
		return g.SetCellFormula(row, col, s)
	}
	if err := g.file().SetCellValue(g.sheet, cell, value); err != nil {
		return fmt.Errorf("write %s!%s: %w", g.sheet, cell, err)
	}
	return nil
}

// SetCellFormula writes a formula (with or without the leading "=").
func (g *ExcelizeGrid) SetCellFormula(row, col int, formula string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return g.file().SetCellFormula(g.sheet, cell, strings.TrimPrefix(formula, "="))
}

// CellHyperlink returns the target of a hyperlink attached to the cell.
func (g *ExcelizeGrid) CellHyperlink(row, col int) (string, bool, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return "", false, err
	}
	ok, target, err := g.file().GetCellHyperLink(g.sheet, cell)
	if err != nil {
		return "", false, fmt.Errorf("read hyperlink %s!%s: %w", g.sheet, cell, err)
	}
	return target, ok && target != "", nil
}

// SetCellHyperlink writes display text and attaches an external link.
func (g *ExcelizeGrid) SetCellHyperlink(row, col int, url, display string) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	f := g.file()
	if display == "" {
		display = url
	}
	if err := f.SetCellValue(g.sheet, cell, display); err != nil {
		return fmt.Errorf("write %s!%s: %w", g.sheet, cell, err)
	}
	return f.SetCellHyperLink(g.sheet, cell, url, "External", excelize.HyperlinkOpts{Display: &display})
}

// CellIsTemporal reports whether the cell's number format renders a date or time.
func (g *ExcelizeGrid) CellIsTemporal(row, col int) (bool, error) {
	cell, err := cellName(row, col)
	if err != nil {
		return false, err
	}
	f := g.file()
	if typ, err := f.GetCellType(g.sheet, cell); err == nil && typ == excelize.CellTypeDate {
		return true, nil
	}
	style, err := g.cellStyle(cell)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt), nil
	}
	return dateNumFmtIDs[style.NumFmt], nil
}

// isDateFormat reports whether a custom number format contains date or time
// tokens outside quoted literals and bracketed sections.
func isDateFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydhs")
}

// cellStyle returns the current style definition of a cell.
func (g *ExcelizeGrid) cellStyle(cell string) (*excelize.Style, error) {
	f := g.file()
	id, err := f.GetCellStyle(g.sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read style %s!%s: %w", g.sheet, cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return &excelize.Style{}, nil
	}
	return style, nil
}

// updateStyle changes one facet of a cell's style and keeps the rest.
func (g *ExcelizeGrid) updateStyle(row, col int, mutate func(*excelize.Style)) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	style, err := g.cellStyle(cell)
	if err != nil {
		return err
	}
	mutate(style)
	f := g.file()
	id, err := f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("create style for %s!%s: %w", g.sheet, cell, err)
	}
	return f.SetCellStyle(g.sheet, cell, cell, id)
}

// SetCellStyle applies one of the named styles (StylePercent, StyleCurrency, ...).
func (g *ExcelizeGrid) SetCellStyle(row, col int, name string) error {
	var apply func(*excelize.Style)
	switch name {
	case StyleGeneral:
		apply = builtinNumFmt(0)
	case StylePercent:
		apply = builtinNumFmt(9)
	case StyleCommaFormat:
		apply = builtinNumFmt(3)
	case StyleCurrency:
		apply = customNumFmt(`"$"#,##0.00`)
	case StyleFullDateFormat:
		apply = customNumFmt("dddd, mmmm d, yyyy")
	default:
		return fmt.Errorf("unknown cell style %q", name)
	}
	return g.updateStyle(row, col, apply)
}

func builtinNumFmt(id int) func(*excelize.Style) {
	return func(s *excelize.Style) {
		s.NumFmt = id
		s.CustomNumFmt = nil
	}
}

func customNumFmt(format string) func(*excelize.Style) {
	return func(s *excelize.Style) {
		s.NumFmt = 0
		s.CustomNumFmt = &format
	}
}

// SetCellNumberFormat sets a custom number format string.
func (g *ExcelizeGrid) SetCellNumberFormat(row, col int, format string) error {
	return g.updateStyle(row, col, customNumFmt(format))
}

// SetCellBorder draws the border on all four sides.
func (g *ExcelizeGrid) SetCellBorder(row, col int, border Border) error {
	style, ok := borderStyles[border.Style]
	if !ok {
		return fmt.Errorf("unknown border style %q", border.Style)
	}
	return g.updateStyle(row, col, func(s *excelize.Style) {
		s.Border = []excelize.Border{
			{Type: "left", Color: border.Color, Style: style},
			{Type: "right", Color: border.Color, Style: style},
			{Type: "top", Color: border.Color, Style: style},
			{Type: "bottom", Color: border.Color, Style: style},
		}
	})
}

// SetCellFill sets a solid pattern fill.
func (g *ExcelizeGrid) SetCellFill(row, col int, color string) error {
	return g.updateStyle(row, col, func(s *excelize.Style) {
		s.Fill = excelize.Fill{Type: "pattern", Color: []string{strings.TrimPrefix(color, "#")}, Pattern: 1}
	})
}

// SetCellAlignment sets horizontal alignment, keeping the other alignment settings.
func (g *ExcelizeGrid) SetCellAlignment(row, col int, a Alignment) error {
	return g.updateStyle(row, col, func(s *excelize.Style) {
		if s.Alignment == nil {
			s.Alignment = &excelize.Alignment{}
		}
		s.Alignment.Horizontal = a.Horizontal
		s.Alignment.ShrinkToFit = a.ShrinkToFit
	})
}

// SetCellFont replaces the cell font.
func (g *ExcelizeGrid) SetCellFont(row, col int, font Font) error {
	return g.updateStyle(row, col, func(s *excelize.Style) {
		s.Font = &excelize.Font{Family: font.Family, Size: font.Size, Bold: font.Bold}
	})
}

// SetColumnWidth sets the width of a single column.
func (g *ExcelizeGrid) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return g.file().SetColWidth(g.sheet, name, name, width)
}

// AppendRow writes values below the last non-empty row and returns its number.
func (g *ExcelizeGrid) AppendRow(values []any) (int, error) {
	total, err := g.TotalRowCount()
	if err != nil {
		return 0, err
	}
	row := total + 1
	start, err := cellName(row, 1)
	if err != nil {
		return 0, err
	}
	if err := g.file().SetSheetRow(g.sheet, start, &values); err != nil {
		return 0, fmt.Errorf("append row %d to %q: %w", row, g.sheet, err)
	}
	return row, nil
}

// DeleteRow removes a row, shifting the rows below it up.
func (g *ExcelizeGrid) DeleteRow(row int) error {
	if err := g.file().RemoveRow(g.sheet, row); err != nil {
		return fmt.Errorf("delete row %d from %q: %w", row, g.sheet, err)
	}
	return nil
}

// DeleteColumn removes a column, shifting the columns to its right left.
func (g *ExcelizeGrid) DeleteColumn(col int) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	if err := g.file().RemoveCol(g.sheet, name); err != nil {
		return fmt.Errorf("delete column %s from %q: %w", name, g.sheet, err)
	}
	return nil
}

// HeaderRowWidth returns the number of physical columns in the sheet.
func (g *ExcelizeGrid) HeaderRowWidth() (int, error) {
	rows, err := g.rows()
	if err != nil {
		return 0, err
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width, nil
}

// TotalRowCount returns the number of the last row holding a value.
func (g *ExcelizeGrid) TotalRowCount() (int, error) {
	rows, err := g.rows()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (g *ExcelizeGrid) rows() ([][]string, error) {
	rows, err := g.file().GetRows(g.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", g.sheet, err)
	}
	return rows, nil
}

// MarkDirty flags the owning workbook as having unsaved changes.
func (g *ExcelizeGrid) MarkDirty() {
	g.wb.MarkDirty()
}
