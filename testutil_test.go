package xlsheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newPeopleFile builds the workbook most tests work on:
//
//	Name  | Birth Month | Age
//	Brian | June        | 1989
//	June  | January     | 1995
//	Pat   | March       | 2001
func newPeopleFile(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Birth Month", "Age"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Brian", "June", 1989}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"June", "January", 1995}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Pat", "March", 2001}))
	return f
}

// newPeopleSheet attaches a Sheet keyed by Name to newPeopleFile.
func newPeopleSheet(t *testing.T, opts ...Option) (*Sheet, *Workbook) {
	t.Helper()
	wb := NewWorkbook(newPeopleFile(t))
	s, err := OpenSheet(wb, "Name", opts...)
	require.NoError(t, err)
	return s, wb
}

// memGrid is an in-memory Grid that records styling calls.
type memGrid struct {
	cells    map[[2]int]any
	links    map[[2]int]string
	temporal map[[2]int]bool
	widths   map[int]float64
	calls    []string
	dirty    int
}

func newMemGrid(rows ...[]any) *memGrid {
	g := &memGrid{
		cells:    make(map[[2]int]any),
		links:    make(map[[2]int]string),
		temporal: make(map[[2]int]bool),
		widths:   make(map[int]float64),
	}
	for r, row := range rows {
		for c, v := range row {
			if v != nil {
				g.cells[[2]int{r + 1, c + 1}] = v
			}
		}
	}
	return g
}

func (g *memGrid) CellValue(row, col int) (any, error) {
	return g.cells[[2]int{row, col}], nil
}

func (g *memGrid) SetCellValue(row, col int, value any) error {
	if value == nil {
		delete(g.cells, [2]int{row, col})
		return nil
	}
	g.cells[[2]int{row, col}] = value
	return nil
}

func (g *memGrid) CellHyperlink(row, col int) (string, bool, error) {
	target, ok := g.links[[2]int{row, col}]
	return target, ok, nil
}

func (g *memGrid) CellIsTemporal(row, col int) (bool, error) {
	return g.temporal[[2]int{row, col}], nil
}

func (g *memGrid) record(format string, args ...any) error {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
	return nil
}

func (g *memGrid) SetCellStyle(row, col int, name string) error {
	return g.record("style(%d,%d)=%s", row, col, name)
}

func (g *memGrid) SetCellNumberFormat(row, col int, format string) error {
	return g.record("numfmt(%d,%d)=%s", row, col, format)
}

func (g *memGrid) SetCellBorder(row, col int, border Border) error {
	return g.record("border(%d,%d)=%s", row, col, border.Style)
}

func (g *memGrid) SetCellFill(row, col int, color string) error {
	return g.record("fill(%d,%d)=%s", row, col, color)
}

func (g *memGrid) SetCellAlignment(row, col int, a Alignment) error {
	return g.record("align(%d,%d)=%s shrink=%t", row, col, a.Horizontal, a.ShrinkToFit)
}

func (g *memGrid) SetCellFont(row, col int, font Font) error {
	return g.record("font(%d,%d)=%s %.0f bold=%t", row, col, font.Family, font.Size, font.Bold)
}

func (g *memGrid) SetColumnWidth(col int, width float64) error {
	g.widths[col] = width
	return nil
}

func (g *memGrid) AppendRow(values []any) (int, error) {
	total, _ := g.TotalRowCount()
	row := total + 1
	for c, v := range values {
		if v != nil {
			g.cells[[2]int{row, c + 1}] = v
		}
	}
	return row, nil
}

func (g *memGrid) DeleteRow(row int) error {
	next := make(map[[2]int]any, len(g.cells))
	for k, v := range g.cells {
		switch {
		case k[0] < row:
			next[k] = v
		case k[0] > row:
			next[[2]int{k[0] - 1, k[1]}] = v
		}
	}
	g.cells = next
	return nil
}

func (g *memGrid) DeleteColumn(col int) error {
	next := make(map[[2]int]any, len(g.cells))
	for k, v := range g.cells {
		switch {
		case k[1] < col:
			next[k] = v
		case k[1] > col:
			next[[2]int{k[0], k[1] - 1}] = v
		}
	}
	g.cells = next
	return nil
}

func (g *memGrid) HeaderRowWidth() (int, error) {
	width := 0
	for k := range g.cells {
		if k[1] > width {
			width = k[1]
		}
	}
	return width, nil
}

func (g *memGrid) TotalRowCount() (int, error) {
	total := 0
	for k := range g.cells {
		if k[0] > total {
			total = k[0]
		}
	}
	return total, nil
}

func (g *memGrid) MarkDirty() { g.dirty++ }
