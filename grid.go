package xlsheet

// Grid abstracts one sheet of a spreadsheet document. Rows and columns are
// 1-based. Implementations own persistence; a Sheet only reads, writes and
// marks the document dirty.
type Grid interface {
	// Cell data access
	CellValue(row, col int) (any, error)
	SetCellValue(row, col int, value any) error
	CellHyperlink(row, col int) (target string, ok bool, err error)
	CellIsTemporal(row, col int) (bool, error)

	// Cell styling
	SetCellStyle(row, col int, name string) error
	SetCellNumberFormat(row, col int, format string) error
	SetCellBorder(row, col int, border Border) error
	SetCellFill(row, col int, color string) error
	SetCellAlignment(row, col int, a Alignment) error
	SetCellFont(row, col int, font Font) error
	SetColumnWidth(col int, width float64) error

	// Structure
	AppendRow(values []any) (int, error)
	DeleteRow(row int) error
	DeleteColumn(col int) error
	HeaderRowWidth() (int, error)
	TotalRowCount() (int, error)

	// Document change tracking
	MarkDirty()
}

// Border describes an outline drawn on all four sides of a cell.
type Border struct {
	Style string // "thin", "medium", "thick", "dashed", "dotted", "double"
	Color string // hex RGB, empty for automatic
}

// Alignment describes horizontal placement of cell text.
type Alignment struct {
	Horizontal  string // "left", "center", "right"
	ShrinkToFit bool
}

// Font describes the header font applied by FormatHeader.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// Named cell styles understood by Grid.SetCellStyle.
const (
	StyleGeneral        = "General"
	StylePercent        = "Percent"
	StyleCurrency       = "Currency"
	StyleFullDateFormat = "full_date_format"
	StyleCommaFormat    = "comma_format"
)
