package xlsheet

import (
	"fmt"
	"time"
)

// IndirectCell returns an INDIRECT reference to the cell offset columns away
// in the same row, in R1C1 notation. Negative offsets point left.
func IndirectCell(offset int) string {
	return fmt.Sprintf(`INDIRECT("RC[%d]",0)`, offset)
}

// EasyIndirectCell returns an IndirectCell reference for a formula placed in
// column cur that reads column ref of the same row.
func (s *Sheet) EasyIndirectCell(cur, ref string) (string, error) {
	c, ok := s.cols.Lookup(cur)
	if !ok {
		return "", fmt.Errorf("sheet %q: indirect from %q: %w", s.name, cur, ErrUnknownColumn)
	}
	r, ok := s.cols.Lookup(ref)
	if !ok {
		return "", fmt.Errorf("sheet %q: indirect to %q: %w", s.name, ref, ErrUnknownColumn)
	}
	return IndirectCell(r - c), nil
}

// ExcelDate builds a DATE/TIME formula for t. With date only, the time part
// is midnight; with clock only, just the TIME part is produced. It returns
// false when neither part is requested.
func ExcelDate(t time.Time, date, clock bool) (string, bool) {
	switch {
	case date && clock:
		return fmt.Sprintf("=DATE(%d, %d, %d)+TIME(%d,%d,0)", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute()), true
	case date:
		return fmt.Sprintf("=DATE(%d, %d, %d)+TIME(0,0,0)", t.Year(), int(t.Month()), t.Day()), true
	case clock:
		return fmt.Sprintf("=TIME(%d,%d,0)", t.Hour(), t.Minute()), true
	}
	return "", false
}
