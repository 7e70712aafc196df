package xlsheet

import (
	"fmt"
	"reflect"
	"time"
)

// hyperlinkWriter is implemented by grids that can attach a clickable link
// to a cell.
type hyperlinkWriter interface {
	SetCellHyperlink(row, col int, url, display string) error
}

// GetCell returns the value at (row, col), or nil when either key does not
// resolve. An attached hyperlink returns its target instead of the cell
// text, and a HYPERLINK formula returns the link it points to.
func (s *Sheet) GetCell(row, col Key) (any, error) {
	r, c := s.Resolve(row, col)
	if r == 0 || c == 0 {
		return nil, nil
	}
	target, ok, err := s.grid.CellHyperlink(r, c)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	if ok {
		return target, nil
	}
	v, err := s.grid.CellValue(r, c)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	if isHyperlinkFormula(v) {
		return ExtractHyperlink(v)
	}
	return v, nil
}

// UpdateCell writes value at (row, col) and reports whether the grid was
// changed. It returns false without writing when a key does not resolve,
// when KeepExisting is set and the cell already holds a value, or when the
// cell already holds value. An empty string clears the cell. Writing to the
// key column moves the row's entry in the row index.
func (s *Sheet) UpdateCell(row, col Key, value any, opts ...UpdateOption) (bool, error) {
	o := &updateOptions{}
	for _, opt := range opts {
		opt(o)
	}

	r, c := s.Resolve(row, col)
	if r == 0 || c == 0 {
		return false, nil
	}
	current, err := s.grid.CellValue(r, c)
	if err != nil {
		return false, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	if o.keepExisting && !isEmpty(current) {
		return false, nil
	}
	if str, ok := value.(string); ok && str == "" {
		value = nil
	}

	same, err := s.holds(r, c, current, value)
	if err != nil || same {
		return false, err
	}
	if err := s.write(r, c, value); err != nil {
		return false, err
	}
	s.grid.MarkDirty()

	if keyCol, ok := s.cols.Lookup(s.keyColumn); ok && keyCol == c && r > 1 {
		if old, ok := s.rows.keyAt(r); ok {
			s.rows.remove(old)
		}
		if !isEmpty(value) {
			s.rows.set(Stringify(value), r)
		}
	}
	return true, nil
}

// ClearCell empties the cell at (row, col).
func (s *Sheet) ClearCell(row, col Key) (bool, error) {
	return s.UpdateCell(row, col, "")
}

func (s *Sheet) write(r, c int, value any) error {
	if h, ok := value.(HyperlinkValue); ok {
		if hw, ok := s.grid.(hyperlinkWriter); ok {
			if err := hw.SetCellHyperlink(r, c, h.URL, h.Display); err != nil {
				return fmt.Errorf("sheet %q: %w", s.name, err)
			}
			return nil
		}
		value = h.Formula()
	}
	if err := s.grid.SetCellValue(r, c, value); err != nil {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return nil
}

// holds reports whether the cell at (r, c), currently holding current,
// already equals value.
func (s *Sheet) holds(r, c int, current, value any) (bool, error) {
	h, ok := value.(HyperlinkValue)
	if !ok {
		return sameValue(current, value), nil
	}
	target, linked, err := s.grid.CellHyperlink(r, c)
	if err != nil {
		return false, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return linked && target == h.URL && Stringify(current) == h.String(), nil
}

// sameValue compares cell values the way a spreadsheet would: numbers by
// value regardless of Go type, times by instant, everything else exactly.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// GetRow returns every indexed header mapped to its raw value in the row.
// A row key that does not resolve yields every header mapped to nil.
func (s *Sheet) GetRow(row Key) (map[string]any, error) {
	headers := s.cols.Headers()
	out := make(map[string]any, len(headers))
	r, ok := s.ResolveRow(row)
	for _, h := range headers {
		if !ok {
			out[h] = nil
			continue
		}
		c, _ := s.cols.Lookup(h)
		v, err := s.grid.CellValue(r, c)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		out[h] = v
	}
	return out, nil
}
