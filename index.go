package xlsheet

import (
	"fmt"
	"sort"
)

// ColumnIndex maps header text in row 1 to a 1-based column coordinate.
type ColumnIndex struct {
	cols    map[string]int
	headers []string // indexed headers, left to right
}

// BuildColumnIndex scans the header row. Empty headers are skipped; their
// columns still occupy a coordinate. A duplicate header keeps its last column.
func BuildColumnIndex(g Grid) (*ColumnIndex, error) {
	width, err := g.HeaderRowWidth()
	if err != nil {
		return nil, fmt.Errorf("header row width: %w", err)
	}
	idx := &ColumnIndex{cols: make(map[string]int, width)}
	for col := 1; col <= width; col++ {
		v, err := g.CellValue(1, col)
		if err != nil {
			return nil, fmt.Errorf("read header %d: %w", col, err)
		}
		if isEmpty(v) {
			continue
		}
		idx.set(Stringify(v), col)
	}
	return idx, nil
}

func (c *ColumnIndex) set(header string, col int) {
	if _, ok := c.cols[header]; ok {
		for i, h := range c.headers {
			if h == header {
				c.headers = append(c.headers[:i], c.headers[i+1:]...)
				break
			}
		}
	}
	c.cols[header] = col
	c.headers = append(c.headers, header)
}

// Lookup returns the column of a header.
func (c *ColumnIndex) Lookup(header string) (int, bool) {
	col, ok := c.cols[header]
	return col, ok
}

// Headers returns the indexed headers ordered by column.
func (c *ColumnIndex) Headers() []string {
	out := make([]string, len(c.headers))
	copy(out, c.headers)
	return out
}

// Len returns the number of indexed headers.
func (c *ColumnIndex) Len() int { return len(c.cols) }

// RowIndex maps the stringified key-column value of each data row to its
// 1-based row coordinate.
type RowIndex struct {
	rows map[string]int
}

// BuildRowIndex scans rows 2..TotalRowCount of the key column. Rows with an
// empty key are skipped.
func BuildRowIndex(g Grid, cols *ColumnIndex, keyHeader string) (*RowIndex, error) {
	keyCol, ok := cols.Lookup(keyHeader)
	if !ok {
		return nil, &ConfigurationError{Column: keyHeader, Reason: "key column not found in header row"}
	}
	total, err := g.TotalRowCount()
	if err != nil {
		return nil, fmt.Errorf("row count: %w", err)
	}
	idx := &RowIndex{rows: make(map[string]int, total)}
	for row := 2; row <= total; row++ {
		v, err := g.CellValue(row, keyCol)
		if err != nil {
			return nil, fmt.Errorf("read key at row %d: %w", row, err)
		}
		if isEmpty(v) {
			continue
		}
		idx.rows[Stringify(v)] = row
	}
	return idx, nil
}

// Lookup returns the row holding key.
func (r *RowIndex) Lookup(key string) (int, bool) {
	row, ok := r.rows[key]
	return row, ok
}

// Len returns the number of indexed rows.
func (r *RowIndex) Len() int { return len(r.rows) }

// Keys returns the indexed keys ordered by row.
func (r *RowIndex) Keys() []string {
	keys := make([]string, 0, len(r.rows))
	for k := range r.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return r.rows[keys[i]] < r.rows[keys[j]]
	})
	return keys
}

// Rows returns the indexed row coordinates in ascending order.
func (r *RowIndex) Rows() []int {
	out := make([]int, 0, len(r.rows))
	for _, k := range r.Keys() {
		out = append(out, r.rows[k])
	}
	return out
}

func (r *RowIndex) set(key string, row int) { r.rows[key] = row }

func (r *RowIndex) remove(key string) { delete(r.rows, key) }

// keyAt returns the key stored for a row coordinate.
func (r *RowIndex) keyAt(row int) (string, bool) {
	for k, v := range r.rows {
		if v == row {
			return k, true
		}
	}
	return "", false
}
