package xlsheet

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// AppendRow writes values as a new row below the last one, keyed by the
// value under the key column. Values for headers the sheet lacks are
// dropped and recorded in MissingColumns. It fails with ErrNoKeyValue,
// leaving the grid untouched, when there is no key value.
func (s *Sheet) AppendRow(values map[string]any) error {
	key, ok := values[s.keyColumn]
	if !ok || isEmpty(key) {
		return fmt.Errorf("sheet %q: append row: %w", s.name, ErrNoKeyValue)
	}

	var unknown []string
	for h := range values {
		if _, known := s.cols.Lookup(h); !known && !s.missingSeen[h] {
			unknown = append(unknown, h)
		}
	}
	sort.Strings(unknown)
	for _, h := range unknown {
		s.missingSeen[h] = true
		s.missing = append(s.missing, h)
		s.log.WithField("column", h).Warn("column not in sheet, value dropped")
	}

	width := 0
	for _, h := range s.cols.Headers() {
		if c, _ := s.cols.Lookup(h); c > width {
			width = c
		}
	}
	row := make([]any, width)
	for _, h := range s.cols.Headers() {
		c, _ := s.cols.Lookup(h)
		if v, ok := values[h]; ok && !isEmpty(v) {
			row[c-1] = v
		}
	}

	r, err := s.grid.AppendRow(row)
	if err != nil {
		return fmt.Errorf("sheet %q: append row: %w", s.name, err)
	}
	s.rows.set(Stringify(key), r)
	s.grid.MarkDirty()
	s.log.WithFields(logrus.Fields{"key": Stringify(key), "row": r}).Debug("row appended")
	return nil
}

// DeleteRow removes the row addressed by row and reports whether a row was
// deleted. The row index is rebuilt afterwards because every row below the
// deleted one moves up.
func (s *Sheet) DeleteRow(row Key) (bool, error) {
	r, ok := s.ResolveRow(row)
	if !ok || r < 2 {
		return false, nil
	}
	if row.IsCoord() {
		total, err := s.grid.TotalRowCount()
		if err != nil {
			return false, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		if r > total {
			return false, nil
		}
	}
	if err := s.grid.DeleteRow(r); err != nil {
		return false, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	s.grid.MarkDirty()
	if err := s.rebuildRows(); err != nil {
		return true, err
	}
	s.log.WithFields(logrus.Fields{"key": row.String(), "row": r}).Debug("row deleted")
	return true, nil
}

// DeleteColumn removes the column under header and reports whether a column
// was deleted. The column index is rebuilt and cached column formats are
// dropped. The key column cannot be deleted.
func (s *Sheet) DeleteColumn(header string) (bool, error) {
	c, ok := s.cols.Lookup(header)
	if !ok {
		return false, nil
	}
	if header == s.keyColumn {
		return false, &ConfigurationError{Sheet: s.name, Column: header, Reason: "cannot delete the key column"}
	}
	if err := s.grid.DeleteColumn(c); err != nil {
		return false, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	s.grid.MarkDirty()

	cols, err := BuildColumnIndex(s.grid)
	if err != nil {
		return true, fmt.Errorf("sheet %q: rebuild column index: %w", s.name, err)
	}
	s.cols = cols
	s.InvalidateFormats()
	s.log.WithField("column", header).Debug("column deleted")
	return true, nil
}
