package xlsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Describe returns a human-readable tree of the sheet: key column, indexed
// rows and, for every column, its coordinate and formatting actions.
// Useful for checking a format config against a real file.
func (s *Sheet) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s (key column %q, %d rows)\n", s.name, s.keyColumn, s.rows.Len())

	formats := s.ColumnFormats()
	b.WriteString("  Columns:\n")
	for _, h := range s.cols.Headers() {
		c, _ := s.cols.Lookup(h)
		letter, err := excelize.ColumnNumberToName(c)
		if err != nil {
			letter = fmt.Sprintf("#%d", c)
		}
		marker := ""
		if h == s.keyColumn {
			marker = " (key)"
		}
		fmt.Fprintf(&b, "    %s %q%s %s\n", letter, h, marker, describeActions(formats[h]))
	}

	if len(s.missing) > 0 {
		b.WriteString("  Missing columns:\n")
		for _, h := range s.missing {
			fmt.Fprintf(&b, "    %q\n", h)
		}
	}
	return b.String()
}

func describeActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
