package xlsheet

import (
	"fmt"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Formatting will fail
	SeverityWarning                 // Sheet or config may behave unexpectedly
)

// ValidationIssue represents a single problem found in a sheet or its config.
type ValidationIssue struct {
	Severity Severity
	Location string // "Sheet1!B1", "config.percent", ...
	Message  string
}

// String formats the issue as "[ERROR] Sheet1!B1: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Location, v.Message)
}

// Validate checks the sheet layout and its format config without changing
// anything. A non-nil error means the grid could not be read.
func (s *Sheet) Validate() ([]ValidationIssue, error) {
	var issues []ValidationIssue

	layout, err := s.validateLayout()
	if err != nil {
		return nil, err
	}
	issues = append(issues, layout...)
	issues = append(issues, s.validateConfig()...)

	for _, h := range s.missing {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Location: s.name,
			Message:  fmt.Sprintf("values for unknown column %q were dropped on append", h),
		})
	}
	return issues, nil
}

// validateLayout reports blank and duplicate headers and duplicate keys.
func (s *Sheet) validateLayout() ([]ValidationIssue, error) {
	var issues []ValidationIssue
	g := s.grid

	width, err := g.HeaderRowWidth()
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	seen := make(map[string]int, width)
	for c := 1; c <= width; c++ {
		v, err := g.CellValue(1, c)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		loc := s.cellLocation(1, c)
		if isEmpty(v) {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: loc,
				Message:  "column has no header and cannot be addressed by name",
			})
			continue
		}
		h := Stringify(v)
		if prev, dup := seen[h]; dup {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: loc,
				Message:  fmt.Sprintf("header %q duplicates %s; the last one wins", h, s.cellLocation(1, prev)),
			})
		}
		seen[h] = c
	}

	keyCol, ok := s.cols.Lookup(s.keyColumn)
	if !ok {
		return issues, nil
	}
	total, err := g.TotalRowCount()
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	keys := make(map[string]int, total)
	for r := 2; r <= total; r++ {
		v, err := g.CellValue(r, keyCol)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.name, err)
		}
		if isEmpty(v) {
			continue
		}
		k := Stringify(v)
		if prev, dup := keys[k]; dup {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Location: s.cellLocation(r, keyCol),
				Message:  fmt.Sprintf("key %q also in row %d; lookups resolve to row %d", k, prev, r),
			})
		}
		keys[k] = r
	}
	return issues, nil
}

// validateConfig reports invalid settings, ignored buckets and buckets that
// match no column.
func (s *Sheet) validateConfig() []ValidationIssue {
	cfg := s.config
	if cfg == nil {
		return []ValidationIssue{{
			Severity: SeverityWarning,
			Location: "config",
			Message:  "no format config; formatting is disabled",
		}}
	}

	var issues []ValidationIssue
	if err := cfg.Validate(); err != nil {
		issues = append(issues, ValidationIssue{Severity: SeverityError, Location: "config", Message: err.Error()})
	}
	if cfg.LeftAlign != nil && cfg.RightAlign != nil {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Location: "config.left_align",
			Message:  "right_align is also set; columns not in right_align are centered",
		})
	}
	if cfg.BlackFill != nil && cfg.LightGreyFill != nil {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Location: "config.light_grey_fill",
			Message:  "ignored because black_fill is set",
		})
	}
	if cfg.FullDate != nil && cfg.Date != nil {
		issues = append(issues, ValidationIssue{
			Severity: SeverityWarning,
			Location: "config.date",
			Message:  "ignored because full_date is set",
		})
	}

	headers := s.cols.Headers()
	for _, b := range cfg.buckets() {
		if b.entries == nil {
			continue
		}
		match := hasExact
		if substringBuckets[b.name] {
			match = containsAny
		}
		for _, entry := range *b.entries {
			found := false
			for _, h := range headers {
				if match([]string{entry}, h) {
					found = true
					break
				}
			}
			if !found {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					Location: "config." + b.name,
					Message:  fmt.Sprintf("%q matches no column", entry),
				})
			}
		}
	}
	return issues
}

// substringBuckets match header fragments; the others need the full header.
var substringBuckets = map[string]bool{
	"percent":         true,
	"currency":        true,
	"full_date":       true,
	"date":            true,
	"black_fill":      true,
	"light_grey_fill": true,
}

func (s *Sheet) cellLocation(row, col int) string {
	name, err := cellName(row, col)
	if err != nil {
		return fmt.Sprintf("%s!R%dC%d", s.name, row, col)
	}
	return s.name + "!" + name
}
