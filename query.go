package xlsheet

import (
	"fmt"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Select evaluates condition against every indexed row and returns the keys
// of the rows for which it is true, in row order. Each row is visible as
// `row` (header → value) and `key`; headers that are valid identifiers are
// also bound directly:
//
//	sheet.Select(`Age > 30 && row["Birth Month"] == "June"`)
//
// A condition that yields nil counts as false; any other non-bool result is
// an error.
func (s *Sheet) Select(condition string) ([]string, error) {
	program, err := s.compile(condition)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: compile condition %q: %w", s.name, condition, err)
	}

	var keys []string
	for _, key := range s.rows.Keys() {
		row, err := s.GetRow(Symbol(key))
		if err != nil {
			return nil, err
		}
		result, err := expr.Run(program, s.rowEnv(key, row))
		if err != nil {
			return nil, fmt.Errorf("sheet %q: evaluate condition %q on row %q: %w", s.name, condition, key, err)
		}
		if result == nil {
			continue
		}
		ok, isBool := result.(bool)
		if !isBool {
			return nil, fmt.Errorf("sheet %q: condition %q evaluated to %T, expected bool", s.name, condition, result)
		}
		if ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Sheet) rowEnv(key string, row map[string]any) map[string]any {
	env := make(map[string]any, len(row)+2)
	for h, v := range row {
		if isIdentifier(h) {
			env[h] = v
		}
	}
	env["row"] = row
	env["key"] = key
	return env
}

func (s *Sheet) compile(condition string) (*vm.Program, error) {
	if p, ok := s.programs[condition]; ok {
		return p, nil
	}
	// values are left untyped so one program serves rows of mixed types
	env := map[string]any{"row": map[string]any{}, "key": ""}
	for _, h := range s.cols.Headers() {
		if isIdentifier(h) {
			env[h] = nil
		}
	}
	program, err := expr.Compile(condition, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	s.programs[condition] = program
	return program, nil
}

func isIdentifier(s string) bool {
	if s == "" || s == "row" || s == "key" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
