package xlsheet

import (
	"fmt"
	"math"
	"strconv"
)

// Key addresses a row or a column either by a 1-based coordinate or by a
// symbol (a header for columns, a key-column value for rows).
type Key struct {
	coord   int
	symbol  string
	isCoord bool
}

// Coord creates a Key holding a 1-based grid coordinate.
func Coord(n int) Key {
	return Key{coord: n, isCoord: true}
}

// Symbol creates a Key that is looked up in an index.
func Symbol(s string) Key {
	return Key{symbol: s}
}

// SymbolOf creates a symbolic Key from any value using Stringify, so an
// integer key-column value such as 1001 is looked up as "1001".
func SymbolOf(v any) Key {
	return Symbol(Stringify(v))
}

// IsCoord reports whether the key is a coordinate.
func (k Key) IsCoord() bool { return k.isCoord }

// Coordinate returns the coordinate and true for coordinate keys.
func (k Key) Coordinate() (int, bool) {
	return k.coord, k.isCoord
}

// String formats the key as "#3" for coordinates or the symbol itself.
func (k Key) String() string {
	if k.isCoord {
		return "#" + strconv.Itoa(k.coord)
	}
	return k.symbol
}

// Stringify renders a cell value the way the row index stores it.
// Integral floats render without a fraction: 1989.0 → "1989".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// isEmpty reports whether a cell value counts as empty: nil or "".
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
