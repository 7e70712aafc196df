package xlsheet

import (
	"errors"
	"fmt"
	"strings"
)

const hyperlinkMarker = "=HYPERLINK("

// HyperlinkValue is a cell value that UpdateCell writes as a clickable link
// when the grid supports attached hyperlinks, and as a HYPERLINK formula
// otherwise.
type HyperlinkValue struct {
	URL     string
	Display string
}

// String returns the display text for the hyperlink.
func (h HyperlinkValue) String() string {
	if h.Display != "" {
		return h.Display
	}
	return h.URL
}

// Formula renders the link as an Excel HYPERLINK formula.
func (h HyperlinkValue) Formula() string {
	return HyperlinkFormula(h.URL, h.Display)
}

// Hyperlink creates a HyperlinkValue.
func Hyperlink(url, display string) HyperlinkValue {
	return HyperlinkValue{URL: url, Display: display}
}

// HyperlinkFormula builds =HYPERLINK("url","display"). Quotes inside the
// arguments are doubled as Excel expects.
func HyperlinkFormula(url, display string) string {
	esc := func(s string) string { return strings.ReplaceAll(s, `"`, `""`) }
	if display == "" {
		return fmt.Sprintf(`=HYPERLINK("%s")`, esc(url))
	}
	return fmt.Sprintf(`=HYPERLINK("%s","%s")`, esc(url), esc(display))
}

// ExtractHyperlink returns the link target of a HYPERLINK formula, i.e. its
// first quoted segment:
//
//	ExtractHyperlink(`=HYPERLINK("site.com","label")`) // "site.com"
//
// A nil or empty value fails with ErrNilCellValue. Anything that is not a
// HYPERLINK formula fails with a *FormatError wrapping ErrNotHyperlink.
func ExtractHyperlink(v any) (string, error) {
	if isEmpty(v) {
		return "", ErrNilCellValue
	}
	s, ok := v.(string)
	if !ok || !strings.Contains(s, hyperlinkMarker) {
		return "", &FormatError{Value: Stringify(v), Err: ErrNotHyperlink}
	}
	parts := strings.Split(s, `"`)
	if len(parts) < 3 {
		return "", &FormatError{Value: s, Err: errors.New("no quoted link target")}
	}
	return parts[1], nil
}

func isHyperlinkFormula(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, hyperlinkMarker)
}
