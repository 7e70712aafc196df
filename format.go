package xlsheet

import "strings"

// Action is one formatting step derived for a column.
type Action string

const (
	ActionDefaultBorder Action = "default_border"

	ActionLeftAlign   Action = "left_align"
	ActionCenterAlign Action = "center_align"
	ActionRightAlign  Action = "right_align"

	ActionBlackFill     Action = "black_fill"
	ActionLightGreyFill Action = "light_grey_fill"

	ActionPercent     Action = "percent"
	ActionCurrency    Action = "currency"
	ActionInteger     Action = "integer"
	ActionCommaFormat Action = "comma_format"
	ActionDecimal     Action = "decimal"
	ActionCountDays   Action = "count_days"
	ActionFullDate    Action = "full_date"
	ActionDate        Action = "date"
)

// PickFormat derives the ordered action list for a column header:
// a border, then alignment, then fill, then at most one number category.
// Categories are tried in a fixed order and the first match wins.
func PickFormat(header string, cfg *FormatConfig) []Action {
	actions := []Action{ActionDefaultBorder}
	if cfg == nil {
		return actions
	}

	var align Action
	if cfg.DefaultAlign != "" {
		align = alignAction(cfg.DefaultAlign)
	}
	if cfg.LeftAlign != nil {
		align = ActionCenterAlign
		if hasExact(*cfg.LeftAlign, header) {
			align = ActionLeftAlign
		}
	}
	if cfg.RightAlign != nil {
		align = ActionCenterAlign
		if hasExact(*cfg.RightAlign, header) {
			align = ActionRightAlign
		}
	}
	if align != "" {
		actions = append(actions, align)
	}

	if cfg.BlackFill != nil {
		if containsAny(*cfg.BlackFill, header) {
			actions = append(actions, ActionBlackFill)
		}
	} else if cfg.LightGreyFill != nil {
		if containsAny(*cfg.LightGreyFill, header) {
			actions = append(actions, ActionLightGreyFill)
		}
	}

	categories := []category{
		{ActionPercent, cfg.Percent, containsAny},
		{ActionCurrency, cfg.Currency, containsAny},
		{ActionInteger, cfg.Integer, hasExact},
		{ActionCommaFormat, cfg.CommaFormat, hasExact},
		{ActionDecimal, cfg.Decimal, hasExact},
		{ActionCountDays, cfg.CountDays, hasExact},
	}
	// date is only consulted when full_date is not configured
	if cfg.FullDate != nil {
		categories = append(categories, category{ActionFullDate, cfg.FullDate, containsAny})
	} else {
		categories = append(categories, category{ActionDate, cfg.Date, containsAny})
	}
	for _, cat := range categories {
		if cat.entries != nil && cat.match(*cat.entries, header) {
			return append(actions, cat.action)
		}
	}
	return actions
}

type category struct {
	action  Action
	entries *[]string
	match   func([]string, string) bool
}

func alignAction(v string) Action {
	switch strings.ToLower(v) {
	case "left", "left_align":
		return ActionLeftAlign
	case "right", "right_align":
		return ActionRightAlign
	default:
		return ActionCenterAlign
	}
}

func hasExact(entries []string, header string) bool {
	for _, e := range entries {
		if e == header {
			return true
		}
	}
	return false
}

// containsAny reports whether any entry occurs in header, ignoring case.
func containsAny(entries []string, header string) bool {
	h := strings.ToLower(header)
	for _, e := range entries {
		if strings.Contains(h, strings.ToLower(e)) {
			return true
		}
	}
	return false
}

// ColumnFormats returns the action list of every indexed header. The result
// is computed on first use and cached until InvalidateFormats.
func (s *Sheet) ColumnFormats() map[string][]Action {
	if s.formats == nil {
		s.formats = make(map[string][]Action, s.cols.Len())
		for _, h := range s.cols.Headers() {
			s.formats[h] = PickFormat(h, s.config)
		}
	}
	return s.formats
}

// InvalidateFormats drops the cached column formats.
func (s *Sheet) InvalidateFormats() {
	s.formats = nil
}

func hasAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
