package xlsheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FormatConfig declares which formatting applies to which columns. Each list
// bucket holds header names or header fragments. A nil bucket is never
// consulted; an empty, non-nil bucket is consulted and matches nothing, which
// matters for the alignment buckets (any configured alignment bucket centers
// every column that is not a member).
type FormatConfig struct {
	Percent     *[]string `yaml:"percent,omitempty" toml:"percent,omitempty"`
	Currency    *[]string `yaml:"currency,omitempty" toml:"currency,omitempty"`
	Integer     *[]string `yaml:"integer,omitempty" toml:"integer,omitempty"`
	CommaFormat *[]string `yaml:"comma_format,omitempty" toml:"comma_format,omitempty"`
	Decimal     *[]string `yaml:"decimal,omitempty" toml:"decimal,omitempty"`
	CountDays   *[]string `yaml:"count_days,omitempty" toml:"count_days,omitempty"`
	FullDate    *[]string `yaml:"full_date,omitempty" toml:"full_date,omitempty"`
	Date        *[]string `yaml:"date,omitempty" toml:"date,omitempty"`

	DefaultAlign string    `yaml:"default_align,omitempty" toml:"default_align,omitempty" validate:"omitempty,oneof=left center right left_align center_align right_align"`
	LeftAlign    *[]string `yaml:"left_align,omitempty" toml:"left_align,omitempty"`
	RightAlign   *[]string `yaml:"right_align,omitempty" toml:"right_align,omitempty"`

	BlackFill     *[]string `yaml:"black_fill,omitempty" toml:"black_fill,omitempty"`
	LightGreyFill *[]string `yaml:"light_grey_fill,omitempty" toml:"light_grey_fill,omitempty"`

	Header          *HeaderConfig `yaml:"header,omitempty" toml:"header,omitempty"`
	ShrinkToFitCell bool          `yaml:"shrink_to_fit_cell" toml:"shrink_to_fit_cell"`
}

// HeaderConfig is the font applied to the header row.
type HeaderConfig struct {
	FontSize float64 `yaml:"font_size" toml:"font_size" validate:"gte=1,lte=409"`
	Bold     bool    `yaml:"bold" toml:"bold"`
}

// Bucket returns a pointer to a list bucket for use in FormatConfig literals.
func Bucket(entries ...string) *[]string {
	if entries == nil {
		entries = []string{}
	}
	return &entries
}

// DefaultFormatConfig returns the rules used when a sheet is given none.
func DefaultFormatConfig() *FormatConfig {
	return &FormatConfig{
		Percent:         Bucket("%", "Percent"),
		Currency:        Bucket("Price", "MSRP", "Cost"),
		Integer:         Bucket("ID", "Number"),
		CountDays:       Bucket("Days Till", "Days Since"),
		Date:            Bucket("Last Updated", "Date"),
		Decimal:         Bucket("Hours"),
		LeftAlign:       Bucket("Name"),
		Header:          &HeaderConfig{FontSize: 12, Bold: true},
		ShrinkToFitCell: true,
	}
}

type namedBucket struct {
	name    string
	entries *[]string
}

// buckets lists every list bucket with its configuration key.
func (c *FormatConfig) buckets() []namedBucket {
	return []namedBucket{
		{"percent", c.Percent},
		{"currency", c.Currency},
		{"integer", c.Integer},
		{"comma_format", c.CommaFormat},
		{"decimal", c.Decimal},
		{"count_days", c.CountDays},
		{"full_date", c.FullDate},
		{"date", c.Date},
		{"left_align", c.LeftAlign},
		{"right_align", c.RightAlign},
		{"black_fill", c.BlackFill},
		{"light_grey_fill", c.LightGreyFill},
	}
}

var configValidator = validator.New()

// Validate checks field constraints (header font size, default alignment).
func (c *FormatConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid format config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid format config: %w", err)
	}
	return nil
}

// LoadFormatConfig reads a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadFormatConfig(path string) (*FormatConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read format config: %w", err)
	}
	cfg, err := ParseFormatConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseFormatConfig decodes data in the given format ("yaml", "yml" or
// "toml") and validates the result.
func ParseFormatConfig(data []byte, format string) (*FormatConfig, error) {
	cfg := &FormatConfig{}
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml format config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml format config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format config type %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
