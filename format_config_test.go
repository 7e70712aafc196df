package xlsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
percent: ["%", "Rate"]
currency: [Price]
integer: [ID]
left_align: []
black_fill: [Secret]
header:
  font_size: 14
  bold: true
shrink_to_fit_cell: true
`

const tomlConfig = `
currency = ["Price", "Cost"]
count_days = ["Days Till"]
default_align = "right"
shrink_to_fit_cell = false

[header]
font_size = 11
bold = false
`

func TestParseFormatConfig_YAML(t *testing.T) {
	cfg, err := ParseFormatConfig([]byte(yamlConfig), "yaml")
	require.NoError(t, err)

	require.NotNil(t, cfg.Percent)
	assert.Equal(t, []string{"%", "Rate"}, *cfg.Percent)
	require.NotNil(t, cfg.LeftAlign, "an empty list is still a configured bucket")
	assert.Empty(t, *cfg.LeftAlign)
	assert.Nil(t, cfg.RightAlign)
	assert.Nil(t, cfg.Date)
	require.NotNil(t, cfg.Header)
	assert.Equal(t, 14.0, cfg.Header.FontSize)
	assert.True(t, cfg.ShrinkToFitCell)

	// an empty left_align bucket centers every column
	assert.Equal(t, []Action{ActionDefaultBorder, ActionCenterAlign}, PickFormat("Name", cfg))
}

func TestParseFormatConfig_TOML(t *testing.T) {
	cfg, err := ParseFormatConfig([]byte(tomlConfig), "toml")
	require.NoError(t, err)

	require.NotNil(t, cfg.Currency)
	assert.Equal(t, []string{"Price", "Cost"}, *cfg.Currency)
	assert.Equal(t, "right", cfg.DefaultAlign)
	require.NotNil(t, cfg.Header)
	assert.Equal(t, 11.0, cfg.Header.FontSize)
	assert.Nil(t, cfg.Percent)

	assert.Equal(t, []Action{ActionDefaultBorder, ActionRightAlign, ActionCountDays}, PickFormat("Days Till", cfg))
}

func TestParseFormatConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"bad align", "default_align: diagonal\n", "yaml"},
		{"font too small", "header:\n  font_size: 0\n", "yml"},
		{"malformed yaml", "percent: [\n", "yaml"},
		{"malformed toml", "percent = \n", "toml"},
		{"unsupported", "{}", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFormatConfig([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatConfig_ValidateDefault(t *testing.T) {
	assert.NoError(t, DefaultFormatConfig().Validate())
	assert.NoError(t, (&FormatConfig{}).Validate())
}

func TestLoadFormatConfig(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "format.yml")
	require.NoError(t, os.WriteFile(yml, []byte(yamlConfig), 0o644))
	tml := filepath.Join(dir, "format.toml")
	require.NoError(t, os.WriteFile(tml, []byte(tomlConfig), 0o644))

	cfg, err := LoadFormatConfig(yml)
	require.NoError(t, err)
	assert.NotNil(t, cfg.BlackFill)

	cfg, err = LoadFormatConfig(tml)
	require.NoError(t, err)
	assert.NotNil(t, cfg.CountDays)

	_, err = LoadFormatConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBucket(t *testing.T) {
	b := Bucket()
	require.NotNil(t, b)
	assert.Empty(t, *b)
	assert.Equal(t, []string{"a", "b"}, *Bucket("a", "b"))
}
