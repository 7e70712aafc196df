package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/javajack/xlsheet"
)

func writePeople(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Birth Month", "Age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Brian", "June", 1989}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"June", "January", 1995}))
	path := filepath.Join(t.TempDir(), "people.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetAndSet(t *testing.T) {
	path := writePeople(t)

	out, err := run(t, "-f", path, "-k", "Name", "get", "Brian", "Age")
	require.NoError(t, err)
	assert.Equal(t, "1989\n", out)

	_, err = run(t, "-f", path, "-k", "Name", "set", "Brian", "Age", "1990")
	require.NoError(t, err)

	out, err = run(t, "-f", path, "-k", "Name", "get", "#2", "Age")
	require.NoError(t, err)
	assert.Equal(t, "1990\n", out)
}

func TestGetMissing(t *testing.T) {
	path := writePeople(t)
	_, err := run(t, "-f", path, "-k", "Name", "get", "Nobody", "Age")
	assert.Error(t, err)
}

func TestRequiredFlags(t *testing.T) {
	_, err := run(t, "describe")
	assert.Error(t, err)
}

func TestAppendAndSelect(t *testing.T) {
	path := writePeople(t)

	out, err := run(t, "-f", path, "-k", "Name", "append", "Name=Pat", "Age=2001", "Height=170")
	require.NoError(t, err)
	assert.Contains(t, out, "dropped unknown columns: Height")

	out, err = run(t, "-f", path, "-k", "Name", "select", "Age > 1990")
	require.NoError(t, err)
	assert.Equal(t, "June\nPat\n", out)

	_, err = run(t, "-f", path, "-k", "Name", "append", "Age")
	assert.Error(t, err)
}

func TestDeleteRowAndColumn(t *testing.T) {
	path := writePeople(t)

	_, err := run(t, "-f", path, "-k", "Name", "delete-row", "Brian")
	require.NoError(t, err)
	_, err = run(t, "-f", path, "-k", "Name", "delete-row", "Brian")
	assert.Error(t, err)

	_, err = run(t, "-f", path, "-k", "Name", "delete-column", "Birth Month")
	require.NoError(t, err)

	out, err := run(t, "-f", path, "-k", "Name", "row", "June")
	require.NoError(t, err)
	assert.Equal(t, "Name: June\nAge: 1995\n", out)
}

func TestFormatWithConfig(t *testing.T) {
	path := writePeople(t)
	cfg := filepath.Join(t.TempDir(), "format.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("percent: [Age]\nleft_align: [Name]\n"), 0o644))

	_, err := run(t, "-f", path, "-k", "Name", "-c", cfg, "--backup", "format", "--autosize")
	require.NoError(t, err)
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	id, err := f.GetCellStyle("Sheet1", "C2")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	assert.Equal(t, 9, style.NumFmt)

	out, err := run(t, "-f", path, "-k", "Name", "-c", cfg, "describe")
	require.NoError(t, err)
	assert.Contains(t, out, `C "Age" [default_border center_align percent]`)
}

func TestValidateReportsErrors(t *testing.T) {
	path := writePeople(t)
	cfg := filepath.Join(t.TempDir(), "format.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("integer = [\"Age\"]\n"), 0o644))

	out, err := run(t, "-f", path, "-k", "Name", "-c", cfg, "validate")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "-f", path, "-k", "Name", "-c", cfg, "-s", "Budget", "validate")
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, xlsheet.Coord(4), parseKey("#4"))
	assert.Equal(t, xlsheet.Symbol("Brian"), parseKey("Brian"))
	assert.Equal(t, xlsheet.Symbol("#x"), parseKey("#x"))
	assert.Equal(t, xlsheet.Symbol("12"), parseKey("12"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 12, parseValue("12"))
	assert.Equal(t, 1.5, parseValue("1.5"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "T", parseValue("T"))
	assert.Equal(t, "June", parseValue("June"))
	assert.Equal(t, 0, parseValue("0"))
	assert.Equal(t, 0.5, parseValue("0.5"))
	assert.Equal(t, -7, parseValue("-7"))
	assert.Equal(t, "00123", parseValue("00123"))
	assert.Equal(t, "1e3", parseValue("1e3"))
	assert.Equal(t, "Inf", parseValue("Inf"))
	assert.Equal(t, "0x1F", parseValue("0x1F"))
}

func TestAppendKeepsTextKeys(t *testing.T) {
	path := writePeople(t)

	_, err := run(t, "-f", path, "-k", "Name", "append", "Name=1e3", "Birth Month=007")
	require.NoError(t, err)

	out, err := run(t, "-f", path, "-k", "Name", "get", "1e3", "Birth Month")
	require.NoError(t, err)
	assert.Equal(t, "007\n", out)

	_, err = run(t, "-f", path, "-k", "Name", "get", "1000", "Birth Month")
	assert.Error(t, err, "the key is stored as typed, not as a number")
}
