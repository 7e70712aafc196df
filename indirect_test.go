package xlsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndirectCell(t *testing.T) {
	assert.Equal(t, `INDIRECT("RC[-2]",0)`, IndirectCell(-2))
	assert.Equal(t, `INDIRECT("RC[1]",0)`, IndirectCell(1))
}

func TestEasyIndirectCell(t *testing.T) {
	s, _ := newPeopleSheet(t)

	ref, err := s.EasyIndirectCell("Age", "Name")
	require.NoError(t, err)
	assert.Equal(t, `INDIRECT("RC[-2]",0)`, ref)

	_, err = s.EasyIndirectCell("Age", "Height")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = s.EasyIndirectCell("Height", "Age")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestExcelDate(t *testing.T) {
	when := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)

	f, ok := ExcelDate(when, true, true)
	assert.True(t, ok)
	assert.Equal(t, "=DATE(2024, 3, 1)+TIME(14,5,0)", f)

	f, ok = ExcelDate(when, true, false)
	assert.True(t, ok)
	assert.Equal(t, "=DATE(2024, 3, 1)+TIME(0,0,0)", f)

	f, ok = ExcelDate(when, false, true)
	assert.True(t, ok)
	assert.Equal(t, "=TIME(14,5,0)", f)

	_, ok = ExcelDate(when, false, false)
	assert.False(t, ok)
}
