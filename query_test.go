package xlsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	s, _ := newPeopleSheet(t)

	tests := []struct {
		condition string
		want      []string
	}{
		{`Age > 1990`, []string{"June", "Pat"}},
		{`row["Birth Month"] == "June"`, []string{"Brian"}},
		{`key startsWith "P"`, []string{"Pat"}},
		{`Name == "June" || Age < 1990`, []string{"Brian", "June"}},
		{`Height == nil`, []string{"Brian", "June", "Pat"}},
		{`false`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			keys, err := s.Select(tt.condition)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestSelect_NilCountsAsFalse(t *testing.T) {
	s, _ := newPeopleSheet(t)
	keys, err := s.Select(`Height`)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSelect_NonBoolResult(t *testing.T) {
	s, _ := newPeopleSheet(t)
	_, err := s.Select(`Age + 1`)
	assert.ErrorContains(t, err, "expected bool")
}

func TestSelect_CompileError(t *testing.T) {
	s, _ := newPeopleSheet(t)
	_, err := s.Select(`Age >`)
	assert.Error(t, err)
	assert.Empty(t, s.programs)
}

func TestSelect_ProgramCached(t *testing.T) {
	s, _ := newPeopleSheet(t)

	_, err := s.Select(`Age > 1990`)
	require.NoError(t, err)
	p := s.programs[`Age > 1990`]
	require.NotNil(t, p)

	_, err = s.UpdateCell(Symbol("Brian"), Symbol("Age"), 1999)
	require.NoError(t, err)
	keys, err := s.Select(`Age > 1990`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brian", "June", "Pat"}, keys, "cached programs see current values")
	assert.Same(t, p, s.programs[`Age > 1990`])
	assert.Len(t, s.programs, 1)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, isIdentifier("Age"))
	assert.True(t, isIdentifier("first_name2"))
	assert.False(t, isIdentifier("Birth Month"))
	assert.False(t, isIdentifier("2nd"))
	assert.False(t, isIdentifier("Win %"))
	assert.False(t, isIdentifier("row"))
	assert.False(t, isIdentifier("key"))
	assert.False(t, isIdentifier(""))
}
