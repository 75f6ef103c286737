package random

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringLowercase(t *testing.T) {
	s, err := GenerateString(Lower, 10)
	require.NoError(t, err)
	assert.Len(t, s, 10)
	for _, c := range s {
		assert.True(t, c >= 'a' && c <= 'z', "unexpected character %q", c)
	}
}

func TestStringCoversWholeAlphabet(t *testing.T) {
	r := NewWithSeed(11)
	s, err := r.String(Lower|Digit, 5000)
	require.NoError(t, err)
	for _, c := range lowerAlphabet + digitAlphabet {
		assert.Contains(t, s, string(c))
	}
	assert.False(t, strings.ContainsAny(s, upperAlphabet+specialAlphabet))
}

func TestStringLength(t *testing.T) {
	s, err := GenerateString(AllClasses, 0)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = GenerateString(AllClasses, -1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestCharNoClasses(t *testing.T) {
	_, err := GenerateChar(0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = GenerateString(NewClass(false, false, false, false), 3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestCharSpecial(t *testing.T) {
	r := NewWithSeed(5)
	for range 500 {
		c, err := r.Char(Special)
		require.NoError(t, err)
		assert.Contains(t, specialAlphabet, string(c))
	}
}

func TestParseClasses(t *testing.T) {
	tests := []struct {
		in   string
		want Class
	}{
		{"", 0},
		{"lower", Lower},
		{"Upper, digits", Upper | Digit},
		{"numbers,specials,lowercase", Lower | Digit | Special},
		{"all", AllClasses},
	}
	for _, tt := range tests {
		got, err := ParseClasses(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseClasses("lower,emoji")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "lower,digit", (Lower | Digit).String())
	assert.Equal(t, "lower,upper,digit,special", AllClasses.String())
	assert.Equal(t, "", Class(0).String())
	assert.Equal(t, Lower|Special, NewClass(true, false, false, true))
}
