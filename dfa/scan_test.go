package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongestMatchNoMatch(t *testing.T) {
	n := buildNfa(t, map[string]int{"a": 0})
	d, err := NewDeterminizer(n).Build()
	require.NoError(t, err)

	_, ok := d.LongestMatch([]byte("bbb"))
	assert.False(t, ok)

	_, ok = d.LongestMatch(nil)
	assert.False(t, ok)
}

func TestLongestMatchStopsAtDeadState(t *testing.T) {
	n := buildNfa(t, map[string]int{"ab": 0})
	d, err := NewDeterminizer(n).Build()
	require.NoError(t, err)

	// "ac" diverges from the only accepted pattern after the first
	// byte; the scanner must report no match rather than panicking or
	// reporting a partial one.
	_, ok := d.LongestMatch([]byte("ac"))
	assert.False(t, ok)
}

func TestLongestMatchEmptyInputNeverAccepts(t *testing.T) {
	// "a*" accepts the empty string as a regular language, but a
	// zero-length match is never reported: a token is only recorded
	// after consuming at least one byte.
	n := buildNfa(t, map[string]int{"a*": 0})
	d, err := NewDeterminizer(n).Build()
	require.NoError(t, err)

	_, ok := d.LongestMatch(nil)
	assert.False(t, ok)
}

func TestLongestMatchNullablePatternMatchesNonEmptyInput(t *testing.T) {
	n := buildNfa(t, map[string]int{"a*": 0})
	d, err := NewDeterminizer(n).Build()
	require.NoError(t, err)

	m, ok := d.LongestMatch([]byte("aaab"))
	require.True(t, ok)
	assert.Equal(t, 0, m.Token)
	assert.Equal(t, 3, m.Len)
}
