package dfalex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSurfacesParseError(t *testing.T) {
	_, err := Compile([]Rule{
		{Pattern: "if", TokenID: 1},
		{Pattern: "a(b", TokenID: 2}, // unmatched '('
	})
	require.Error(t, err)
}

func TestCompileSimpleRuleSet(t *testing.T) {
	prog, err := Compile([]Rule{
		{Pattern: "if", TokenID: 1},
		{Pattern: "(a|b|c)+", TokenID: 2},
		{Pattern: " +", TokenID: 3},
	})
	require.NoError(t, err)

	tok := prog.NewTokenizer()
	tokens, err := tok.Tokenize([]byte("if abba"))
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, 1, tokens[0].TokenID)
	assert.Equal(t, "if", string(tokens[0].Text))

	assert.Equal(t, 3, tokens[1].TokenID)
	assert.Equal(t, " ", string(tokens[1].Text))

	assert.Equal(t, 2, tokens[2].TokenID)
	assert.Equal(t, "abba", string(tokens[2].Text))
}

func TestTokenizeCoversEntireInput(t *testing.T) {
	prog, err := Compile([]Rule{
		{Pattern: "(a|b)+", TokenID: 0},
		{Pattern: " +", TokenID: 1},
	})
	require.NoError(t, err)

	src := []byte("aab ba  a")
	tokens, err := prog.NewTokenizer().Tokenize(src)
	require.NoError(t, err)

	var rejoined []byte
	for i, tk := range tokens {
		if i > 0 {
			assert.Equal(t, tokens[i-1].End, tk.Start, "token %d does not start where the previous one ended", i)
		}
		rejoined = append(rejoined, tk.Text...)
	}
	assert.Equal(t, src, rejoined)
}

func TestTokenizeUnknownByteErrors(t *testing.T) {
	prog, err := Compile([]Rule{{Pattern: "a+", TokenID: 0}})
	require.NoError(t, err)

	_, err = prog.NewTokenizer().Tokenize([]byte("aab"))
	require.Error(t, err)

	var terr *TokenizeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 2, terr.Offset)
	assert.Equal(t, byte('b'), terr.Byte)
}

func TestCompileAmbiguousRulesError(t *testing.T) {
	_, err := Compile([]Rule{
		{Pattern: "a+", TokenID: 0},
		{Pattern: "aa*", TokenID: 1},
	})
	require.Error(t, err)
}
