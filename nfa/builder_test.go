package nfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfalex/dfalex/internal/sparse"
)

// acceptsString walks the NFA by brute-force epsilon/byte-range simulation,
// without going through the determinizer, so builder tests don't depend on
// the rest of the pipeline.
func acceptsString(t *testing.T, n *Nfa, s string) (token int, ok bool) {
	t.Helper()

	set := sparse.New(uint32(n.StateCount()))
	var stack []StateID
	for _, f := range n.Fragments() {
		n.EmptyClosure(f.Start, set, &stack)
	}
	current := append([]uint32(nil), set.Values()...)

	for i := 0; i < len(s); i++ {
		b := s[i]
		set.Clear()
		for _, id := range current {
			for _, tr := range n.State(StateID(id)).Transitions {
				if !tr.Empty && tr.ByteRange.Contains(b) {
					n.EmptyClosure(tr.Next, set, &stack)
				}
			}
		}
		current = append(current[:0], set.Values()...)
		if len(current) == 0 {
			return 0, false
		}
	}

	for _, id := range current {
		if st := n.State(StateID(id)); st.HasToken {
			return st.MatchedToken, true
		}
	}
	return 0, false
}

func TestBuilderCharConcatenate(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.Char('b')
	b.Concatenate()
	b.Accept(0)
	n := b.Build()

	tok, ok := acceptsString(t, n, "ab")
	require.True(t, ok)
	assert.Equal(t, 0, tok)

	_, ok = acceptsString(t, n, "a")
	assert.False(t, ok)
	_, ok = acceptsString(t, n, "ba")
	assert.False(t, ok)
}

func TestBuilderAlternate(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.Char('b')
	b.Alternate()
	b.Accept(7)
	n := b.Build()

	for _, s := range []string{"a", "b"} {
		tok, ok := acceptsString(t, n, s)
		require.True(t, ok, s)
		assert.Equal(t, 7, tok)
	}
	_, ok := acceptsString(t, n, "c")
	assert.False(t, ok)
	_, ok = acceptsString(t, n, "ab")
	assert.False(t, ok)
}

func TestBuilderZeroOrMore(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.ZeroOrMore()
	b.Accept(0)
	n := b.Build()

	for _, s := range []string{"", "a", "aaa"} {
		_, ok := acceptsString(t, n, s)
		assert.True(t, ok, s)
	}
	_, ok := acceptsString(t, n, "aaab")
	assert.False(t, ok)
}

func TestBuilderOneOrMore(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.OneOrMore()
	b.Accept(0)
	n := b.Build()

	_, ok := acceptsString(t, n, "")
	assert.False(t, ok)
	_, ok = acceptsString(t, n, "a")
	assert.True(t, ok)
	_, ok = acceptsString(t, n, "aaaa")
	assert.True(t, ok)
}

func TestBuilderZeroOrOne(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.ZeroOrOne()
	b.Char('b')
	b.Concatenate()
	b.Accept(0)
	n := b.Build()

	for _, s := range []string{"b", "ab"} {
		_, ok := acceptsString(t, n, s)
		assert.True(t, ok, s)
	}
	_, ok := acceptsString(t, n, "aab")
	assert.False(t, ok)
}

func TestBuilderCharMultiByteUTF8(t *testing.T) {
	b := NewBuilder()
	b.Char('é') // 0xC3 0xA9
	b.Accept(0)
	n := b.Build()

	_, ok := acceptsString(t, n, "é")
	assert.True(t, ok)
	_, ok = acceptsString(t, n, "\xc3")
	assert.False(t, ok)
}

func TestBuilderPopEmptyStackPanics(t *testing.T) {
	b := NewBuilder()
	assert.Panics(t, func() { b.Concatenate() })
}

func TestBuilderDoubleAcceptPanics(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.Accept(0)
	assert.Panics(t, func() {
		// Nothing left on the stack at all now, so the second Accept hits
		// the empty-stack panic; the already-accepted end state check is
		// not reached by this call.
		b.Accept(1)
	})
}

func TestBuilderFragmentsRecordedOncePerPattern(t *testing.T) {
	b := NewBuilder()
	b.Char('a')
	b.Accept(0)
	b.Char('b')
	b.Accept(1)
	n := b.Build()
	require.Len(t, n.Fragments(), 2)
}
