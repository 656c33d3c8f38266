package dfalex

import "github.com/dfalex/dfalex/dfa"

// Tokenizer repeatedly applies a compiled Program's automaton to a byte
// source, producing one Token per longest match until the source is
// exhausted. A Tokenizer is immutable after construction and safe to use
// from multiple goroutines concurrently, as long as each call to
// Tokenize operates on its own source slice.
type Tokenizer struct {
	d   *dfa.Dfa
	lit *literalPrefilter
}

// Tokenize scans src from the beginning and returns every token in
// order. If some byte offset starts no known token, it returns a
// *TokenizeError naming that offset rather than a partial token list.
func (t *Tokenizer) Tokenize(src []byte) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		id, n, ok := t.matchAt(src[pos:])
		if !ok {
			return nil, &TokenizeError{Offset: pos, Byte: src[pos]}
		}
		tokens = append(tokens, Token{
			TokenID: id,
			Text:    src[pos : pos+n],
			Start:   pos,
			End:     pos + n,
		})
		pos += n
	}
	return tokens, nil
}

// matchAt finds the longest match at the start of rest. The DFA always
// runs; the literal prefilter only overrides the DFA's own result when it
// finds a strictly longer match, and a tie keeps the DFA's token.
func (t *Tokenizer) matchAt(rest []byte) (token, n int, ok bool) {
	dm, dok := t.d.LongestMatch(rest)

	if t.lit != nil {
		if lt, ln, lok := t.lit.longestMatch(rest); lok && (!dok || ln > dm.Len) {
			return lt, ln, true
		}
	}

	if !dok {
		return 0, 0, false
	}
	return dm.Token, dm.Len, true
}
