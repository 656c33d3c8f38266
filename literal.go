package dfalex

import "github.com/coregx/ahocorasick"

// isPureLiteral reports whether pattern contains none of the regexp
// meta-characters, meaning it matches exactly one string.
func isPureLiteral(pattern string) bool {
	if pattern == "" {
		return false
	}
	for _, r := range pattern {
		switch r {
		case '(', ')', '*', '+', '?', '\\', '|':
			return false
		}
	}
	return true
}

// literalPrefilter runs an Aho-Corasick automaton over every pure-literal
// rule. The Tokenizer still runs the full DFA byte-walk at every position;
// it consults the prefilter as well and keeps the prefilter's hit only when
// it is strictly longer than the DFA's own longest match.
type literalPrefilter struct {
	automaton *ahocorasick.Automaton
	tokenOf   map[string]int
}

// buildLiteralPrefilter returns nil, nil if rules contains no pure
// literals: a Tokenizer with no prefilter just runs the DFA.
func buildLiteralPrefilter(rules []Rule) (*literalPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	tokenOf := make(map[string]int)
	any := false
	for _, r := range rules {
		if !isPureLiteral(r.Pattern) {
			continue
		}
		builder.AddPattern([]byte(r.Pattern))
		// The first rule to claim a given literal text keeps it. Compile
		// never gets here with two rules of the same text: the
		// determinizer has already rejected them as ambiguous.
		if _, exists := tokenOf[r.Pattern]; !exists {
			tokenOf[r.Pattern] = r.TokenID
		}
		any = true
	}
	if !any {
		return nil, nil
	}

	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &literalPrefilter{automaton: automaton, tokenOf: tokenOf}, nil
}

// longestMatch reports the token and length of a literal matching
// exactly at the start of src, if any. A match the automaton finds
// further into src than offset zero isn't anchored here and is ignored:
// the Tokenizer only ever wants the next token, not the next occurrence.
func (l *literalPrefilter) longestMatch(src []byte) (token, n int, ok bool) {
	m := l.automaton.Find(src, 0)
	if m == nil || m.Start != 0 {
		return 0, 0, false
	}
	tok, exists := l.tokenOf[string(src[m.Start:m.End])]
	if !exists {
		return 0, 0, false
	}
	return tok, m.End - m.Start, true
}
