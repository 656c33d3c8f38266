package parse

import "github.com/dfalex/dfalex/nfa"

// Parser turns pattern strings into fragments on a shared nfa.Builder,
// one call to Parse per pattern. Reusing one Parser (and its Builder)
// across many patterns is the normal way to compile a rule set: each
// successful Parse calls Builder.Accept, recording one more fragment for
// the determinizer to start from.
type Parser struct {
	b *nfa.Builder
}

// NewParser creates a Parser that builds into b.
func NewParser(b *nfa.Builder) *Parser {
	return &Parser{b: b}
}

// parenFrame saves the alternation/concatenation counts suspended by an
// open paren, so they can be restored once its matching close is seen.
type parenFrame struct {
	nalt  int
	natom int
}

func isMetaRune(r rune) bool {
	switch r {
	case '(', ')', '*', '+', '?', '\\', '|':
		return true
	default:
		return false
	}
}

// Parse compiles pattern into a fragment on the underlying builder and
// calls Accept(token) on it. Grammar (in order of increasing precedence):
// alternation `|`, concatenation, then a postfix quantifier `* + ?` on
// each atom. An atom is a literal rune, an escaped meta-character, or a
// parenthesized sub-expression.
//
// On error, nothing is left behind on the builder's fragment stack:
// previously accepted patterns are unaffected, and the builder remains
// usable for the next call to Parse.
func (p *Parser) Parse(pattern string, token int) error {
	mark := p.b.StackLen()
	if err := p.parse(pattern, token); err != nil {
		p.b.TruncateStack(mark)
		return err
	}
	return nil
}

func (p *Parser) parse(pattern string, token int) error {
	runes := []rune(pattern)
	natom, nalt := 0, 0
	var parens []parenFrame

	closeAtoms := func() {
		for natom > 1 {
			natom--
			p.b.Concatenate()
		}
	}

	pos := 0
	for pos < len(runes) {
		c := runes[pos]
		switch c {
		case '(':
			if natom > 1 {
				natom--
				p.b.Concatenate()
			}
			parens = append(parens, parenFrame{nalt: nalt, natom: natom})
			nalt, natom = 0, 0
			pos++

		case '|':
			if natom == 0 {
				return &Error{Kind: MissingOperand, Pos: pos}
			}
			closeAtoms()
			natom = 0
			nalt++
			pos++

		case ')':
			if len(parens) == 0 {
				return &Error{Kind: UnmatchedClose, Pos: pos}
			}
			if natom == 0 {
				return &Error{Kind: MissingOperand, Pos: pos}
			}
			closeAtoms()
			for ; nalt > 0; nalt-- {
				p.b.Alternate()
			}
			last := len(parens) - 1
			frame := parens[last]
			parens = parens[:last]
			nalt, natom = frame.nalt, frame.natom
			natom++
			pos++

		case '*':
			if natom == 0 {
				return &Error{Kind: MissingOperand, Pos: pos}
			}
			p.b.ZeroOrMore()
			pos++

		case '+':
			if natom == 0 {
				return &Error{Kind: MissingOperand, Pos: pos}
			}
			p.b.OneOrMore()
			pos++

		case '?':
			if natom == 0 {
				return &Error{Kind: MissingOperand, Pos: pos}
			}
			p.b.ZeroOrOne()
			pos++

		case '\\':
			pos++
			if pos >= len(runes) {
				return &Error{Kind: UnexpectedEnd, Pos: pos - 1}
			}
			esc := runes[pos]
			if !isMetaRune(esc) {
				return &Error{Kind: BadEscape, Pos: pos - 1}
			}
			if natom > 1 {
				natom--
				p.b.Concatenate()
			}
			p.b.Char(esc)
			natom++
			pos++

		default:
			if natom > 1 {
				natom--
				p.b.Concatenate()
			}
			p.b.Char(c)
			natom++
			pos++
		}
	}

	if len(parens) > 0 {
		return &Error{Kind: UnmatchedOpen, Pos: len(runes)}
	}
	if natom == 0 {
		return &Error{Kind: MissingOperand, Pos: 0}
	}
	closeAtoms()
	for ; nalt > 0; nalt-- {
		p.b.Alternate()
	}

	p.b.Accept(token)
	return nil
}
