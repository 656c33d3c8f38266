// Package dfalex compiles a set of regular expression rules into a
// minimized deterministic byte automaton and uses it to tokenize byte
// input by repeated longest match.
//
// The pipeline is: parse each rule's pattern into an NFA fragment
// (package parse, built on package nfa), determinize the combined NFA
// into a DFA (package dfa), then minimize it. Compile runs the whole
// pipeline once; the resulting Program and any Tokenizer built from it
// are immutable and safe to share across goroutines.
package dfalex

import (
	"github.com/pkg/errors"

	"github.com/dfalex/dfalex/dfa"
	"github.com/dfalex/dfalex/nfa"
	"github.com/dfalex/dfalex/parse"
)

// Program is a compiled, minimized automaton for one rule set.
type Program struct {
	d   *dfa.Dfa
	lit *literalPrefilter
}

// Compile parses every rule's pattern, builds their combined NFA, and
// determinizes and minimizes it into a Program. Two rules whose patterns
// can both match the same input with no way to prefer one are reported
// as a dfa.BuildError wrapped in the returned error.
func Compile(rules []Rule) (*Program, error) {
	b := nfa.NewBuilder()
	p := parse.NewParser(b)
	for _, r := range rules {
		if err := p.Parse(r.Pattern, r.TokenID); err != nil {
			return nil, errors.Wrapf(err, "parse rule %q (token %d)", r.Pattern, r.TokenID)
		}
	}

	built, err := dfa.NewDeterminizer(b.Build()).Build()
	if err != nil {
		return nil, errors.Wrap(err, "build dfa")
	}
	minimized := dfa.NewMinimizer(built).Minimize()

	lit, err := buildLiteralPrefilter(rules)
	if err != nil {
		return nil, errors.Wrap(err, "build literal prefilter")
	}

	return &Program{d: minimized, lit: lit}, nil
}

// NewTokenizer returns a Tokenizer driven by p's automaton. Tokenizers
// are cheap to create and hold no mutable state of their own, so callers
// needing concurrent tokenization runs can call this once per goroutine
// or share a single Tokenizer across them.
func (p *Program) NewTokenizer() *Tokenizer {
	return &Tokenizer{d: p.d, lit: p.lit}
}
