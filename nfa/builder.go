package nfa

import "unicode/utf8"

// Builder constructs an Nfa incrementally using Thompson's construction.
// Each combinator pops its operand fragment(s) off an internal stack and
// pushes the resulting fragment; Accept consumes the final fragment for one
// pattern and records it.
//
// Popping an empty fragment stack is a construction error: the caller
// (normally the Parser) built an unbalanced sequence of combinator calls.
// Like a Go slice index out of range, this is treated as a programmer
// error and panics rather than returning an error value.
type Builder struct {
	nfa   Nfa
	stack []Fragment
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) addState() StateID {
	id := StateID(len(b.nfa.states))
	b.nfa.states = append(b.nfa.states, State{})
	return id
}

func (b *Builder) addTransition(from StateID, tr Transition) {
	s := &b.nfa.states[from]
	s.Transitions = append(s.Transitions, tr)
}

func (b *Builder) addEmpty(from, to StateID) {
	b.addTransition(from, Transition{Empty: true, Next: to})
}

func (b *Builder) push(f Fragment) {
	b.stack = append(b.stack, f)
}

func (b *Builder) pop() Fragment {
	if len(b.stack) == 0 {
		panic("nfa: Builder combinator called with an empty fragment stack")
	}
	last := len(b.stack) - 1
	f := b.stack[last]
	b.stack = b.stack[:last]
	return f
}

// byteRange pushes a fragment matching a single byte range.
func (b *Builder) byteRange(lo, hi byte) {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{ByteRange: ByteRange{Start: lo, End: hi}, Next: end})
	b.push(Fragment{Start: start, End: end})
}

// Char decomposes c into its UTF-8 bytes and pushes one fragment matching
// exactly that byte sequence, concatenating a single-byte-range fragment
// per byte.
func (b *Builder) Char(c rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	b.byteRange(buf[0], buf[0])
	for _, byt := range buf[1:n] {
		b.byteRange(byt, byt)
		b.Concatenate()
	}
}

// ZeroOrOne applies the `?` quantifier to the top-of-stack fragment.
func (b *Builder) ZeroOrOne() {
	f := b.pop()
	start, end := b.addState(), b.addState()
	b.addEmpty(start, f.Start)
	b.addEmpty(start, end)
	b.addEmpty(f.End, end)
	b.push(Fragment{Start: start, End: end})
}

// OneOrMore applies the `+` quantifier to the top-of-stack fragment.
func (b *Builder) OneOrMore() {
	f := b.pop()
	start, end := b.addState(), b.addState()
	b.addEmpty(start, f.Start)
	b.addEmpty(f.End, f.Start)
	b.addEmpty(f.End, end)
	b.push(Fragment{Start: start, End: end})
}

// ZeroOrMore applies the `*` quantifier to the top-of-stack fragment.
func (b *Builder) ZeroOrMore() {
	f := b.pop()
	start, end := b.addState(), b.addState()
	b.addEmpty(start, f.Start)
	b.addEmpty(start, end)
	b.addEmpty(f.End, f.Start)
	b.addEmpty(f.End, end)
	b.push(Fragment{Start: start, End: end})
}

// Concatenate pops two fragments (the one pushed second is treated as the
// right operand) and pushes their concatenation.
func (b *Builder) Concatenate() {
	right := b.pop()
	left := b.pop()
	b.addEmpty(left.End, right.Start)
	b.push(Fragment{Start: left.Start, End: right.End})
}

// Alternate pops two fragments and pushes a fragment matching either.
func (b *Builder) Alternate() {
	right := b.pop()
	left := b.pop()
	start, end := b.addState(), b.addState()
	b.addEmpty(start, left.Start)
	b.addEmpty(start, right.Start)
	b.addEmpty(left.End, end)
	b.addEmpty(right.End, end)
	b.push(Fragment{Start: start, End: end})
}

// Accept pops the final fragment for one pattern, marks its end state as
// accepting with the given token, and records the fragment. It must be
// called exactly once per pattern, and the popped fragment's end state
// must not have been accepted already.
func (b *Builder) Accept(token int) {
	f := b.pop()
	end := &b.nfa.states[f.End]
	if end.HasToken {
		panic("nfa: Builder.Accept called twice for the same fragment end state")
	}
	end.HasToken = true
	end.MatchedToken = token
	b.nfa.fragments = append(b.nfa.fragments, f)
}

// Build finalizes and returns the constructed Nfa.
func (b *Builder) Build() *Nfa {
	return &b.nfa
}

// StackLen reports the number of fragments currently on the builder's
// stack. The Parser uses this, together with TruncateStack, to recover
// from a pattern that failed to parse partway through without corrupting
// the stack for subsequently parsed patterns.
func (b *Builder) StackLen() int {
	return len(b.stack)
}

// TruncateStack discards fragments above index n on the builder's stack.
// It does not reclaim the NFA states those fragments referenced; orphaned
// states are harmless since they belong to no fragment and are therefore
// unreachable from any pattern's entry point.
func (b *Builder) TruncateStack(n int) {
	b.stack = b.stack[:n]
}
