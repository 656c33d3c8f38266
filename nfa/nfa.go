// Package nfa implements the non-deterministic automaton stage of the
// lexer-compiler pipeline: a state graph with labeled byte-range and empty
// (epsilon) transitions, built incrementally by a Builder that implements
// Thompson's construction, one fragment at a time.
package nfa

import "github.com/dfalex/dfalex/internal/sparse"

// StateID identifies a state within an NFA. States are numbered densely
// from zero in the order they were added to the Builder.
type StateID uint32

// ByteRange is an inclusive range of byte values a transition matches.
type ByteRange struct {
	Start byte
	End   byte
}

// Contains reports whether b falls within the range.
func (r ByteRange) Contains(b byte) bool {
	return r.Start <= b && b <= r.End
}

// Transition is an edge out of a state. A Transition with no ByteRange
// (Empty true) is an epsilon transition: it consumes no input.
type Transition struct {
	ByteRange ByteRange
	Empty     bool
	Next      StateID
}

// State is one node of the NFA graph.
type State struct {
	// MatchedToken is set only on a fragment's end state, by Builder.Accept.
	MatchedToken int
	HasToken     bool

	Transitions []Transition
}

// Fragment is a (start, end) pair of states representing one compiled
// pattern. The end state carries the pattern's accepting token.
type Fragment struct {
	Start StateID
	End   StateID
}

// Nfa is an append-only, indexable collection of states plus the list of
// per-pattern entry fragments recorded by Builder.Accept.
type Nfa struct {
	states    []State
	fragments []Fragment
}

// StateCount returns the number of states in the automaton.
func (n *Nfa) StateCount() int {
	return len(n.states)
}

// State returns the state with the given id.
func (n *Nfa) State(id StateID) *State {
	return &n.states[id]
}

// Fragments returns the per-pattern entry fragments, one per call to
// Builder.Accept.
func (n *Nfa) Fragments() []Fragment {
	return n.fragments
}

// EmptyClosure computes the set of states reachable from seed using only
// epsilon transitions, including seed itself, and inserts them into set.
// stack is scratch storage owned by the caller and reused across calls;
// its prior contents are discarded.
//
// set is NOT cleared by EmptyClosure: callers accumulate the closure of
// several seeds (e.g. every fragment's start state, or every state in a
// DFA state's subset) into the same set before reading it back.
func (n *Nfa) EmptyClosure(seed StateID, set *sparse.Set, stack *[]StateID) {
	*stack = append((*stack)[:0], seed)
	for len(*stack) > 0 {
		last := len(*stack) - 1
		id := (*stack)[last]
		*stack = (*stack)[:last]

		if set.Contains(uint32(id)) {
			continue
		}
		set.Insert(uint32(id))

		for _, tr := range n.states[id].Transitions {
			if tr.Empty {
				*stack = append(*stack, tr.Next)
			}
		}
	}
}
