package dfa

import (
	"sort"

	"github.com/dfalex/dfalex/internal/keybuf"
	"github.com/dfalex/dfalex/internal/sparse"
	"github.com/dfalex/dfalex/nfa"
)

// Determinizer runs subset construction over an Nfa, interning each
// reachable set of NFA states as one Dfa state.
type Determinizer struct {
	n *nfa.Nfa
}

// NewDeterminizer creates a Determinizer for n.
func NewDeterminizer(n *nfa.Nfa) *Determinizer {
	return &Determinizer{n: n}
}

func sortedCopy(v []uint32) []uint32 {
	out := append([]uint32(nil), v...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// acceptTokenFor scans an NFA state set for an accepting state. More than
// one fragment end state reachable by the same input means two patterns
// compiled together can never be told apart, even if they happen to carry
// the same token id (which usually means the caller registered the same
// pattern, or two overlapping patterns, under one token by mistake); this
// is reported as a BuildError rather than silently preferring either one.
func acceptTokenFor(n *nfa.Nfa, ids []uint32) (token int, has bool, err error) {
	for _, id := range ids {
		st := n.State(nfa.StateID(id))
		if !st.HasToken {
			continue
		}
		if has {
			return 0, false, ambiguousError(token, st.MatchedToken)
		}
		has = true
		token = st.MatchedToken
	}
	return token, has, nil
}

type transEntry struct {
	from StateID
	b    int
	to   StateID
}

// Build runs subset construction to completion and returns the resulting
// Dfa, or a BuildError if two patterns are ambiguous.
func (d *Determinizer) Build() (*Dfa, error) {
	n := d.n
	closure := sparse.New(uint32(n.StateCount()))
	var stack []nfa.StateID
	var keyMaker keybuf.Maker

	interned := map[string]StateID{}
	var idSets [][]uint32
	var acceptHas []bool
	var acceptTok []int

	addState := func(ids []uint32, tok int, has bool) StateID {
		id := StateID(len(idSets))
		idSets = append(idSets, ids)
		acceptHas = append(acceptHas, has)
		acceptTok = append(acceptTok, tok)
		return id
	}

	// State 0: the dead state, keyed by the empty set. No pattern's
	// fragment start closure is ever empty, so this key can't collide
	// with a real reachable state.
	interned[keyMaker.Make(nil)] = DeadState
	addState(nil, 0, false)

	closure.Clear()
	for _, f := range n.Fragments() {
		n.EmptyClosure(f.Start, closure, &stack)
	}
	startIDs := sortedCopy(closure.Values())
	tok, has, err := acceptTokenFor(n, startIDs)
	if err != nil {
		return nil, err
	}
	interned[keyMaker.Make(startIDs)] = StartState
	addState(startIDs, tok, has)

	var trans []transEntry
	queue := []StateID{StartState}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		ids := idSets[s]

		for b := 0; b < 256; b++ {
			closure.Clear()
			any := false
			for _, id := range ids {
				for _, tr := range n.State(nfa.StateID(id)).Transitions {
					if !tr.Empty && tr.ByteRange.Contains(byte(b)) {
						n.EmptyClosure(tr.Next, closure, &stack)
						any = true
					}
				}
			}
			if !any {
				continue
			}

			destIDs := sortedCopy(closure.Values())
			key := keyMaker.Make(destIDs)
			dest, ok := interned[key]
			if !ok {
				tok, has, err := acceptTokenFor(n, destIDs)
				if err != nil {
					return nil, err
				}
				dest = addState(destIDs, tok, has)
				interned[key] = dest
				queue = append(queue, dest)
			}
			trans = append(trans, transEntry{from: s, b: b, to: dest})
		}
	}

	numStates := len(idSets)
	next := make([]StateID, numStates*256)
	for _, e := range trans {
		next[int(e.from)*256+e.b] = e.to
	}

	return &Dfa{
		numStates: numStates,
		start:     StartState,
		next:      next,
		hasAccept: acceptHas,
		token:     acceptTok,
	}, nil
}
