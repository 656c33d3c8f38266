package dfa

// Match is the result of scanning for the longest prefix of some input
// that the automaton accepts.
type Match struct {
	Token int
	// Len is the number of bytes consumed by the match.
	Len int
}

// LongestMatch scans from the start of input, following transitions byte
// by byte, and returns the longest prefix that lands on an accepting
// state. Scanning continues past the first accepting state reached, in
// case a longer prefix also accepts (possibly with a different token,
// which then wins); it stops at the dead state, at end of input, or once
// no further match is possible.
//
// The start state is never itself checked for acceptance, even if its
// NFA-state-set happens to include a fragment's end state (as it does for
// a nullable pattern like "a*"): a match is only ever recorded after
// consuming at least one byte, so a zero-length match is never reported.
//
// ok is false if no prefix of input is accepted, including the empty
// one.
func (d *Dfa) LongestMatch(input []byte) (m Match, ok bool) {
	state := d.start
	var best Match
	found := false

	for i, b := range input {
		state = d.Step(state, b)
		if d.IsDead(state) {
			break
		}
		if tok, has := d.Accept(state); has {
			best, found = Match{Token: tok, Len: i + 1}, true
		}
	}

	return best, found
}
