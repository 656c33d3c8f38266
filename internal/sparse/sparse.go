// Package sparse provides a sparse set: a set of small non-negative
// integers over a bounded universe supporting O(1) membership, insertion,
// and clearing.
//
// It is used by the determinizer to compute epsilon-closures over NFA
// state ids without allocating on every inner-loop iteration: the same
// Set is cleared and reused for every byte of every DFA state under
// construction.
package sparse

// Set is a sparse set of uint32 values in [0, capacity).
//
// Representation: dense holds the inserted values in insertion order;
// sparse maps a value to its index in dense. A value v is a member iff
// sparse[v] < len(dense) && dense[sparse[v]] == v — this lets Clear reset
// the set in O(1) without touching sparse at all, since stale sparse
// entries are harmless until dense grows past them again.
type Set struct {
	dense  []uint32
	sparse []uint32
}

// New creates a Set over the universe [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		dense:  make([]uint32, 0, capacity),
		sparse: make([]uint32, capacity),
	}
}

// Contains reports whether value is a member of the set.
func (s *Set) Contains(value uint32) bool {
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Insert adds value to the set. Inserting a value already present is a
// no-op. Panics if value is outside the set's capacity.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
}

// Clear empties the set in O(1) without zeroing the sparse index.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order. The returned slice aliases
// the set's internal storage and is only valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
