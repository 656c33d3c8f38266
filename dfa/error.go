package dfa

import "fmt"

// BuildError reports that an NFA could not be determinized into a
// well-formed DFA.
type BuildError struct {
	// Ambiguous holds the two token ids that both matched the same
	// input with no way to prefer one, when that is the cause.
	Ambiguous [2]int
	// HasAmbiguous reports whether Ambiguous is populated.
	HasAmbiguous bool

	Message string
}

func (e *BuildError) Error() string {
	if e.HasAmbiguous {
		return fmt.Sprintf("dfa: ambiguous match between token %d and token %d on the same input", e.Ambiguous[0], e.Ambiguous[1])
	}
	return "dfa: " + e.Message
}

func ambiguousError(a, b int) *BuildError {
	return &BuildError{Ambiguous: [2]int{a, b}, HasAmbiguous: true}
}
