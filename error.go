package dfalex

import "fmt"

// TokenizeError reports that no rule matches the input starting at a
// given byte offset.
type TokenizeError struct {
	Offset int
	Byte   byte
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("dfalex: no rule matches input at byte offset %d (0x%02x)", e.Offset, e.Byte)
}
