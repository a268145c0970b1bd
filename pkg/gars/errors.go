package gars

import (
	"fmt"
)

// FormatError indicates a string that does not match the GARS grammar.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid GARS: %q", e.Value)
}

// RangeError indicates a well-formed GARS value whose band, quadrant or keypad
// is outside its valid range.
type RangeError struct {
	Value string // Input string, empty when constructed from numbers
	Field string // "longitude", "latitude", "quadrant" or "keypad"
	Got   string
}

func (e *RangeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid GARS %s: %s, GARS: %s", e.Field, e.Got, e.Value)
	}
	return fmt.Sprintf("invalid GARS %s: %s", e.Field, e.Got)
}
