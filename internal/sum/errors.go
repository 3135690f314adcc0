package sum

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a value that cannot be used as a sequence item.
// Parsers return it before any accumulation starts.
type InvalidInputError struct {
	// Source identifies where the input came from ("args", a file path, a
	// CUE position).
	Source string

	// Index is the position of the offending item, or -1 when the whole
	// input is unusable.
	Index int

	// Value is the raw text of the offending item.
	Value string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid input at %s[%d] (%q): %s", e.Source, e.Index, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid input in %s: %s", e.Source, e.Reason)
}

// IsInvalidInput returns true if err is or wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
