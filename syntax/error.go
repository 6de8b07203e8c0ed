package syntax

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern indicates the pattern has no derivation in the grammar.
var ErrInvalidPattern = errors.New("invalid pattern")

// Error reports a pattern that failed to parse.
type Error struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("syntax: %v: %q", e.Err, e.Pattern)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
