package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrTooComplex indicates the pattern is too complex to compile
	ErrTooComplex = errors.New("pattern too complex")

	// ErrCompilation indicates a general NFA compilation failure
	ErrCompilation = errors.New("NFA compilation failed")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError reports a violated automaton invariant, such as an edge that
// points outside the arena. It indicates a bug, never bad user input.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrCompilation.
func (e *BuildError) Unwrap() error {
	return ErrCompilation
}
