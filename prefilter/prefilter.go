// Package prefilter finds candidate match positions with literal search so
// that the automaton only runs where a match can begin.
//
// Two prefilters are provided:
//   - BoyerMoore searches for the single prefix every match begins with. The
//     prefix is consumed: the automaton resumes Delay() bytes after each
//     candidate
//   - AhoCorasick searches for a set of equal-length literals, one of which
//     begins every match. Nothing is consumed; Delay() is 0
//
// Example usage:
//
//	reduced, prefix, _ := literal.ExtractPrefix(n)
//	pf, _ := prefilter.NewBuilder(prefix, nil).Build()
//	if pf != nil {
//	    starts := pf.Candidates(haystack)
//	    // run reduced from start+pf.Delay() for each start
//	}
package prefilter

import (
	"errors"

	"github.com/coregx/earlgrep/literal"
)

// ErrUnequalLiterals is returned when a literal set mixes lengths.
var ErrUnequalLiterals = errors.New("prefilter: literals must be non-empty and of equal length")

// Prefilter reports the offsets where a match may begin.
type Prefilter interface {
	// Find returns the first candidate offset at or after start, or -1 if
	// there is none.
	Find(haystack []byte, start int) int

	// Candidates returns every candidate offset in ascending order,
	// overlapping occurrences included.
	Candidates(haystack []byte) []int

	// Delay returns the number of bytes at each candidate that the
	// prefilter has already verified and the automaton must skip.
	Delay() int

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter, for profiling.
	HeapBytes() int

	// String names the prefilter and its literals.
	String() string
}

// Builder selects a prefilter for the extracted literals.
//
// A non-empty prefix always wins: it is consumed, so the automaton does
// less work per candidate. Otherwise a literal set is used if it has at
// least two literals; a single literal would have been found as a prefix.
type Builder struct {
	prefix literal.Literal
	set    *literal.Seq
}

// NewBuilder creates a new prefilter builder. Either argument may be empty.
func NewBuilder(prefix literal.Literal, set *literal.Seq) *Builder {
	return &Builder{
		prefix: prefix,
		set:    set,
	}
}

// Build returns the prefilter for the builder's literals, or nil if there
// is none.
func (b *Builder) Build() (Prefilter, error) {
	if b.prefix.Len() > 0 {
		return NewBoyerMoore(b.prefix.Bytes), nil
	}
	if b.set.Len() >= 2 {
		return NewAhoCorasick(b.set)
	}
	return nil, nil
}
