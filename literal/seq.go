// Package literal extracts literal byte strings from compiled automata for
// use by prefilters.
//
// Two extractions are provided:
//   - ExtractPrefix finds the longest string every match must begin with and
//     returns an automaton that resumes matching right after it
//   - ExtractSet finds a small set of equal-length strings such that every
//     match begins with one of them
package literal

import (
	"bytes"
	"strings"
)

// Literal represents a literal byte sequence extracted from an automaton.
// The Complete flag indicates whether reading the bytes from the start state
// can already end in a match state.
//
// Example:
//   - Pattern /hello/ → prefix Literal{[]byte("hello"), true}
//   - Pattern /hello\s+/ → prefix Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal by itself is a match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
//
// Example:
//
//	lit := literal.NewLiteral([]byte("test"), true)
//	fmt.Println(lit.String()) // Output: literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals, kept in discovery order.
// A nil *Seq is an empty sequence.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Literals returns the literals. The slice must not be modified.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// Bytes returns the byte strings of all literals, in order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, 0, s.Len())
	for _, lit := range s.Literals() {
		out = append(out, lit.Bytes)
	}
	return out
}

// LongestCommonPrefix returns the longest byte string every literal begins
// with. It is nil for an empty sequence.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), false),
//	    literal.NewLiteral([]byte("help"), false),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return bytes.Clone(prefix)
}

// String returns a debugging representation: the literals quoted and
// comma-separated inside brackets.
func (s *Seq) String() string {
	parts := make([]string, 0, s.Len())
	for _, lit := range s.Literals() {
		parts = append(parts, strings.TrimSuffix(strings.TrimPrefix(lit.String(), "literal{"), "}"))
	}
	return "Seq[" + strings.Join(parts, "; ") + "]"
}
