package prefilter

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/earlgrep/literal"
)

// AhoCorasick finds the start of every occurrence of any literal of a set in
// one pass. The literals must all have the same length, which makes the
// earliest-starting occurrence at or after any offset unique regardless of
// which literal the automaton reports.
type AhoCorasick struct {
	auto   *ahocorasick.Automaton
	seq    *literal.Seq
	length int
}

// NewAhoCorasick builds the automaton for seq.
func NewAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	if seq.IsEmpty() {
		return nil, ErrUnequalLiterals
	}
	length := seq.Get(0).Len()
	builder := ahocorasick.NewBuilder()
	for _, lit := range seq.Literals() {
		if lit.Len() != length || length == 0 {
			return nil, ErrUnequalLiterals
		}
		builder.AddPattern(lit.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building Aho-Corasick automaton: %w", err)
	}
	return &AhoCorasick{auto: auto, seq: seq, length: length}, nil
}

// Find implements Prefilter.Find.
func (ac *AhoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start+ac.length > len(haystack) {
		return -1
	}
	m := ac.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// Candidates implements Prefilter.Candidates.
func (ac *AhoCorasick) Candidates(haystack []byte) []int {
	var out []int
	for at := ac.Find(haystack, 0); at >= 0; at = ac.Find(haystack, at+1) {
		out = append(out, at)
	}
	return out
}

// Delay implements Prefilter.Delay. Candidates are only starts: the
// automaton still has to read the literal.
func (ac *AhoCorasick) Delay() int {
	return 0
}

// IsMatch reports whether any literal occurs in haystack.
func (ac *AhoCorasick) IsMatch(haystack []byte) bool {
	return ac.auto.IsMatch(haystack)
}

// HeapBytes implements Prefilter.HeapBytes. Only the literals are counted;
// the automaton does not report its size.
func (ac *AhoCorasick) HeapBytes() int {
	return ac.seq.Len() * ac.length
}

// String implements Prefilter.String.
func (ac *AhoCorasick) String() string {
	quoted := make([]string, 0, ac.seq.Len())
	for _, b := range ac.seq.Bytes() {
		quoted = append(quoted, fmt.Sprintf("%q", b))
	}
	return "AhoCorasick(" + strings.Join(quoted, ", ") + ")"
}
