package literal

import (
	"github.com/coregx/earlgrep/nfa"
)

// ExtractorConfig bounds literal-set extraction.
type ExtractorConfig struct {
	// MaxLiteralLen is the depth at which set extraction stops even if no
	// match state has been reached.
	// Default: 8
	MaxLiteralLen int

	// MaxLiterals is the largest set returned; bigger sets are discarded.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the default extraction bounds.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiteralLen: 8,
		MaxLiterals:   64,
	}
}

// Extractor extracts literals from epsilon-free automata.
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor with the given bounds.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefix walks from the start state while every edge of the current
// frontier carries the same byte, and returns the bytes read.
//
// The walk stops before a byte whenever
//   - a frontier state is a match state (the prefix would overshoot a match)
//   - a frontier state has no edges
//   - frontier edges disagree on the byte
//   - the next frontier contains a state already walked through
//
// The first rule keeps matches shorter than the walk: for "ab?" the prefix
// is "a", not "ab", so "a" alone still matches. The last rule bounds the
// walk on cycles.
//
// If the prefix is non-empty, the reduced automaton is a copy of n with a new
// start state holding the union of the frontier's edges, matching if any
// frontier state matches: n accepts prefix+w exactly when reduced accepts w.
// Otherwise reduced is n itself. n is never modified.
func (e *Extractor) ExtractPrefix(n *nfa.NFA) (reduced *nfa.NFA, prefix Literal, err error) {
	frontier := []nfa.StateID{n.Start()}
	visited := map[nfa.StateID]bool{n.Start(): true}
	var bs []byte

walk:
	for {
		var c byte
		first := true
		var next []nfa.StateID
		seen := make(map[nfa.StateID]bool)
		for _, id := range frontier {
			edges := n.Transitions(id)
			if n.IsMatch(id) || len(edges) == 0 {
				break walk
			}
			for _, t := range edges {
				if first {
					c, first = t.Byte, false
				} else if t.Byte != c {
					break walk
				}
				if visited[t.Next] {
					break walk
				}
				if !seen[t.Next] {
					seen[t.Next] = true
					next = append(next, t.Next)
				}
			}
		}
		bs = append(bs, c)
		for _, id := range next {
			visited[id] = true
		}
		frontier = next
	}

	if len(bs) == 0 {
		return n, Literal{}, nil
	}

	var out []nfa.Transition
	have := make(map[nfa.Transition]bool)
	match := false
	for _, id := range frontier {
		match = match || n.IsMatch(id)
		for _, t := range n.Transitions(id) {
			if !have[t] {
				have[t] = true
				out = append(out, t)
			}
		}
	}
	reduced, err = n.Extend(out, match)
	if err != nil {
		return nil, Literal{}, err
	}
	return reduced, NewLiteral(bs, match), nil
}

// path is a walk of the automaton: the state reached and the bytes read.
type path struct {
	state nfa.StateID
	bytes string
}

// ExtractSet returns the distinct byte strings of length L read on every
// path of L edges from the start state, where L is the first depth at which
// some path reaches a match state, capped at MaxLiteralLen. Every non-empty
// match therefore begins with one of them.
//
// It returns nil when the start state matches (the empty string matches),
// when no path survives, or when more than MaxLiterals strings would be
// needed.
func (e *Extractor) ExtractSet(n *nfa.NFA) *Seq {
	if n.IsMatch(n.Start()) || e.config.MaxLiteralLen <= 0 {
		return nil
	}
	paths := []path{{state: n.Start()}}
	for depth := 1; depth <= e.config.MaxLiteralLen; depth++ {
		var next []path
		seenPath := make(map[path]bool)
		distinct := make(map[string]bool)
		reached := false
		for _, p := range paths {
			for _, t := range n.Transitions(p.state) {
				np := path{state: t.Next, bytes: p.bytes + string(t.Byte)}
				if seenPath[np] {
					continue
				}
				seenPath[np] = true
				next = append(next, np)
				distinct[np.bytes] = true
				reached = reached || n.IsMatch(t.Next)
			}
		}
		if len(next) == 0 || len(distinct) > e.config.MaxLiterals {
			return nil
		}
		paths = next
		if reached {
			break
		}
	}
	return seqOf(n, paths)
}

func seqOf(n *nfa.NFA, paths []path) *Seq {
	index := make(map[string]int)
	var lits []Literal
	for _, p := range paths {
		i, ok := index[p.bytes]
		if !ok {
			i = len(lits)
			index[p.bytes] = i
			lits = append(lits, NewLiteral([]byte(p.bytes), false))
		}
		if n.IsMatch(p.state) {
			lits[i].Complete = true
		}
	}
	return NewSeq(lits...)
}

// ExtractPrefix runs prefix extraction with the default configuration.
func ExtractPrefix(n *nfa.NFA) (*nfa.NFA, Literal, error) {
	return New(DefaultConfig()).ExtractPrefix(n)
}

// ExtractSet runs set extraction with the default configuration.
func ExtractSet(n *nfa.NFA) *Seq {
	return New(DefaultConfig()).ExtractSet(n)
}
