// Package nfa provides a Thompson NFA built from pattern parse trees, the
// epsilon-elimination passes that turn it into an epsilon-free automaton, and
// a PikeVM that simulates it over text.
//
// States live in a flat arena and refer to each other only by StateID, so
// loops created by * and + need no cyclic ownership. While an automaton is
// under construction, unresolved edges are dangling transitions (no target)
// that Builder.Patch binds later.
package nfa

import (
	"fmt"
	"strings"
)

// StateID identifies a state by its index in the state arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Transition is an outgoing edge. An edge without a byte guard is an epsilon
// edge; an edge without a target is dangling and awaits patching.
//
// Transition is a comparable value and is used directly as a set key when
// edges are deduplicated.
type Transition struct {
	Byte    byte    // guard byte, valid when Guarded
	Guarded bool    // false for epsilon edges
	Next    StateID // target state, valid when Bound
	Bound   bool    // false for dangling edges
}

// ByteEdge returns an edge on c to next.
func ByteEdge(c byte, next StateID) Transition {
	return Transition{Byte: c, Guarded: true, Next: next, Bound: true}
}

// EpsilonEdge returns an epsilon edge to next.
func EpsilonEdge(next StateID) Transition {
	return Transition{Next: next, Bound: true}
}

// DanglingByte returns an edge on c with no target yet.
func DanglingByte(c byte) Transition {
	return Transition{Byte: c, Guarded: true}
}

// DanglingEpsilon returns an epsilon edge with no target yet.
func DanglingEpsilon() Transition {
	return Transition{}
}

// IsEpsilon reports whether the edge consumes no input.
func (t Transition) IsEpsilon() bool {
	return !t.Guarded
}

// IsDangling reports whether the edge has no target yet.
func (t Transition) IsDangling() bool {
	return !t.Bound
}

// String returns a human-readable representation of the edge
func (t Transition) String() string {
	guard := "ε"
	if t.Guarded {
		guard = fmt.Sprintf("%q", rune(t.Byte))
	}
	if !t.Bound {
		return guard + " -> ?"
	}
	return fmt.Sprintf("%s -> %d", guard, t.Next)
}

// State is a node of the automaton: ordered outgoing edges plus a match flag.
type State struct {
	out   []Transition
	match bool
}

// Transitions returns the state's outgoing edges. The slice must not be
// modified.
func (s *State) Transitions() []Transition {
	return s.out
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.match
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	parts := make([]string, len(s.out))
	for i, t := range s.out {
		parts[i] = t.String()
	}
	flag := ""
	if s.match {
		flag = " match"
	}
	return fmt.Sprintf("[%s]%s", strings.Join(parts, ", "), flag)
}

// NFA is a start state plus the state arena. After compilation it contains
// no epsilon and no dangling edges; it is then read-only and may be shared.
type NFA struct {
	states []State
	start  StateID
}

// Start returns the start state.
func (n *NFA) Start() StateID {
	return n.start
}

// States returns the number of states in the arena.
func (n *NFA) States() int {
	return len(n.states)
}

// State returns the state with the given ID, or nil if it is out of range.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch reports whether id is a match state.
func (n *NFA) IsMatch(id StateID) bool {
	return n.states[id].match
}

// Transitions returns the outgoing edges of id.
func (n *NFA) Transitions(id StateID) []Transition {
	return n.states[id].out
}

// Edges returns the total number of edges in the arena.
func (n *NFA) Edges() int {
	total := 0
	for i := range n.states {
		total += len(n.states[i].out)
	}
	return total
}

// HasEpsilon reports whether any state still has an epsilon edge.
func (n *NFA) HasEpsilon() bool {
	for i := range n.states {
		for _, t := range n.states[i].out {
			if t.IsEpsilon() {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the automaton.
func (n *NFA) Clone() *NFA {
	states := make([]State, len(n.states), len(n.states)+1)
	for i, s := range n.states {
		states[i] = State{
			out:   append([]Transition(nil), s.out...),
			match: s.match,
		}
	}
	return &NFA{states: states, start: n.start}
}

// Extend returns a copy of the automaton with one additional state that
// becomes the new start. The receiver is left untouched. Edges must target
// existing states.
func (n *NFA) Extend(out []Transition, match bool) (*NFA, error) {
	for _, t := range out {
		if !t.Bound || int(t.Next) >= len(n.states) {
			return nil, &BuildError{Message: "extension edge " + t.String() + " out of range", StateID: InvalidState}
		}
	}
	c := n.Clone()
	c.start = StateID(len(c.states))
	c.states = append(c.states, State{
		out:   append([]Transition(nil), out...),
		match: match,
	})
	return c, nil
}

// Validate checks that the start state exists and every edge is bound to a
// state inside the arena.
func (n *NFA) Validate() error {
	if int(n.start) >= len(n.states) {
		return &BuildError{Message: "start state out of range", StateID: n.start}
	}
	for i := range n.states {
		for _, t := range n.states[i].out {
			if !t.Bound {
				return &BuildError{Message: "dangling edge " + t.String(), StateID: StateID(i)}
			}
			if int(t.Next) >= len(n.states) {
				return &BuildError{Message: "edge " + t.String() + " out of range", StateID: StateID(i)}
			}
		}
	}
	return nil
}

// String dumps the automaton one state per line.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA(start=%d, states=%d)\n", n.start, len(n.states))
	for i := range n.states {
		fmt.Fprintf(&b, "  %d: %s\n", i, n.states[i].String())
	}
	return b.String()
}
