package nfa

import (
	"fmt"

	"github.com/coregx/earlgrep/internal/conv"
	"github.com/coregx/earlgrep/internal/sparse"
)

// Builder constructs NFAs incrementally using a low-level API.
// Fragments are identified by their entry state; their exits are the dangling
// edges reachable from it, which Patch binds to the next fragment.
type Builder struct {
	states []State
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{states: make([]State, 0, capacity)}
}

// AddState appends a state with the given edges and returns its ID.
// The edges are copied.
func (b *Builder) AddState(match bool, out ...Transition) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{
		out:   append([]Transition(nil), out...),
		match: match,
	})
	return id
}

// AddMatch adds a match (accepting) state with no edges.
func (b *Builder) AddMatch() StateID {
	return b.AddState(true)
}

// AddByte adds a state with a single dangling edge on c.
func (b *Builder) AddByte(c byte) StateID {
	return b.AddState(false, DanglingByte(c))
}

// AddClass adds a state with one dangling edge per byte of the given classes,
// in order. Bytes repeated across classes get a single edge.
func (b *Builder) AddClass(classes ...[]byte) StateID {
	var seen [256]bool
	var out []Transition
	for _, class := range classes {
		for _, c := range class {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, DanglingByte(c))
		}
	}
	return b.AddState(false, out...)
}

// AddSplit adds a state with an epsilon edge to each target, in order.
func (b *Builder) AddSplit(targets ...StateID) StateID {
	out := make([]Transition, len(targets))
	for i, t := range targets {
		out[i] = EpsilonEdge(t)
	}
	return b.AddState(false, out...)
}

// AddEdge appends an edge to an existing state.
func (b *Builder) AddEdge(id StateID, t Transition) error {
	if err := b.check(id); err != nil {
		return err
	}
	b.states[id].out = append(b.states[id].out, t)
	return nil
}

// Patch binds every dangling edge reachable from `from` to `to`.
//
// The walk is depth-first over bound edges with a visited set, so loops
// closed by earlier patches terminate. It never enters `to` itself: the
// target fragment's own exits belong to whoever patches it next.
func (b *Builder) Patch(from, to StateID) error {
	if err := b.check(from); err != nil {
		return err
	}
	if err := b.check(to); err != nil {
		return err
	}

	visited := sparse.NewSparseSet(conv.IntToUint32(len(b.states)))
	visited.Insert(uint32(from))
	stack := []StateID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			continue
		}
		out := b.states[id].out
		for i := range out {
			if !out[i].Bound {
				out[i].Next = to
				out[i].Bound = true
				continue
			}
			next := out[i].Next
			if int(next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("edge target %d out of range", next),
					StateID: id,
				}
			}
			if visited.Insert(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
	return nil
}

// States returns the number of states added so far.
func (b *Builder) States() int {
	return len(b.states)
}

// Build finalizes the automaton with the given start state and validates it.
// The builder must not be used afterwards.
func (b *Builder) Build(start StateID) (*NFA, error) {
	n := &NFA{states: b.states, start: start}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	b.states = nil
	return n, nil
}

func (b *Builder) check(id StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{
			Message: fmt.Sprintf("invalid state ID (max: %d)", len(b.states)-1),
			StateID: id,
		}
	}
	return nil
}
