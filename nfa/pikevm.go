package nfa

import (
	"sort"

	"github.com/coregx/earlgrep/internal/conv"
	"github.com/coregx/earlgrep/internal/sparse"
	"github.com/coregx/earlgrep/simd"
)

// Span is a non-empty match [Start, End) of the input, with Start and End
// absolute byte offsets and Line the 1-based line that contains it.
type Span struct {
	Line  int
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Seeds controls where threads start.
//
// With Offsets nil, a thread is seeded at the automaton's start state at
// every position of the input. Otherwise a thread is seeded only at o+Delay
// for each offset o, and matches it produces are reported as starting at o.
// This is how a searcher that has already consumed a literal prefix of
// length Delay at o hands over to a reduced automaton. Offsets must be
// sorted ascending.
type Seeds struct {
	Offsets []int
	Delay   int
}

// PikeVM simulates an epsilon-free NFA over the input one byte at a time,
// carrying every live thread in lockstep, and reports per line the longest
// non-overlapping matches.
//
// Thread safety: PikeVM configuration (nfa) is immutable after creation.
// For concurrent usage, use RunWithState with a PikeVMState per goroutine.
// Run uses internal state and is NOT thread-safe.
type PikeVM struct {
	nfa *NFA

	internalState *PikeVMState
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
type PikeVMState struct {
	// Thread queues for current and next generation
	Queue     []thread
	NextQueue []thread

	// Sets mirroring Queue (Set1) and NextQueue (Set2). A state is queued at
	// most once per position; the thread queued first keeps it.
	Visited *sparse.SparseSets

	// Candidate spans of the line being scanned.
	pending []Span
}

// thread is an active NFA state plus the offset where its match began.
type thread struct {
	state    StateID
	startPos int
}

// NewPikeVM creates a PikeVM for n. n must be epsilon-free; epsilon edges
// are ignored during simulation.
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{
		nfa:           n,
		internalState: NewPikeVMState(n),
	}
}

// NewPikeVMState allocates search state sized for n.
func NewPikeVMState(n *NFA) *PikeVMState {
	capacity := conv.IntToUint32(n.States())
	return &PikeVMState{
		Queue:     make([]thread, 0, n.States()),
		NextQueue: make([]thread, 0, n.States()),
		Visited:   sparse.NewSparseSets(capacity),
	}
}

// NFA returns the automaton the VM runs.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// Run scans text and returns the selected matches in order.
func (p *PikeVM) Run(text []byte, seeds Seeds) []Span {
	return p.RunWithState(text, seeds, p.internalState)
}

// RunWithState is Run with caller-owned search state.
//
// Every line of text is scanned independently: at each '\n' the spans ending
// there are collected and the thread queue is dropped. Within a line spans
// are ordered by start; a span overlapping the last kept one replaces it
// only if it ends strictly later.
func (p *PikeVM) RunWithState(text []byte, seeds Seeds, state *PikeVMState) []Span {
	state.reset(p.nfa)
	startMatch := p.nfa.IsMatch(p.nfa.Start())

	var result []Span
	line := 1
	next := 0 // index of the next unseeded offset
	for pos := 0; pos < len(text); pos++ {
		if seeds.Offsets != nil && len(state.Queue) == 0 {
			// No thread is alive: jump to the next seed position.
			target := len(text)
			if next < len(seeds.Offsets) {
				target = min(seeds.Offsets[next]+seeds.Delay, len(text))
			}
			if target > pos {
				skipped := text[pos:target]
				if i := simd.Memchr(skipped, '\n'); i >= 0 {
					result = resolveLine(result, state.pending)
					state.pending = state.pending[:0]
					line += 1 + simd.Count(skipped[i+1:], '\n')
				}
				pos = target
				if pos == len(text) {
					break
				}
			}
		}

		if seeds.Offsets == nil {
			p.seed(state, pos)
		} else {
			for next < len(seeds.Offsets) && seeds.Offsets[next]+seeds.Delay <= pos {
				if o := seeds.Offsets[next]; o+seeds.Delay == pos {
					p.seed(state, o)
				}
				next++
			}
		}

		p.collect(state, pos, line)
		if text[pos] == '\n' {
			result = resolveLine(result, state.pending)
			state.pending = state.pending[:0]
			state.Queue = state.Queue[:0]
			state.Visited.Set1.Clear()
			line++
			continue
		}
		p.step(state, text[pos])
	}

	p.collect(state, len(text), line)
	// A candidate whose delayed seed position is the end of input never got
	// a thread; it still matches if the reduced start state accepts.
	if seeds.Offsets != nil && startMatch {
		for ; next < len(seeds.Offsets); next++ {
			if o := seeds.Offsets[next]; o+seeds.Delay == len(text) && o < len(text) {
				state.pending = append(state.pending, Span{Line: line, Start: o, End: len(text)})
			}
		}
	}
	result = resolveLine(result, state.pending)
	state.pending = state.pending[:0]
	return result
}

func (p *PikeVM) seed(state *PikeVMState, startPos int) {
	start := p.nfa.Start()
	if state.Visited.Set1.Insert(uint32(start)) {
		state.Queue = append(state.Queue, thread{state: start, startPos: startPos})
	}
}

// collect records a span for every matching thread that consumed input.
func (p *PikeVM) collect(state *PikeVMState, pos, line int) {
	for _, t := range state.Queue {
		if t.startPos < pos && p.nfa.IsMatch(t.state) {
			state.pending = append(state.pending, Span{Line: line, Start: t.startPos, End: pos})
		}
	}
}

// step advances every thread over c.
func (p *PikeVM) step(state *PikeVMState, c byte) {
	nextSet := state.Visited.Set2
	nextSet.Clear()
	state.NextQueue = state.NextQueue[:0]
	for _, t := range state.Queue {
		for _, tr := range p.nfa.states[t.state].out {
			if !tr.Guarded || tr.Byte != c {
				continue
			}
			if nextSet.Insert(uint32(tr.Next)) {
				state.NextQueue = append(state.NextQueue, thread{state: tr.Next, startPos: t.startPos})
			}
		}
	}
	state.Queue, state.NextQueue = state.NextQueue, state.Queue
	state.Visited.Swap()
}

// resolveLine appends the non-overlapping selection of one line's spans.
func resolveLine(result, spans []Span) []Span {
	if len(spans) == 0 {
		return result
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	first := len(result)
	for _, s := range spans {
		if len(result) == first || result[len(result)-1].End <= s.Start {
			result = append(result, s)
			continue
		}
		if s.End > result[len(result)-1].End {
			result[len(result)-1] = s
		}
	}
	return result
}

func (s *PikeVMState) reset(n *NFA) {
	if s.Visited.Set1.Capacity() < n.States() {
		s.Visited.Resize(conv.IntToUint32(n.States()))
	}
	s.Queue = s.Queue[:0]
	s.NextQueue = s.NextQueue[:0]
	s.Visited.Clear()
	s.pending = s.pending[:0]
}
