package meta

import (
	"sync"

	"github.com/coregx/earlgrep/nfa"
)

// SearchState holds per-search mutable state for thread-safe concurrent
// searches. It is obtained from a sync.Pool, so the same compiled Engine can
// be used from multiple goroutines.
//
// Thread safety: each goroutine must use its own SearchState instance.
type SearchState struct {
	// pikevm holds the thread queues and visited sets of one simulation.
	pikevm *nfa.PikeVMState
}

func newSearchState(n *nfa.NFA) *SearchState {
	return &SearchState{
		pikevm: nfa.NewPikeVMState(n),
	}
}

// searchStatePool manages a pool of SearchState instances for thread-safe
// reuse, the way stdlib regexp pools its machines.
type searchStatePool struct {
	pool sync.Pool

	// nfa sizes new states
	nfa *nfa.NFA
}

func newSearchStatePool(n *nfa.NFA) *searchStatePool {
	p := &searchStatePool{nfa: n}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(p.nfa)
		},
	}
	return p
}

// get retrieves a SearchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns a SearchState to the pool for reuse. The PikeVM resets the
// state when a search begins.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
