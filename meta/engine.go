// Package meta implements the engine orchestrator.
//
// engine.go contains the Engine struct definition and core API methods.

package meta

import (
	"sync/atomic"

	"github.com/coregx/earlgrep/literal"
	"github.com/coregx/earlgrep/nfa"
	"github.com/coregx/earlgrep/prefilter"
)

// Engine is a compiled pattern together with its search strategy.
//
// Thread safety: the automata and the prefilter are immutable after
// compilation and per-search state is pooled, so multiple goroutines can
// call FindAll on the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile(`Bobby\w\s+`)
//	if err != nil {
//	    return err
//	}
//	for _, m := range engine.FindAll([]byte("Hello I am Bobby Daigle.")) {
//	    println(m.Line(), m.String()) // 1 "Bobby Daigle"
//	}
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on
	// 32-bit platforms, where atomic uint64 operations require it.
	stats Stats

	// nfa accepts the whole pattern.
	nfa *nfa.NFA

	// pikevm runs the automaton matches are resumed on: the prefix-reduced
	// one for UsePrefix, nfa otherwise.
	pikevm *nfa.PikeVM

	prefix    literal.Literal
	literals  *literal.Seq
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config

	// statePool provides thread-safe pooling of per-search mutable state.
	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts PikeVM runs
	NFASearches uint64

	// PrefilterSearches counts candidate searches with the prefilter
	PrefilterSearches uint64

	// PrefilterCandidates counts the candidate starts the prefilter found
	PrefilterCandidates uint64

	// PrefilterSkips counts searches that ended because the prefilter
	// found no candidate
	PrefilterSkips uint64

	// Matches counts reported matches
	Matches uint64
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// NFA returns the epsilon-free automaton of the whole pattern.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// SearchNFA returns the automaton the PikeVM runs. It differs from NFA only
// under UsePrefix, where it starts right after the prefix.
func (e *Engine) SearchNFA() *nfa.NFA {
	return e.pikevm.NFA()
}

// Prefix returns the literal every match begins with, possibly empty.
func (e *Engine) Prefix() literal.Literal {
	return e.prefix
}

// Literals returns the literal set every match begins with one of, or nil.
func (e *Engine) Literals() *literal.Seq {
	return e.literals
}

// Prefilter returns the candidate finder, or nil under UseNFA.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("NFA searches:", stats.NFASearches)
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:         atomic.LoadUint64(&e.stats.NFASearches),
		PrefilterSearches:   atomic.LoadUint64(&e.stats.PrefilterSearches),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterSkips:      atomic.LoadUint64(&e.stats.PrefilterSkips),
		Matches:             atomic.LoadUint64(&e.stats.Matches),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.NFASearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkips, 0)
	atomic.StoreUint64(&e.stats.Matches, 0)
}

// getSearchState retrieves a SearchState from the pool.
// Caller must call putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
