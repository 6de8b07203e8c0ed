// Package meta implements the engine orchestrator.
//
// findall.go contains FindAll, Count, and IsMatch.

package meta

import (
	"sync/atomic"

	"v.io/x/lib/vlog"

	"github.com/coregx/earlgrep/nfa"
)

// FindAll returns every reported match of haystack in order: line by line,
// and within a line by start. Matches never overlap and are never empty;
// where two candidates overlap, the one that starts first is kept unless a
// later one ends strictly after it.
//
// Example:
//
//	engine, _ := meta.Compile("(ab)+")
//	for _, m := range engine.FindAll([]byte("abababwhatabab")) {
//	    fmt.Printf("%d:%s\n", m.Line(), m) // 1:ababab, then 1:abab
//	}
func (e *Engine) FindAll(haystack []byte) []Match {
	spans := e.findSpans(haystack)
	if len(spans) == 0 {
		return nil
	}
	matches := make([]Match, len(spans))
	for i, s := range spans {
		matches[i] = NewMatch(s.Line, s.Start, s.End, haystack)
	}
	return matches
}

// Count returns the number of matches FindAll would report.
func (e *Engine) Count(haystack []byte) int {
	return len(e.findSpans(haystack))
}

// IsMatch reports whether haystack contains any match.
func (e *Engine) IsMatch(haystack []byte) bool {
	return len(e.findSpans(haystack)) > 0
}

func (e *Engine) findSpans(haystack []byte) []nfa.Span {
	seeds := nfa.Seeds{}
	if e.prefilter != nil {
		atomic.AddUint64(&e.stats.PrefilterSearches, 1)
		candidates := e.prefilter.Candidates(haystack)
		if len(candidates) == 0 {
			// Nil offsets would seed everywhere.
			atomic.AddUint64(&e.stats.PrefilterSkips, 1)
			return nil
		}
		atomic.AddUint64(&e.stats.PrefilterCandidates, uint64(len(candidates)))
		seeds = nfa.Seeds{Offsets: candidates, Delay: e.prefilter.Delay()}
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	atomic.AddUint64(&e.stats.NFASearches, 1)
	spans := e.pikevm.RunWithState(haystack, seeds, state.pikevm)
	atomic.AddUint64(&e.stats.Matches, uint64(len(spans)))
	if vlog.V(2) {
		vlog.Infof("earlgrep: %v: %d bytes, %d candidates, %d matches",
			e.strategy, len(haystack), len(seeds.Offsets), len(spans))
	}
	return spans
}
