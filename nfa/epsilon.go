package nfa

import "fmt"

// EliminateEpsilon rewrites the automaton in place into an equivalent one
// without epsilon edges: ExpandEpsilon, then PropagateMatch, then
// RemoveEpsilon. States are never removed, so IDs stay stable; states that
// become unreachable are left in the arena.
func (n *NFA) EliminateEpsilon() error {
	if err := n.ExpandEpsilon(); err != nil {
		return err
	}
	if err := n.PropagateMatch(); err != nil {
		return err
	}
	return n.RemoveEpsilon()
}

// ExpandEpsilon adds, for every epsilon edge s->t, each epsilon edge of t
// that s does not already have, until nothing changes. Afterwards every
// state has a direct epsilon edge to each state of its epsilon closure.
func (n *NFA) ExpandEpsilon() error {
	return n.fixpoint("epsilon expansion", func() bool {
		changed := false
		for i := range n.states {
			s := &n.states[i]
			var have map[Transition]struct{}
			// s.out grows while it is scanned; new edges are scanned too.
			for j := 0; j < len(s.out); j++ {
				t := s.out[j]
				if !t.IsEpsilon() {
					continue
				}
				for _, next := range n.states[t.Next].out {
					if !next.IsEpsilon() {
						continue
					}
					if have == nil {
						have = edgeSet(s.out)
					}
					if _, ok := have[next]; ok {
						continue
					}
					have[next] = struct{}{}
					s.out = append(s.out, next)
					changed = true
				}
			}
		}
		return changed
	})
}

// PropagateMatch marks as matching every state with an epsilon edge to a
// matching state, until nothing changes.
func (n *NFA) PropagateMatch() error {
	return n.fixpoint("match propagation", func() bool {
		changed := false
		for i := range n.states {
			s := &n.states[i]
			if s.match {
				continue
			}
			for _, t := range s.out {
				if t.IsEpsilon() && n.states[t.Next].match {
					s.match = true
					changed = true
					break
				}
			}
		}
		return changed
	})
}

// RemoveEpsilon replaces every epsilon edge s->t with the edges of t that s
// does not already have, then drops the epsilon edges of s. It relies on
// ExpandEpsilon having run, so that copying one level is enough.
func (n *NFA) RemoveEpsilon() error {
	return n.fixpoint("epsilon removal", func() bool {
		changed := false
		for i := range n.states {
			s := &n.states[i]
			if !hasEpsilon(s.out) {
				continue
			}
			have := edgeSet(s.out)
			for j, end := 0, len(s.out); j < end; j++ {
				t := s.out[j]
				if !t.IsEpsilon() {
					continue
				}
				for _, next := range n.states[t.Next].out {
					if _, ok := have[next]; ok {
						continue
					}
					have[next] = struct{}{}
					s.out = append(s.out, next)
				}
			}
			kept := s.out[:0]
			for _, t := range s.out {
				if !t.IsEpsilon() {
					kept = append(kept, t)
				}
			}
			s.out = kept
			changed = true
		}
		return changed
	})
}

// fixpoint runs sweep until it reports no change. Every pass converges in at
// most one sweep per state plus a confirming sweep, so exceeding that bound
// means the automaton is corrupt.
func (n *NFA) fixpoint(pass string, sweep func() bool) error {
	limit := len(n.states) + 2
	for i := 0; i < limit; i++ {
		if !sweep() {
			return nil
		}
	}
	return &BuildError{
		Message: fmt.Sprintf("%s did not converge within %d sweeps", pass, limit),
		StateID: InvalidState,
	}
}

func edgeSet(out []Transition) map[Transition]struct{} {
	set := make(map[Transition]struct{}, len(out))
	for _, t := range out {
		set[t] = struct{}{}
	}
	return set
}

func hasEpsilon(out []Transition) bool {
	for _, t := range out {
		if t.IsEpsilon() {
			return true
		}
	}
	return false
}
