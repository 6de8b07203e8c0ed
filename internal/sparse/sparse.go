// Package sparse provides a sparse set of small integers with O(1) insert
// and clear.
//
// The PikeVM keeps one set per thread queue so that each automaton state is
// queued at most once per input position; the NFA builder uses one as the
// visited set of its patch walk.
package sparse

// SparseSet is a set of uint32 values below a fixed capacity.
//
// dense holds the members in insertion order; sparse maps a value to its
// index in dense. Stale entries in sparse are harmless because membership is
// confirmed by cross-checking dense, which is what makes Clear O(1).
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates an empty set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value and reports whether it was not already present.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

func (s *SparseSet) contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Resize changes the capacity. Growing keeps the members; shrinking clears
// the set.
func (s *SparseSet) Resize(capacity uint32) {
	if int(capacity) <= len(s.sparse) {
		s.sparse = s.sparse[:capacity]
		s.dense = s.dense[:0]
		return
	}
	grown := make([]uint32, capacity)
	copy(grown, s.sparse)
	s.sparse = grown
}

// SparseSets is a pair of sets used as current/next generations.
type SparseSets struct {
	Set1 *SparseSet
	Set2 *SparseSet
}

// NewSparseSets creates two empty sets of the same capacity.
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Swap exchanges the two sets.
func (ss *SparseSets) Swap() {
	ss.Set1, ss.Set2 = ss.Set2, ss.Set1
}

// Clear empties both sets.
func (ss *SparseSets) Clear() {
	ss.Set1.Clear()
	ss.Set2.Clear()
}

// Resize resizes both sets.
func (ss *SparseSets) Resize(capacity uint32) {
	ss.Set1.Resize(capacity)
	ss.Set2.Resize(capacity)
}
