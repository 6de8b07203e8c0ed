package prefilter

import (
	"fmt"
	"sort"
)

// BoyerMoore searches for one pattern with the extended bad-character rule,
// the strong good-suffix rule and Galil's rule, so a text is scanned in
// linear time even when occurrences overlap.
//
// A BoyerMoore is read-only after construction and safe for concurrent use.
type BoyerMoore struct {
	pattern []byte

	// occ[c] lists the positions of byte c in pattern, ascending. The last
	// one left of a mismatch at i gives the bad-character shift.
	occ [256][]int

	// goodSuffix[i] is the end of the rightmost copy of pattern[i:] that is
	// not a suffix of pattern, or -1 if there is none.
	goodSuffix []int

	// fullShift[i] is the length of the longest suffix of pattern[i:] that
	// is also a prefix of pattern.
	fullShift []int
}

// NewBoyerMoore preprocesses pattern. The pattern is copied.
func NewBoyerMoore(pattern []byte) *BoyerMoore {
	p := append([]byte(nil), pattern...)
	bm := &BoyerMoore{
		pattern:    p,
		goodSuffix: goodSuffixTable(p),
		fullShift:  fullShiftTable(p),
	}
	for i, c := range p {
		bm.occ[c] = append(bm.occ[c], i)
	}
	return bm
}

// Search returns the 0-based start offset of every occurrence of pattern in
// text, overlapping ones included, in ascending order. An empty pattern, or
// one longer than text, has no occurrences.
//
// Example:
//
//	prefilter.Search([]byte("Hello I am Bobby Daigle. ABABABAB"), []byte("Bobby"))
//	// [11]
func Search(text, pattern []byte) []int {
	return NewBoyerMoore(pattern).Candidates(text)
}

// Pattern returns the searched-for bytes.
func (bm *BoyerMoore) Pattern() []byte {
	return bm.pattern
}

// Find implements Prefilter.Find.
func (bm *BoyerMoore) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	found := -1
	bm.scan(haystack[start:], func(pos int) bool {
		found = start + pos
		return false
	})
	return found
}

// Candidates implements Prefilter.Candidates.
func (bm *BoyerMoore) Candidates(haystack []byte) []int {
	var out []int
	bm.scan(haystack, func(pos int) bool {
		out = append(out, pos)
		return true
	})
	return out
}

// Delay implements Prefilter.Delay: the whole pattern is verified.
func (bm *BoyerMoore) Delay() int {
	return len(bm.pattern)
}

// HeapBytes implements Prefilter.HeapBytes.
func (bm *BoyerMoore) HeapBytes() int {
	total := len(bm.pattern) + 8*(len(bm.goodSuffix)+len(bm.fullShift))
	for _, positions := range bm.occ {
		total += 8 * cap(positions)
	}
	return total
}

// String implements Prefilter.String.
func (bm *BoyerMoore) String() string {
	return fmt.Sprintf("BoyerMoore(%q)", bm.pattern)
}

// scan calls yield with each occurrence in ascending order until yield
// returns false.
func (bm *BoyerMoore) scan(text []byte, yield func(pos int) bool) {
	p := bm.pattern
	m := len(p)
	if m == 0 || m > len(text) {
		return
	}

	// k aligns the end of the pattern with text[k]. When prevK >= 0, the
	// part of the current window up to text[prevK] is already known to
	// match, so comparison stops there.
	k := m - 1
	prevK := -1
	for k < len(text) {
		i, h := m-1, k
		for i >= 0 && h > prevK && p[i] == text[h] {
			i--
			h--
		}
		if i < 0 || h == prevK {
			if !yield(k - m + 1) {
				return
			}
			shift := 1
			if m > 1 {
				shift = m - bm.fullShift[1]
			}
			// The overlap with the next window is a border of the pattern,
			// which matches by construction.
			prevK = k
			k += shift
			continue
		}

		charShift := i - bm.lastOccurrence(text[h], i)
		var suffixShift int
		switch {
		case i == m-1:
			suffixShift = 1
		case bm.goodSuffix[i+1] == -1:
			suffixShift = m - bm.fullShift[i+1]
		default:
			suffixShift = m - 1 - bm.goodSuffix[i+1]
		}
		shift := max(charShift, suffixShift)
		// Galil: the part of the next window up to k is known to match only
		// if the good-suffix tables chose the shift and the next window does
		// not reach back past the matched suffix. The boundary is only valid
		// for the alignment right after it was set.
		if suffixShift >= charShift && shift >= i+1 {
			prevK = k
		} else {
			prevK = -1
		}
		k += shift
	}
}

// lastOccurrence returns the rightmost position of c in pattern[:i], or -1.
func (bm *BoyerMoore) lastOccurrence(c byte, i int) int {
	positions := bm.occ[c]
	j := sort.SearchInts(positions, i) // first position >= i
	if j == 0 {
		return -1
	}
	return positions[j-1]
}

// ZArray returns, for every i, the length of the longest substring of s
// starting at i that is also a prefix of s. ZArray(s)[0] is len(s).
func ZArray(s []byte) []int {
	n := len(s)
	if n == 0 {
		return nil
	}
	z := make([]int, n)
	z[0] = n
	if n == 1 {
		return z
	}
	z[1] = matchLength(s, 0, 1)
	for i := 2; i <= z[1]; i++ {
		z[i] = z[1] - i + 1
	}

	// [l, r] is the rightmost window found so far that matches a prefix.
	l, r := 0, 0
	for i := 2 + z[1]; i < n; i++ {
		if i <= r {
			known := z[i-l]
			remaining := r - i + 1
			if known < remaining {
				z[i] = known
			} else {
				z[i] = remaining + matchLength(s, remaining, r+1)
				l, r = i, i+z[i]-1
			}
			continue
		}
		z[i] = matchLength(s, 0, i)
		if z[i] > 0 {
			l, r = i, i+z[i]-1
		}
	}
	return z
}

// matchLength returns the length of the longest common prefix of s[i:] and
// s[j:].
func matchLength(s []byte, i, j int) int {
	if i == j {
		return len(s) - i
	}
	n := 0
	for i < len(s) && j < len(s) && s[i] == s[j] {
		n++
		i++
		j++
	}
	return n
}

func goodSuffixTable(p []byte) []int {
	m := len(p)
	table := make([]int, m)
	for i := range table {
		table[i] = -1
	}
	// n[j] is the length of the longest suffix of p[:j+1] that is also a
	// suffix of p.
	n := ZArray(reversed(p))
	for a, b := 0, len(n)-1; a < b; a, b = a+1, b-1 {
		n[a], n[b] = n[b], n[a]
	}
	for j := 0; j < m-1; j++ {
		if i := m - n[j]; i != m {
			table[i] = j
		}
	}
	return table
}

func fullShiftTable(p []byte) []int {
	m := len(p)
	table := make([]int, m)
	z := ZArray(p)
	longest := 0
	for i := 0; i < m; i++ {
		// The suffix starting at m-1-i has length i+1.
		if zv := z[m-1-i]; zv == i+1 {
			longest = max(longest, zv)
		}
		table[m-1-i] = longest
	}
	return table
}

func reversed(p []byte) []byte {
	out := make([]byte, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}
