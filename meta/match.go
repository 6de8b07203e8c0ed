package meta

// Match represents one reported match: a non-empty byte range of the
// haystack and the 1-based line that contains it.
//
// Example:
//
//	m := meta.NewMatch(1, 5, 11, []byte("test foo123 end"))
//	println(m.String())         // "foo123"
//	println(m.Start(), m.End()) // 5, 11
type Match struct {
	line     int
	start    int
	end      int
	haystack []byte
}

// NewMatch creates a new Match from a line number and start and end
// positions.
//
// The haystack is stored by reference (not copied).
func NewMatch(line, start, end int, haystack []byte) Match {
	return Match{
		line:     line,
		start:    start,
		end:      end,
		haystack: haystack,
	}
}

// Line returns the 1-based line number of the match.
func (m Match) Line() int {
	return m.line
}

// Start returns the inclusive start position of the match.
func (m Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.end - m.start
}

// Bytes returns the matched bytes as a slice.
//
// The returned slice is a view into the original haystack (not a copy).
func (m Match) Bytes() []byte {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return nil
	}
	return m.haystack[m.start:m.end]
}

// String returns the matched text as a string.
func (m Match) String() string {
	return string(m.Bytes())
}

// Contains returns true if start <= pos < end.
func (m Match) Contains(pos int) bool {
	return pos >= m.start && pos < m.end
}
