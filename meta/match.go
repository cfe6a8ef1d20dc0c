package meta

// Match is a successful match's span within a haystack, grounded on the
// teacher's meta.Match.
type Match struct {
	start    int
	end      int
	haystack []byte
}

// NewMatch builds a Match from an inclusive start and exclusive end
// position into haystack. haystack is stored by reference, not copied.
func NewMatch(start, end int, haystack []byte) *Match {
	return &Match{start: start, end: end, haystack: haystack}
}

func (m *Match) Start() int { return m.start }
func (m *Match) End() int   { return m.end }
func (m *Match) Len() int   { return m.end - m.start }

// Bytes returns a view into the original haystack; callers must copy it to
// retain the data past the haystack's lifetime.
func (m *Match) Bytes() []byte {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return nil
	}
	return m.haystack[m.start:m.end]
}

func (m *Match) String() string { return string(m.Bytes()) }
func (m *Match) IsEmpty() bool  { return m.start == m.end }

// MatchWithCaptures is a Match plus every capture group's span. Group 0 is
// always the whole match; an unmatched optional group is nil.
type MatchWithCaptures struct {
	*Match
	groups [][2]int
}

// NewMatchWithCaptures builds a MatchWithCaptures from flat
// [start0, end0, start1, end1, ...] slots, the layout pike.Result.Captures
// uses.
func NewMatchWithCaptures(haystack []byte, slots []int) *MatchWithCaptures {
	n := len(slots) / 2
	groups := make([][2]int, n)
	for i := 0; i < n; i++ {
		groups[i] = [2]int{slots[2*i], slots[2*i+1]}
	}
	return &MatchWithCaptures{
		Match:  NewMatch(slots[0], slots[1], haystack),
		groups: groups,
	}
}

// NumGroups returns the number of groups, including group 0.
func (m *MatchWithCaptures) NumGroups() int { return len(m.groups) }

// GroupIndices returns group i's (start, end) span, or (-1, -1) if it did
// not participate in the match.
func (m *MatchWithCaptures) GroupIndices(i int) (int, int) {
	if i < 0 || i >= len(m.groups) {
		return -1, -1
	}
	g := m.groups[i]
	return g[0], g[1]
}

// Group returns group i's matched bytes, or nil if it did not participate.
func (m *MatchWithCaptures) Group(i int) []byte {
	start, end := m.GroupIndices(i)
	if start < 0 || end < 0 {
		return nil
	}
	return m.Match.haystack[start:end]
}

// FlatIndices returns every group's span flattened as
// [start0, end0, start1, end1, ...], the layout regexp.Expand-style
// template expansion consumes.
func (m *MatchWithCaptures) FlatIndices() []int {
	out := make([]int, 2*len(m.groups))
	for i, g := range m.groups {
		out[2*i] = g[0]
		out[2*i+1] = g[1]
	}
	return out
}
