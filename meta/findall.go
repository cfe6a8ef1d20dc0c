package meta

import "github.com/coregx/re2vm/internal/utf8x"

// FindSubmatch returns the first match with capture group spans, or nil.
func (e *Engine) FindSubmatch(haystack []byte) *MatchWithCaptures {
	return e.FindSubmatchAt(haystack, 0)
}

// FindSubmatchAt is FindSubmatch starting no earlier than at; see FindAt.
func (e *Engine) FindSubmatchAt(haystack []byte, at int) *MatchWithCaptures {
	if at > len(haystack) {
		return nil
	}
	if at > 0 && e.program.Anchored {
		return nil
	}
	res, err := e.searchAt(haystack, at, e.baseOptions())
	if err != nil || !res.Matched {
		return nil
	}
	return NewMatchWithCaptures(haystack, res.Captures)
}

// nextRuneStart returns pos advanced by one rune (or one byte, at the end
// of input), the minimum progress FindAll-family loops must make to avoid
// looping forever on a zero-width match.
func nextRuneStart(haystack []byte, pos int) int {
	if pos >= len(haystack) {
		return pos + 1
	}
	_, width := utf8x.DecodeAt(haystack, pos)
	if width == 0 {
		width = 1
	}
	return pos + width
}

// findAllIndices drives the shared FindAll iteration: successive
// FindSubmatchAt calls, suppressing an empty match that starts exactly
// where the previous (accepted or not) match ended — stdlib regexp's rule
// for why `a*` against "aaa" yields one match, (0,3), not a trailing
// (3,3) as well. emit is called once per accepted match; it returns false
// to stop early (the n-limit).
func (e *Engine) findAllIndices(haystack []byte, n int, emit func(*MatchWithCaptures) bool) {
	if n == 0 {
		return
	}
	pos, prevEnd := 0, -1
	for pos <= len(haystack) {
		m := e.FindSubmatchAt(haystack, pos)
		if m == nil {
			break
		}
		accept := true
		if m.IsEmpty() && m.Start() == prevEnd {
			accept = false
		}
		if accept {
			if !emit(m) {
				return
			}
		}
		prevEnd = m.End()
		if m.IsEmpty() {
			pos = nextRuneStart(haystack, m.End())
		} else {
			pos = m.End()
		}
	}
}

// FindAllIndices returns the (start, end) spans of matches in haystack, in
// order. n < 0 means unlimited; n == 0 returns no matches; n > 0 caps the
// result at n matches.
func (e *Engine) FindAllIndices(haystack []byte, n int) [][2]int {
	var out [][2]int
	e.findAllIndices(haystack, n, func(m *MatchWithCaptures) bool {
		out = append(out, [2]int{m.Start(), m.End()})
		return n < 0 || len(out) < n
	})
	return out
}

// FindAll returns matches in haystack, in order. See FindAllIndices for n.
func (e *Engine) FindAll(haystack []byte, n int) []*Match {
	var out []*Match
	e.findAllIndices(haystack, n, func(m *MatchWithCaptures) bool {
		out = append(out, m.Match)
		return n < 0 || len(out) < n
	})
	return out
}

// FindAllSubmatch returns matches with capture group spans, in order. See
// FindAllIndices for n.
func (e *Engine) FindAllSubmatch(haystack []byte, n int) []*MatchWithCaptures {
	var out []*MatchWithCaptures
	e.findAllIndices(haystack, n, func(m *MatchWithCaptures) bool {
		out = append(out, m)
		return n < 0 || len(out) < n
	})
	return out
}

// Count returns the number of non-overlapping matches in haystack.
func (e *Engine) Count(haystack []byte) int {
	count := 0
	e.findAllIndices(haystack, -1, func(*MatchWithCaptures) bool {
		count++
		return true
	})
	return count
}
