package meta

// Find returns the leftmost-first match in haystack, or nil if none.
func (e *Engine) Find(haystack []byte) *Match {
	return e.FindAt(haystack, 0)
}

// FindAt finds the first match starting no earlier than at. Unlike Find,
// it is given the whole haystack so assertions like ^ are checked against
// the true start of input, not a sliced-off position — used by the
// FindAll family to step through successive matches.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
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
	return NewMatch(res.Captures[0], res.Captures[1], haystack)
}
