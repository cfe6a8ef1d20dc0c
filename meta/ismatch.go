package meta

// IsMatch reports whether the pattern matches anywhere in haystack.
//
// This asks the PikeVM to stop at the first thread reaching Match rather
// than draining higher-priority threads for an exact leftmost-first span
// (pike.Options.FirstMatch) — correct here because a boolean answer never
// needs the precise span, only whether one exists.
func (e *Engine) IsMatch(haystack []byte) bool {
	opts := e.baseOptions()
	opts.FirstMatch = true
	res, err := e.searchAt(haystack, 0, opts)
	return err == nil && res.Matched
}
