package pike

// Options configures a single Exec call. The zero value runs an unanchored,
// leftmost-first search with no resource limits.
type Options struct {
	// Anchored forces the search to try only the given start position,
	// ignoring prog.Program.Anchored. Use this to re-run a match attempt at
	// an exact offset (e.g. \G-style continuation) without recompiling.
	Anchored bool

	// FirstMatch stops at the first thread to reach OpMatch without
	// continuing to run strictly-higher-priority threads that are still
	// alive. It trades capture placement accuracy (a higher-priority
	// thread might have matched a different, preferred span) for not
	// having to drain the rest of the current generation. Leftmost-first
	// span selection (the default) requires letting those threads finish.
	FirstMatch bool

	// MaxMemory caps the number of int words this call may allocate across
	// all capture vectors. Zero means unbounded. Exceeding it aborts the
	// search with ErrMemoryBudget rather than let it grow further.
	MaxMemory int

	// Cancel, if non-nil, is polled once per input position scanned (each
	// rune start).
	// A true return aborts the search with ErrCanceled.
	Cancel func() bool
}

// Result is the outcome of an Exec call.
type Result struct {
	Matched bool
	// Captures holds 2*NumCaps ints: Captures[2g], Captures[2g+1] are the
	// start/end byte offsets of group g, or both -1 if the group did not
	// participate. Captures[0], Captures[1] are the full match span.
	Captures []int
}
