// Package pike implements the PikeVM: a priority-ordered Thompson NFA
// simulator over a prog.Program, giving leftmost-first semantics with
// linear-time worst case. Grounded on the teacher's nfa.PikeVM, rewritten
// for leftmost-first rather than leftmost-longest matching and for an
// externally-simulated unanchored restart (prog.Program never compiles its
// own search prefix).
package pike

import "errors"

// Runtime errors. The simulator never fails on input content; only resource
// limits and cancellation produce one of these.
var (
	// ErrMemoryBudget is returned when a call's Options.MaxMemory would be
	// exceeded by the next thread spawned.
	ErrMemoryBudget = errors.New("pike: memory budget exceeded")

	// ErrCanceled is returned when Options.Cancel reported an abort.
	ErrCanceled = errors.New("pike: canceled")

	// ErrInternal indicates an invariant the compiler is supposed to
	// guarantee did not hold — a bug, not a caller error.
	ErrInternal = errors.New("pike: internal error")
)
