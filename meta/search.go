package meta

import (
	"sync/atomic"

	"github.com/coregx/re2vm/pike"
)

// searchAt runs one search starting no earlier than at, dispatching on the
// engine's Strategy. For StrategyPrefilter it scans for literal-prefix
// candidates and confirms each one with an anchored PikeVM call, advancing
// past a candidate that fails to confirm — grounded on the teacher's
// prefilter-then-NFA-confirm dispatch in meta/find.go, reduced to a single
// confirm step (the teacher also dispatches to a lazy DFA or one-pass DFA
// here; this build always confirms with the PikeVM).
func (e *Engine) searchAt(haystack []byte, at int, opts pike.Options) (pike.Result, error) {
	vm := e.getVM()
	defer e.putVM(vm)

	if e.strategy != StrategyPrefilter {
		atomic.AddUint64(&e.stats.PikeVMSearches, 1)
		return vm.Exec(haystack, at, opts)
	}

	pos := at
	for {
		cand := e.prefilt.Find(haystack, pos)
		if cand < 0 {
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
			return pike.Result{}, nil
		}
		atomic.AddUint64(&e.stats.PrefilterHits, 1)

		confirmOpts := opts
		confirmOpts.Anchored = true
		atomic.AddUint64(&e.stats.PikeVMSearches, 1)
		res, err := vm.Exec(haystack, cand, confirmOpts)
		if err != nil {
			return pike.Result{}, err
		}
		if res.Matched {
			return res, nil
		}
		pos = cand + 1
	}
}
