package meta

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/re2vm/pike"
	"github.com/coregx/re2vm/prefilter"
	"github.com/coregx/re2vm/prog"
)

// Engine is a compiled pattern ready to search. Grounded on the teacher's
// meta.Engine: pattern analysis happens once at Compile time, and Engine
// itself is safe for concurrent use — each search borrows a pooled
// pike.VM rather than sharing one, following the teacher's
// searchStatePool/sync.Pool pattern.
type Engine struct {
	pattern  string
	program  *prog.Program
	prefilt  prefilter.Prefilter
	strategy Strategy
	config   Config

	vmPool sync.Pool

	stats Stats
}

// Stats tracks coarse execution counts, useful for tuning and tests.
type Stats struct {
	PikeVMSearches  uint64
	PrefilterHits   uint64
	PrefilterMisses uint64
}

// Pattern returns the source pattern this Engine was compiled from.
func (e *Engine) Pattern() string { return e.pattern }

// Strategy returns the execution strategy this Engine selected.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Stats returns a snapshot of the engine's execution counters.
func (e *Engine) Stats() Stats {
	return Stats{
		PikeVMSearches:  atomic.LoadUint64(&e.stats.PikeVMSearches),
		PrefilterHits:   atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses: atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// NumCaptures returns the number of capture groups, including group 0 (the
// whole match).
func (e *Engine) NumCaptures() int { return e.program.NumCaps }

// SubexpNames returns capture group names; index 0 is always "".
func (e *Engine) SubexpNames() []string { return e.program.CapNames }

// IsStartAnchored reports whether the pattern can only match at position 0.
func (e *Engine) IsStartAnchored() bool { return e.program.Anchored }

// baseOptions returns the pike.Options every search starts from, carrying
// the Config-level resource limits (currently just MaxMemory) through to
// the simulator.
func (e *Engine) baseOptions() pike.Options {
	return pike.Options{MaxMemory: e.config.MaxMemory}
}

func (e *Engine) getVM() *pike.VM {
	return e.vmPool.Get().(*pike.VM)
}

func (e *Engine) putVM(vm *pike.VM) {
	e.vmPool.Put(vm)
}
