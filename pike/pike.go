package pike

import (
	"github.com/coregx/re2vm/internal/conv"
	"github.com/coregx/re2vm/internal/sparse"
	"github.com/coregx/re2vm/internal/utf8x"
	"github.com/coregx/re2vm/prog"
	"github.com/coregx/re2vm/syntax"
)

// thread is one live execution point: an instruction plus the captures that
// got it there.
type thread struct {
	pc   prog.InstID
	caps cowCaptures
}

// genList is one generation's worklist: a priority-ordered (highest first)
// list of threads plus a per-generation dedup set, grounded on the
// teacher's queue+visited pairing in nfa.PikeVM.
type genList struct {
	threads []thread
	visited *sparse.SparseSet
}

func newGenList(numInsts int) *genList {
	if numInsts < 1 {
		numInsts = 1
	}
	return &genList{
		threads: make([]thread, 0, numInsts),
		visited: sparse.NewSparseSet(conv.IntToUint32(numInsts)),
	}
}

func (g *genList) reset() {
	g.threads = g.threads[:0]
	g.visited.Clear()
}

// VM executes one compiled prog.Program. A VM is not safe for concurrent
// use: Exec reuses its worklists across calls to avoid per-call
// allocation. Callers needing concurrency should give each goroutine its
// own VM over the same (immutable) Program.
type VM struct {
	prog         *prog.Program
	clist, nlist *genList
}

// New returns a VM ready to execute p.
func New(p *prog.Program) *VM {
	return &VM{
		prog:  p,
		clist: newGenList(len(p.Insts)),
		nlist: newGenList(len(p.Insts)),
	}
}

func (vm *VM) newCaptures() cowCaptures {
	n := 2 * vm.prog.NumCaps
	data := make([]int, n)
	for i := range data {
		data[i] = -1
	}
	return cowCaptures{shared: &sharedCaptures{data: data, refs: 1, words: n}}
}

// Exec runs an unanchored (unless opts.Anchored or vm.prog.Anchored is set)
// leftmost-first search of input starting no earlier than startAt.
func (vm *VM) Exec(input []byte, startAt int, opts Options) (Result, error) {
	anchored := vm.prog.Anchored || opts.Anchored
	clist, nlist := vm.clist, vm.nlist
	clist.reset()

	var (
		result       []int
		wordsCharged int
	)
	charge := func(words int) error {
		if opts.MaxMemory <= 0 {
			return nil
		}
		wordsCharged += words
		if wordsCharged > opts.MaxMemory {
			return ErrMemoryBudget
		}
		return nil
	}

	var width int
	for pos := startAt; ; pos += width {
		if opts.Cancel != nil && opts.Cancel() {
			return Result{}, ErrCanceled
		}

		if result == nil && (pos == startAt || !anchored) {
			caps := vm.newCaptures()
			if err := charge(caps.shared.words); err != nil {
				return Result{}, err
			}
			if err := vm.addThread(clist, vm.prog.Start, pos, caps, input, charge); err != nil {
				return Result{}, err
			}
		}

		if len(clist.threads) == 0 {
			break
		}

		cut := -1
		for i, t := range clist.threads {
			if vm.prog.Insts[t.pc].Op == prog.OpMatch {
				result = t.caps.copyData()
				cut = i
				break
			}
		}
		if cut >= 0 {
			clist.threads = clist.threads[:cut]
			if opts.FirstMatch {
				break
			}
		}

		if pos >= len(input) {
			break
		}

		var r rune
		r, width = utf8x.DecodeAt(input, pos)
		nlist.reset()
		for _, t := range clist.threads {
			if err := vm.step(nlist, t, r, width, pos, input, charge); err != nil {
				return Result{}, err
			}
		}
		clist, nlist = nlist, clist
	}

	vm.clist, vm.nlist = clist, nlist
	if result == nil {
		return Result{}, nil
	}
	return Result{Matched: true, Captures: result}, nil
}

// addThread walks the epsilon closure from pc, expanding Jmp/Split/Save/
// Assert immediately and appending only input-consuming or Match
// instructions to list. Threads already seen this generation (by pc) are
// dropped: a higher-priority thread already claimed that instruction, and
// leftmost-first matching never prefers a lower-priority path to the same
// state.
func (vm *VM) addThread(list *genList, pc prog.InstID, pos int, caps cowCaptures, input []byte, charge func(int) error) error {
	if pc == prog.InvalidInst {
		return nil
	}
	//nolint:gosec // G115: InstID fits uint32 by construction
	if list.visited.Contains(uint32(pc)) {
		return nil
	}
	//nolint:gosec // G115: InstID fits uint32 by construction
	list.visited.Insert(uint32(pc))

	in := &vm.prog.Insts[pc]
	switch in.Op {
	case prog.OpJmp:
		return vm.addThread(list, in.Next, pos, caps, input, charge)
	case prog.OpSplit:
		if err := vm.addThread(list, in.Left, pos, caps.clone(), input, charge); err != nil {
			return err
		}
		return vm.addThread(list, in.Right, pos, caps, input, charge)
	case prog.OpSave:
		next, allocated := caps.update(in.Slot, pos)
		if allocated {
			if err := charge(next.shared.words); err != nil {
				return err
			}
		}
		return vm.addThread(list, in.Next, pos, next, input, charge)
	case prog.OpAssert:
		if assertHolds(in.Assert, input, pos) {
			return vm.addThread(list, in.Next, pos, caps, input, charge)
		}
		return nil
	case prog.OpFail:
		return nil
	default: // OpRune, OpRuneClass, OpAnyRune, OpAnyByte, OpMatch
		list.threads = append(list.threads, thread{pc: pc, caps: caps})
		return nil
	}
}

// step advances one already-consuming thread past the decoded rune r (of
// width bytes starting at pos), adding any surviving continuation to nlist.
func (vm *VM) step(nlist *genList, t thread, r rune, width, pos int, input []byte, charge func(int) error) error {
	in := &vm.prog.Insts[t.pc]
	switch in.Op {
	case prog.OpRune:
		if r >= in.Lo && r <= in.Hi {
			return vm.addThread(nlist, in.Next, pos+width, t.caps, input, charge)
		}
	case prog.OpRuneClass:
		if in.Class.Contains(r) {
			return vm.addThread(nlist, in.Next, pos+width, t.caps, input, charge)
		}
	case prog.OpAnyRune:
		if r != '\n' || !in.NotNL {
			return vm.addThread(nlist, in.Next, pos+width, t.caps, input, charge)
		}
	case prog.OpAnyByte:
		return vm.addThread(nlist, in.Next, pos+width, t.caps, input, charge)
	}
	return nil
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z')
}

func assertHolds(kind syntax.AssertKind, input []byte, pos int) bool {
	switch kind {
	case syntax.AssertBeginText:
		return pos == 0
	case syntax.AssertEndText:
		return pos == len(input)
	case syntax.AssertBeginLine:
		if pos == 0 {
			return true
		}
		r, w := utf8x.PrevRune(input, pos)
		return w > 0 && r == '\n'
	case syntax.AssertEndLine:
		if pos == len(input) {
			return true
		}
		r, w := utf8x.DecodeAt(input, pos)
		return w > 0 && r == '\n'
	case syntax.AssertWordBoundary, syntax.AssertNoWordBoundary:
		before := pos > 0
		if before {
			r, _ := utf8x.PrevRune(input, pos)
			before = isWordRune(r)
		}
		after := pos < len(input)
		if after {
			r, _ := utf8x.DecodeAt(input, pos)
			after = isWordRune(r)
		}
		boundary := before != after
		if kind == syntax.AssertWordBoundary {
			return boundary
		}
		return !boundary
	default:
		return false
	}
}
