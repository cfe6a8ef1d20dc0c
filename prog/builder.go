package prog

import (
	"fmt"

	"github.com/coregx/re2vm/syntax"
)

// Builder constructs a Program incrementally, grounded on the teacher's
// nfa.Builder: append-only instruction slice plus Patch for forward
// references created while compiling loops and alternations.
type Builder struct {
	insts []Inst
	start InstID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{insts: make([]Inst, 0, 16)}
}

func (b *Builder) add(i Inst) InstID {
	id := InstID(len(b.insts))
	b.insts = append(b.insts, i)
	return id
}

// AddMatch appends an accepting instruction.
func (b *Builder) AddMatch() InstID {
	return b.add(Inst{Op: OpMatch})
}

// AddRune appends an instruction matching the rune range [lo, hi].
func (b *Builder) AddRune(lo, hi rune, next InstID) InstID {
	return b.add(Inst{Op: OpRune, Lo: lo, Hi: hi, Next: next})
}

// AddRuneClass appends an instruction matching any rune in cls.
func (b *Builder) AddRuneClass(cls *syntax.CharClass, next InstID) InstID {
	return b.add(Inst{Op: OpRuneClass, Class: cls, Next: next})
}

// AddAnyRune appends an instruction matching any rune (excluding '\n' if
// notNL is set).
func (b *Builder) AddAnyRune(notNL bool, next InstID) InstID {
	return b.add(Inst{Op: OpAnyRune, NotNL: notNL, Next: next})
}

// AddAnyByte appends an instruction matching any rune, '\n' included
// unconditionally (the DotAll variant of AddAnyRune; still a rune step).
func (b *Builder) AddAnyByte(next InstID) InstID {
	return b.add(Inst{Op: OpAnyByte, Next: next})
}

// AddSplit appends an alternation fork: thread priority favors left.
func (b *Builder) AddSplit(left, right InstID) InstID {
	return b.add(Inst{Op: OpSplit, Left: left, Right: right})
}

// AddQuantifierSplit appends a fork compiled from a quantifier rather than
// an alternation. Priority still favors left; the flag only distinguishes
// provenance for readability at call sites and in debug dumps.
func (b *Builder) AddQuantifierSplit(left, right InstID) InstID {
	return b.add(Inst{Op: OpSplit, Left: left, Right: right, IsQuantifier: true})
}

// AddJmp appends an unconditional epsilon transition.
func (b *Builder) AddJmp(next InstID) InstID {
	return b.add(Inst{Op: OpJmp, Next: next})
}

// AddSave appends a capture-slot recording instruction.
func (b *Builder) AddSave(slot int, next InstID) InstID {
	return b.add(Inst{Op: OpSave, Slot: slot, Next: next})
}

// AddAssert appends a zero-width assertion instruction.
func (b *Builder) AddAssert(kind syntax.AssertKind, next InstID) InstID {
	return b.add(Inst{Op: OpAssert, Assert: kind, Next: next})
}

// AddFail appends an instruction that can never proceed.
func (b *Builder) AddFail() InstID {
	return b.add(Inst{Op: OpFail})
}

// Patch redirects the Next field of a single-target instruction
// (Rune/RuneClass/AnyRune/AnyByte/Jmp/Save/Assert) to target.
func (b *Builder) Patch(id, target InstID) error {
	if int(id) >= len(b.insts) {
		return &BuildError{Message: "instruction ID out of bounds", Inst: id}
	}
	in := &b.insts[id]
	switch in.Op {
	case OpRune, OpRuneClass, OpAnyRune, OpAnyByte, OpJmp, OpSave, OpAssert, OpFail:
		// OpFail's Next is never followed by the simulator (a Fail thread
		// is always dropped), but accepting the patch keeps compileConcat
		// and friends from needing a special case when a NoMatch/Fail
		// fragment sits mid-sequence.
		in.Next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch instruction of kind %s", in.Op), Inst: id}
	}
}

// PatchSplit redirects both targets of a Split instruction.
func (b *Builder) PatchSplit(id, left, right InstID) error {
	if int(id) >= len(b.insts) {
		return &BuildError{Message: "instruction ID out of bounds", Inst: id}
	}
	in := &b.insts[id]
	if in.Op != OpSplit {
		return &BuildError{Message: fmt.Sprintf("expected Split instruction, got %s", in.Op), Inst: id}
	}
	in.Left, in.Right = left, right
	return nil
}

// SetStart records the program's anchored entry point.
func (b *Builder) SetStart(start InstID) { b.start = start }

// Len returns the number of instructions appended so far.
func (b *Builder) Len() int { return len(b.insts) }

// Build finalizes the Program. numCaps and capNames describe the capture
// slots (capNames[0] == "", the whole-match group); anchored marks whether
// the pattern itself requires start-of-text matching.
func (b *Builder) Build(numCaps int, capNames []string, anchored bool) (*Program, error) {
	if int(b.start) >= len(b.insts) {
		return nil, &BuildError{Message: "start instruction out of bounds", Inst: b.start}
	}
	for id, in := range b.insts {
		if err := validateInst(InstID(id), in, len(b.insts)); err != nil {
			return nil, err
		}
	}
	names := make([]string, numCaps)
	copy(names, capNames)
	return &Program{
		Insts:    b.insts,
		Start:    b.start,
		NumCaps:  numCaps,
		CapNames: names,
		Anchored: anchored,
	}, nil
}

func validateInst(id InstID, in Inst, n int) error {
	inBounds := func(t InstID) bool { return t == InvalidInst || int(t) < n }
	switch in.Op {
	case OpRune, OpRuneClass, OpAnyRune, OpAnyByte, OpJmp, OpSave, OpAssert:
		if !inBounds(in.Next) {
			return &BuildError{Message: fmt.Sprintf("invalid next target %d", in.Next), Inst: id}
		}
	case OpSplit:
		if !inBounds(in.Left) || !inBounds(in.Right) {
			return &BuildError{Message: "invalid split target", Inst: id}
		}
	}
	return nil
}
