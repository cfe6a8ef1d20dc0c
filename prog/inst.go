// Package prog compiles a parsed syntax.Regexp into a flat Thompson-style
// instruction program that the pike package's PikeVM executes. Every
// instruction that consumes input consumes one decoded rune; there is no
// byte-granularity instruction. OpAnyByte and OpAnyRune both step one rune
// — they differ only in whether '\n' is excluded, mirroring the teacher's
// AddRuneAny/AddRuneAnyNotNL split.
package prog

import (
	"fmt"

	"github.com/coregx/re2vm/syntax"
)

// InstID indexes into a Program's Insts slice.
type InstID uint32

// InvalidInst marks an unset/forward-reference instruction target.
const InvalidInst InstID = 0xFFFFFFFF

// Op identifies the kind of a single instruction. The fields an
// instruction reads depend on Op; see the constant docs.
type Op uint8

const (
	// OpMatch accepts the input. Terminal; has no Next.
	OpMatch Op = iota
	// OpRune consumes one rune if it falls in [Lo, Hi], then goes to Next.
	OpRune
	// OpRuneClass consumes one rune if Class.Contains it, then goes to Next.
	OpRuneClass
	// OpAnyRune consumes any rune; if NotNL, '\n' is excluded. Compiled from
	// an AnyChar AST node without the DotAll flag.
	OpAnyRune
	// OpAnyByte consumes any rune, '\n' included unconditionally. Despite
	// the name (kept for continuity with the AST's AnyChar/AnyByte split),
	// it is not a raw byte step: it is the DotAll variant of OpAnyRune,
	// compiled from an AnyChar AST node with the DotAll flag set, or from
	// an AnyByte AST node (which the parser never produces; it exists only
	// for AST completeness, reserved for a possible future \C escape).
	OpAnyByte
	// OpSplit forks into two threads at Left and Right without consuming
	// input. Thread priority is Left-first unless IsQuantifier is true, in
	// which case priority still favors Left but the split is understood to
	// encode a quantifier's greedy/lazy preference rather than alternation
	// order (kept distinct for readability at compile sites, not behavior).
	OpSplit
	// OpJmp is an unconditional epsilon transition to Next.
	OpJmp
	// OpSave records the current input position into capture slot Slot,
	// then goes to Next.
	OpSave
	// OpAssert consumes no input; goes to Next only if Assert holds at the
	// current position.
	OpAssert
	// OpFail never proceeds to any instruction.
	OpFail
)

func (op Op) String() string {
	switch op {
	case OpMatch:
		return "Match"
	case OpRune:
		return "Rune"
	case OpRuneClass:
		return "RuneClass"
	case OpAnyRune:
		return "AnyRune"
	case OpAnyByte:
		return "AnyByte"
	case OpSplit:
		return "Split"
	case OpJmp:
		return "Jmp"
	case OpSave:
		return "Save"
	case OpAssert:
		return "Assert"
	case OpFail:
		return "Fail"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Inst is a single program instruction. Only the fields relevant to Op are
// meaningful, mirroring syntax.Regexp's tagged-union shape.
type Inst struct {
	Op Op

	Lo, Hi rune              // OpRune
	Class  *syntax.CharClass // OpRuneClass
	NotNL  bool              // OpAnyRune: true excludes '\n'

	Next InstID // OpRune, OpRuneClass, OpAnyRune, OpAnyByte, OpJmp, OpSave, OpAssert

	Left, Right  InstID // OpSplit
	IsQuantifier bool   // OpSplit: true when compiled from a quantifier, not alternation

	Slot int // OpSave: capture slot index (2*group for open, 2*group+1 for close)

	Assert syntax.AssertKind // OpAssert
}

// Program is a compiled, linear instruction sequence ready for the pike
// package's simulator. Insts[Start] is the anchored entry point; unanchored
// search is simulated by the PikeVM itself (spawning a fresh thread at
// Start for every input position scanned), rather than compiled into the
// program, so that capture slot 0 always reflects the true match start.
type Program struct {
	Insts []Inst
	Start InstID

	NumCaps  int      // including slot 0 (whole match)
	CapNames []string // len == NumCaps; index 0 is "", named groups carry their name

	Anchored bool // pattern requires matching at input start (e.g. ^ prefix, or Anchored config)
}
