// Package syntax parses RE2-subset regular expression patterns into an
// abstract syntax tree and provides the character-class engine the parser
// and compiler share.
//
// The grammar, simplifications, and error taxonomy implemented here follow
// the RE2 dialect: no backreferences, no lookaround, Unicode character
// classes resolved against the stdlib unicode tables.
package syntax

import "fmt"

// Op identifies the kind of an AST node.
type Op uint8

const (
	// OpNoMatch never matches any input. Produced when a character class
	// normalizes to the empty set.
	OpNoMatch Op = iota
	// OpEmptyMatch matches the empty string at any position.
	OpEmptyMatch
	// OpLiteral matches the exact rune sequence in Regexp.Rune.
	OpLiteral
	// OpCharClass matches a single rune against Regexp.Class.
	OpCharClass
	// OpAnyChar matches any rune except '\n', unless DotNL is set on the node.
	OpAnyChar
	// OpAnyByte matches any rune, '\n' included unconditionally. Not
	// produced by the parser (no \C escape is accepted); reserved for a
	// future raw-byte escape and kept so the op set stays data-model
	// complete.
	OpAnyByte
	// OpConcat matches each of Sub in sequence.
	OpConcat
	// OpAlt matches any one of Sub, preferring earlier alternatives.
	OpAlt
	// OpStar matches Sub[0] zero or more times (greedy unless Ungreedy).
	OpStar
	// OpPlus matches Sub[0] one or more times (greedy unless Ungreedy).
	OpPlus
	// OpQuest matches Sub[0] zero or one times (greedy unless Ungreedy).
	OpQuest
	// OpRepeat matches Sub[0] between Min and Max times (Max == -1: unbounded).
	// OpRepeat nodes are lowered to Concat/Star/Quest during parsing and
	// never reach the compiler; the Op is retained for §3's data model.
	OpRepeat
	// OpCapture records the span matched by Sub[0] into capture group Cap.
	OpCapture
	// OpEmptyAssert matches the empty string only when Assert holds at the
	// current position.
	OpEmptyAssert
)

func (op Op) String() string {
	switch op {
	case OpNoMatch:
		return "NoMatch"
	case OpEmptyMatch:
		return "EmptyMatch"
	case OpLiteral:
		return "Literal"
	case OpCharClass:
		return "CharClass"
	case OpAnyChar:
		return "AnyChar"
	case OpAnyByte:
		return "AnyByte"
	case OpConcat:
		return "Concat"
	case OpAlt:
		return "Alt"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuest:
		return "Quest"
	case OpRepeat:
		return "Repeat"
	case OpCapture:
		return "Capture"
	case OpEmptyAssert:
		return "EmptyAssert"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// AssertKind identifies a zero-width assertion predicate.
type AssertKind uint8

const (
	AssertBeginText AssertKind = iota
	AssertEndText
	AssertBeginLine
	AssertEndLine
	AssertWordBoundary
	AssertNoWordBoundary
)

func (a AssertKind) String() string {
	switch a {
	case AssertBeginText:
		return "BeginText"
	case AssertEndText:
		return "EndText"
	case AssertBeginLine:
		return "BeginLine"
	case AssertEndLine:
		return "EndLine"
	case AssertWordBoundary:
		return "WordBoundary"
	case AssertNoWordBoundary:
		return "NoWordBoundary"
	default:
		return "Assert(?)"
	}
}

// Flags is a bitset of per-node compile flags. Flags propagate top-down
// from the parser's ambient flag state into the leaves that need them
// (Literal case-folding, AnyChar's DotNL behavior, EmptyAssert's MultiLine
// behavior); composite nodes do not themselves consult Flags.
type Flags uint16

const (
	FoldCase Flags = 1 << iota
	MultiLine
	DotNL
	Ungreedy
	UnicodeGroups
	NonCapturing
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Regexp is an AST node. Only the fields relevant to Op are meaningful;
// see the Op constant docs above for which fields each op reads.
type Regexp struct {
	Op    Op
	Flags Flags

	Sub []*Regexp // Concat, Alt, Star, Plus, Quest, Repeat, Capture

	Rune []rune // OpLiteral: non-empty rune sequence

	Class *CharClass // OpCharClass: resolved, sorted, non-overlapping ranges

	Min, Max int // OpRepeat: Max == -1 means unbounded

	Cap  int    // OpCapture: 1-based capture index (0 reserved for whole match)
	Name string // OpCapture: group name, "" if unnamed

	Assert AssertKind // OpEmptyAssert
}

// Greedy reports whether a Star/Plus/Quest/Repeat node prefers to match as
// much as possible. Encoded as the node's Ungreedy flag being clear.
func (r *Regexp) Greedy() bool { return !r.Flags.Has(Ungreedy) }

func newRegexp(op Op) *Regexp { return &Regexp{Op: op} }
