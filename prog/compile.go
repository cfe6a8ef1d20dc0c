package prog

import (
	"fmt"

	"github.com/coregx/re2vm/syntax"
)

// CompilerConfig configures compilation, grounded on the teacher's
// nfa.CompilerConfig.
type CompilerConfig struct {
	// Anchored forces the pattern to match only at the start of input.
	Anchored bool

	// MaxRecursionDepth limits recursion during compilation to bound stack
	// growth on adversarial or accidentally deep ASTs.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 1000}
}

// Compiler turns a parsed syntax.Regexp into a Program via Thompson
// construction, grounded on the teacher's nfa.Compiler.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
}

// NewCompiler returns a Compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth <= 0 {
		config.MaxRecursionDepth = 1000
	}
	return &Compiler{config: config}
}

// Compile parses pattern and compiles it into a Program in one step.
func Compile(pattern string, flags syntax.Flags, config CompilerConfig) (*Program, error) {
	root, err := syntax.Parse(pattern, flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return NewCompiler(config).CompileAST(root)
}

// CompileAST compiles an already-parsed AST into a Program.
func (c *Compiler) CompileAST(root *syntax.Regexp) (*Program, error) {
	c.builder = NewBuilder()
	c.depth = 0

	numCaps := syntax.NumCaptures(root)
	capNames := make([]string, numCaps)
	for name, idx := range syntax.NamedCaptures(root) {
		capNames[idx] = name
	}

	bodyStart, bodyEnd, err := c.compileRegexp(root)
	if err != nil {
		return nil, err
	}

	matchID := c.builder.AddMatch()
	saveEnd := c.builder.AddSave(1, matchID)
	if err := c.patchOrBridge(bodyEnd, saveEnd); err != nil {
		return nil, &CompileError{Err: err}
	}

	saveStart := c.builder.AddSave(0, bodyStart)
	c.builder.SetStart(saveStart)

	anchored := c.config.Anchored || isAnchoredAtStart(root)
	return c.builder.Build(numCaps, capNames, anchored)
}

// patchOrBridge patches id -> target, inserting an epsilon bridge if id is
// a Split (which Patch cannot target directly) — mirroring the teacher's
// "if Patch fails, add an epsilon and patch that instead" fallback used
// throughout nfa/compile.go.
func (c *Compiler) patchOrBridge(id, target InstID) error {
	if err := c.builder.Patch(id, target); err == nil {
		return nil
	}
	bridge := c.builder.AddJmp(target)
	return c.builder.Patch(id, bridge)
}

func isAnchoredAtStart(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyAssert:
		return re.Assert == syntax.AssertBeginText
	case syntax.OpConcat:
		return len(re.Sub) > 0 && isAnchoredAtStart(re.Sub[0])
	case syntax.OpCapture:
		return len(re.Sub) > 0 && isAnchoredAtStart(re.Sub[0])
	default:
		return false
	}
}

// compileRegexp recursively compiles an AST node, returning the
// (start, end) instruction IDs of the compiled fragment. end is always an
// instruction whose Next field has not yet been set (or, for a Split
// fragment produced by Alt, an epsilon join that still needs wiring) —
// callers must Patch or patchOrBridge it onward.
func (c *Compiler) compileRegexp(re *syntax.Regexp) (start, end InstID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidInst, InvalidInst, &CompileError{Err: fmt.Errorf("expression too deeply nested")}
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpNoMatch:
		id := c.builder.AddFail()
		return id, id, nil
	case syntax.OpEmptyMatch:
		id := c.builder.AddJmp(InvalidInst)
		return id, id, nil
	case syntax.OpLiteral:
		return c.compileLiteral(re)
	case syntax.OpCharClass:
		id := c.builder.AddRuneClass(re.Class, InvalidInst)
		return id, id, nil
	case syntax.OpAnyChar:
		var id InstID
		if re.Flags.Has(syntax.DotNL) {
			id = c.builder.AddAnyByte(InvalidInst) // DotAll: '\n' included
		} else {
			id = c.builder.AddAnyRune(true, InvalidInst)
		}
		return id, id, nil
	case syntax.OpAnyByte:
		// The parser never produces this node (no \C escape is accepted);
		// kept for AST completeness. It has no raw-byte instruction to map
		// to, so it compiles the same as a DotAll AnyChar.
		id := c.builder.AddAnyByte(InvalidInst)
		return id, id, nil
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlt:
		return c.compileAlt(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Greedy())
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Greedy())
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Greedy())
	case syntax.OpCapture:
		return c.compileCapture(re)
	case syntax.OpEmptyAssert:
		id := c.builder.AddAssert(re.Assert, InvalidInst)
		return id, id, nil
	default:
		return InvalidInst, InvalidInst, &CompileError{Err: fmt.Errorf("unsupported AST op: %v", re.Op)}
	}
}

// compileLiteral chains one Rune/RuneClass instruction per rune. A
// case-folded literal rune compiles to a RuneClass holding its fold orbit
// instead of a single Rune instruction.
func (c *Compiler) compileLiteral(re *syntax.Regexp) (start, end InstID, err error) {
	if len(re.Rune) == 0 {
		id := c.builder.AddJmp(InvalidInst)
		return id, id, nil
	}
	var first, prev InstID = InvalidInst, InvalidInst
	for _, r := range re.Rune {
		var id InstID
		if re.Flags.Has(syntax.FoldCase) {
			cls := syntax.NewCharClass()
			cls.AddRune(r)
			cls.CaseFold()
			id = c.builder.AddRuneClass(cls, InvalidInst)
		} else {
			id = c.builder.AddRune(r, r, InvalidInst)
		}
		if first == InvalidInst {
			first = id
		}
		if prev != InvalidInst {
			if err := c.patchOrBridge(prev, id); err != nil {
				return InvalidInst, InvalidInst, &CompileError{Err: err}
			}
		}
		prev = id
	}
	return first, prev, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end InstID, err error) {
	if len(subs) == 0 {
		id := c.builder.AddJmp(InvalidInst)
		return id, id, nil
	}
	start, end, err = c.compileRegexp(subs[0])
	if err != nil {
		return InvalidInst, InvalidInst, err
	}
	for _, sub := range subs[1:] {
		nextStart, nextEnd, err := c.compileRegexp(sub)
		if err != nil {
			return InvalidInst, InvalidInst, err
		}
		if err := c.patchOrBridge(end, nextStart); err != nil {
			return InvalidInst, InvalidInst, &CompileError{Err: err}
		}
		end = nextEnd
	}
	return start, end, nil
}

func (c *Compiler) compileAlt(subs []*syntax.Regexp) (start, end InstID, err error) {
	if len(subs) == 1 {
		return c.compileRegexp(subs[0])
	}
	starts := make([]InstID, 0, len(subs))
	ends := make([]InstID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compileRegexp(sub)
		if err != nil {
			return InvalidInst, InvalidInst, err
		}
		starts = append(starts, s)
		ends = append(ends, e)
	}
	join := c.builder.AddJmp(InvalidInst)
	for _, e := range ends {
		if err := c.patchOrBridge(e, join); err != nil {
			return InvalidInst, InvalidInst, &CompileError{Err: err}
		}
	}
	return c.buildSplitChain(starts), join, nil
}

// buildSplitChain builds a right-nested chain of Split instructions,
// Split(targets[0], Split(targets[1], ...)), giving targets[0] highest
// priority, matching Alt's leftmost-first preference.
func (c *Compiler) buildSplitChain(targets []InstID) InstID {
	if len(targets) == 1 {
		return targets[0]
	}
	right := c.buildSplitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

func (c *Compiler) compileStar(sub *syntax.Regexp, greedy bool) (start, end InstID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidInst, InvalidInst, err
	}
	exit := c.builder.AddJmp(InvalidInst)
	var split InstID
	if greedy {
		split = c.builder.AddQuantifierSplit(subStart, exit)
	} else {
		split = c.builder.AddQuantifierSplit(exit, subStart)
	}
	if err := c.patchOrBridge(subEnd, split); err != nil {
		return InvalidInst, InvalidInst, &CompileError{Err: err}
	}
	return split, exit, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp, greedy bool) (start, end InstID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidInst, InvalidInst, err
	}
	exit := c.builder.AddJmp(InvalidInst)
	var split InstID
	if greedy {
		split = c.builder.AddQuantifierSplit(subStart, exit)
	} else {
		split = c.builder.AddQuantifierSplit(exit, subStart)
	}
	if err := c.patchOrBridge(subEnd, split); err != nil {
		return InvalidInst, InvalidInst, &CompileError{Err: err}
	}
	return subStart, exit, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp, greedy bool) (start, end InstID, err error) {
	subStart, subEnd, err := c.compileRegexp(sub)
	if err != nil {
		return InvalidInst, InvalidInst, err
	}
	exit := c.builder.AddJmp(InvalidInst)
	if err := c.patchOrBridge(subEnd, exit); err != nil {
		return InvalidInst, InvalidInst, &CompileError{Err: err}
	}
	var split InstID
	if greedy {
		split = c.builder.AddQuantifierSplit(subStart, exit)
	} else {
		split = c.builder.AddQuantifierSplit(exit, subStart)
	}
	return split, exit, nil
}

func (c *Compiler) compileCapture(re *syntax.Regexp) (start, end InstID, err error) {
	bodyStart, bodyEnd, err := c.compileRegexp(re.Sub[0])
	if err != nil {
		return InvalidInst, InvalidInst, err
	}
	open := c.builder.AddSave(2*re.Cap, bodyStart)
	closeInst := c.builder.AddSave(2*re.Cap+1, InvalidInst)
	if err := c.patchOrBridge(bodyEnd, closeInst); err != nil {
		return InvalidInst, InvalidInst, &CompileError{Err: err}
	}
	return open, closeInst, nil
}
