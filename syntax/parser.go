package syntax

import (
	"github.com/coregx/re2vm/internal/utf8x"
)

// DefaultMaxDepth bounds parenthesis/quantifier nesting depth, per
// spec.md §4.1's configurable limit (default 1000).
const DefaultMaxDepth = 1000

// DefaultMaxRepeat bounds the {m,n} bounds a Repeat node may carry before
// lowering, per spec.md §3's configured limit (default 1000).
const DefaultMaxRepeat = 1000

// Parser holds the limits applied while parsing; the zero value is not
// valid, use NewParser or Parse.
type Parser struct {
	MaxDepth  int
	MaxRepeat int
}

// NewParser returns a Parser with spec.md's default limits.
func NewParser() *Parser {
	return &Parser{MaxDepth: DefaultMaxDepth, MaxRepeat: DefaultMaxRepeat}
}

// Parse parses pattern under the given ambient Flags (FoldCase, MultiLine,
// DotNL, Ungreedy, UnicodeGroups — Anchored is not a Flags bit, it is a
// compile-time option consumed by the prog package) and returns the AST
// root, or a *Error.
func Parse(pattern string, flags Flags) (*Regexp, error) {
	return NewParser().Parse(pattern, flags)
}

// Parse parses pattern using p's limits.
func (p *Parser) Parse(pattern string, flags Flags) (re *Regexp, err error) {
	ps := &parseState{
		src:       pattern,
		flags:     flags,
		ncap:      1,
		names:     map[string]int{},
		maxDepth:  p.MaxDepth,
		maxRepeat: p.MaxRepeat,
	}
	if ps.maxDepth <= 0 {
		ps.maxDepth = DefaultMaxDepth
	}
	if ps.maxRepeat <= 0 {
		ps.maxRepeat = DefaultMaxRepeat
	}

	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				re, err = nil, perr
				return
			}
			panic(r)
		}
	}()

	root := ps.parseAlt()
	if ps.pos != len(ps.src) {
		// parseAlt/parseConcat stop at an unmatched ')'.
		ps.errorAt(ErrUnexpectedParen, ps.pos)
	}
	return root, nil
}

// NumCaptures returns how many capture groups (including group 0, the
// whole match) a successfully parsed AST needs. NamedCaptures returns the
// name→index table.
func NumCaptures(root *Regexp) int {
	max := 0
	var walk func(*Regexp)
	walk = func(n *Regexp) {
		if n == nil {
			return
		}
		if n.Op == OpCapture && n.Cap > max {
			max = n.Cap
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(root)
	return max + 1
}

// NamedCaptures collects name→index for every named capture in root.
func NamedCaptures(root *Regexp) map[string]int {
	out := map[string]int{}
	var walk func(*Regexp)
	walk = func(n *Regexp) {
		if n == nil {
			return
		}
		if n.Op == OpCapture && n.Name != "" {
			out[n.Name] = n.Cap
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(root)
	return out
}

// parseState is the parser's mutable cursor over the pattern text.
type parseState struct {
	src       string
	pos       int
	flags     Flags
	ncap      int
	names     map[string]int
	depth     int
	maxDepth  int
	maxRepeat int
}

// errorAt panics with a *Error; recovered at the top of Parser.Parse.
func (ps *parseState) errorAt(code ErrorCode, pos int) {
	panic(&Error{Code: code, Pos: pos, Pattern: ps.src})
}

func (ps *parseState) errorAtExpr(code ErrorCode, pos int, expr string) {
	panic(&Error{Code: code, Pos: pos, Pattern: ps.src, Expr: expr})
}

func (ps *parseState) atEOF() bool { return ps.pos >= len(ps.src) }

func (ps *parseState) peekByte() (byte, bool) {
	if ps.atEOF() {
		return 0, false
	}
	return ps.src[ps.pos], true
}

func (ps *parseState) peekByteIs(b byte) bool {
	c, ok := ps.peekByte()
	return ok && c == b
}

func (ps *parseState) peekByteAt(offset int) (byte, bool) {
	i := ps.pos + offset
	if i < 0 || i >= len(ps.src) {
		return 0, false
	}
	return ps.src[i], true
}

// peekRune decodes the rune at the current position without advancing.
func (ps *parseState) peekRune() (rune, int, bool) {
	if ps.atEOF() {
		return 0, 0, false
	}
	r, w := utf8x.DecodeAt([]byte(ps.src[ps.pos:]), 0)
	if r == utf8x.RuneError && w == 1 {
		// Malformed pattern bytes are themselves a syntax error (unlike
		// malformed input text at match time, which is replaced).
		ps.errorAt(ErrBadUTF8, ps.pos)
	}
	return r, w, true
}

func (ps *parseState) atConcatEnd() bool {
	b, ok := ps.peekByte()
	return !ok || b == '|' || b == ')'
}

// ---- top-level precedence: Alt > Concat > Repeat > Atom ----

func (ps *parseState) parseAlt() *Regexp {
	first := ps.parseConcat()
	if !ps.peekByteIs('|') {
		return first
	}
	subs := []*Regexp{first}
	for ps.peekByteIs('|') {
		ps.pos++
		subs = append(subs, ps.parseConcat())
	}
	n := newRegexp(OpAlt)
	n.Sub = subs
	return n
}

func (ps *parseState) parseConcat() *Regexp {
	var subs []*Regexp
	for !ps.atConcatEnd() {
		subs = append(subs, ps.parseRepeat())
	}
	return simplifyConcat(subs)
}

// simplifyConcat merges adjacent Literal nodes and collapses the empty
// concatenation, per spec.md §4.1's parser simplifications.
func simplifyConcat(subs []*Regexp) *Regexp {
	if len(subs) == 0 {
		return newRegexp(OpEmptyMatch)
	}
	merged := make([]*Regexp, 0, len(subs))
	for _, s := range subs {
		if s.Op == OpEmptyMatch {
			continue
		}
		if s.Op == OpLiteral && len(merged) > 0 {
			last := merged[len(merged)-1]
			if last.Op == OpLiteral && last.Flags == s.Flags {
				last.Rune = append(last.Rune, s.Rune...)
				continue
			}
		}
		merged = append(merged, s)
	}
	if len(merged) == 0 {
		return newRegexp(OpEmptyMatch)
	}
	if len(merged) == 1 {
		return merged[0]
	}
	n := newRegexp(OpConcat)
	n.Sub = merged
	return n
}

func literalNode(r rune, flags Flags) *Regexp {
	n := newRegexp(OpLiteral)
	n.Flags = flags
	n.Rune = []rune{r}
	return n
}

// ---- quantifiers ----

func (ps *parseState) parseRepeat() *Regexp {
	start := ps.pos
	result := ps.parseAtom()
	repeated := false
	for {
		b, ok := ps.peekByte()
		if !ok {
			return result
		}
		switch b {
		case '*', '+', '?':
			if repeated {
				ps.errorAt(ErrBadRepeatOp, start)
			}
			ps.pos++
			lazy := ps.consumeLazyMarker()
			result = wrapQuant(b, result, ps.flags, lazy)
			repeated = true
		case '{':
			m, n, width, ok := tryParseBraceRepeat(ps.src, ps.pos)
			if !ok {
				return result
			}
			if repeated {
				ps.errorAt(ErrBadRepeatOp, start)
			}
			if m > ps.maxRepeat || (n >= 0 && n > ps.maxRepeat) {
				ps.errorAt(ErrInvalidRepeatSize, ps.pos)
			}
			if n >= 0 && n < m {
				ps.errorAt(ErrBadRepeatSize, ps.pos)
			}
			ps.pos += width
			lazy := ps.consumeLazyMarker()
			result = lowerRepeat(result, m, n, ps.flags, lazy)
			repeated = true
		default:
			return result
		}
	}
}

func (ps *parseState) consumeLazyMarker() bool {
	if ps.peekByteIs('?') {
		ps.pos++
		return true
	}
	return false
}

func quantFlags(base Flags, lazy bool) Flags {
	if lazy {
		return base | Ungreedy
	}
	return base &^ Ungreedy
}

func wrapQuant(op byte, sub *Regexp, flags Flags, lazy bool) *Regexp {
	var n *Regexp
	switch op {
	case '*':
		n = newRegexp(OpStar)
	case '+':
		n = newRegexp(OpPlus)
	case '?':
		n = newRegexp(OpQuest)
	}
	n.Flags = quantFlags(flags, lazy)
	n.Sub = []*Regexp{sub}
	return n
}

// lowerRepeat expands X{m,n} per spec.md §4.1:
//
//	X{0}     -> EmptyMatch
//	X{1}     -> X
//	X{m,m}   -> m-fold Concat of X
//	X{m,n}   -> X{m} Concat X? repeated (n-m) times   (m < n)
//	X{m,}    -> X{m} Concat X*
//
// The parts go through simplifyConcat, so copies of a literal X merge into
// a single Literal (a{3} -> Literal "aaa").
func lowerRepeat(sub *Regexp, m, n int, flags Flags, lazy bool) *Regexp {
	if m == 0 && n == 0 {
		return newRegexp(OpEmptyMatch)
	}
	var parts []*Regexp
	for i := 0; i < m; i++ {
		parts = append(parts, cloneRegexp(sub))
	}
	switch {
	case n < 0: // X{m,}
		if m == 0 {
			return wrapQuant('*', sub, flags, lazy)
		}
		parts = append(parts, wrapQuant('*', cloneRegexp(sub), flags, lazy))
	case n == m:
		if m == 1 {
			return sub
		}
		if m == 0 {
			return newRegexp(OpEmptyMatch)
		}
	default: // m < n
		for i := m; i < n; i++ {
			parts = append(parts, wrapQuant('?', cloneRegexp(sub), flags, lazy))
		}
	}
	return simplifyConcat(parts)
}

// tryParseBraceRepeat attempts to parse a {m} / {m,} / {m,n} repeat count
// starting at src[pos] (which must be '{'). It does not mutate any parser
// state; ok is false if the brace does not form valid repeat syntax, in
// which case '{' must be treated as a literal character per RE2 semantics.
func tryParseBraceRepeat(src string, pos int) (m, n, width int, ok bool) {
	i := pos + 1
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i == start {
		return 0, 0, 0, false
	}
	m = atoiClamped(src[start:i])
	n = m
	if i < len(src) && src[i] == ',' {
		i++
		nStart := i
		for i < len(src) && isDigit(src[i]) {
			i++
		}
		if i == nStart {
			n = -1 // {m,} unbounded
		} else {
			n = atoiClamped(src[nStart:i])
		}
	}
	if i >= len(src) || src[i] != '}' {
		return 0, 0, 0, false
	}
	i++
	return m, n, i - pos, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// atoiClamped parses an unsigned decimal integer, clamping to a large
// sentinel rather than overflowing, so pathologically long digit runs
// still fail the MaxRepeat check instead of wrapping around.
func atoiClamped(s string) int {
	const limit = 1 << 30
	v := 0
	for i := 0; i < len(s); i++ {
		v = v*10 + int(s[i]-'0')
		if v > limit {
			return limit
		}
	}
	return v
}

func cloneRegexp(n *Regexp) *Regexp {
	if n == nil {
		return nil
	}
	c := &Regexp{
		Op:     n.Op,
		Flags:  n.Flags,
		Min:    n.Min,
		Max:    n.Max,
		Cap:    n.Cap,
		Name:   n.Name,
		Assert: n.Assert,
	}
	if n.Rune != nil {
		c.Rune = append([]rune(nil), n.Rune...)
	}
	if n.Class != nil {
		c.Class = n.Class.Clone()
	}
	if n.Sub != nil {
		c.Sub = make([]*Regexp, len(n.Sub))
		for i, s := range n.Sub {
			c.Sub[i] = cloneRegexp(s)
		}
	}
	return c
}
