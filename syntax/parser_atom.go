package syntax

import "github.com/coregx/re2vm/internal/utf8x"

// parseAtom parses a single atom: a literal rune, '.', an anchor, a group,
// a character class, or an escape sequence.
func (ps *parseState) parseAtom() *Regexp {
	r, w, ok := ps.peekRune()
	if !ok {
		ps.errorAt(ErrInternalError, ps.pos)
	}
	switch r {
	case '(':
		return ps.parseGroup()
	case '[':
		return ps.parseClass()
	case '.':
		ps.pos++
		n := newRegexp(OpAnyChar)
		n.Flags = ps.flags
		return n
	case '^':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		if ps.flags.Has(MultiLine) {
			n.Assert = AssertBeginLine
		} else {
			n.Assert = AssertBeginText
		}
		return n
	case '$':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		if ps.flags.Has(MultiLine) {
			n.Assert = AssertEndLine
		} else {
			n.Assert = AssertEndText
		}
		return n
	case '*', '+', '?':
		ps.errorAt(ErrBadRepeatOp, ps.pos)
		panic("unreachable")
	case ')':
		ps.errorAt(ErrUnexpectedParen, ps.pos)
		panic("unreachable")
	case '\\':
		return ps.parseEscape()
	default:
		ps.pos += w
		return literalNode(r, ps.flags)
	}
}

// ---- groups ----

func (ps *parseState) parseGroup() *Regexp {
	start := ps.pos
	ps.pos++ // consume '('
	ps.depth++
	if ps.depth > ps.maxDepth {
		ps.errorAt(ErrTooDeep, start)
	}
	defer func() { ps.depth-- }()

	capIndex := 0
	name := ""
	savedFlags := ps.flags

	if ps.peekByteIs('?') {
		ps.pos++
		switch {
		case ps.peekByteIs(':'):
			ps.pos++
		case ps.peekByteIs('P') && peekIs(ps.src, ps.pos+1, '<'):
			ps.pos += 2
			name = ps.parseGroupName(start)
			capIndex = ps.ncap
			ps.ncap++
		case ps.peekByteIs('<'):
			ps.pos++
			name = ps.parseGroupName(start)
			capIndex = ps.ncap
			ps.ncap++
		default:
			newFlags := ps.parseFlagsSpec(start)
			switch {
			case ps.peekByteIs(':'):
				ps.pos++
				ps.flags = newFlags
			case ps.peekByteIs(')'):
				ps.pos++
				ps.flags = newFlags
				// Flag-only group: mutates the enclosing scope's ambient
				// flags for the rest of the current group and produces no
				// AST node of its own. Flags are NOT restored on return,
				// since there is no body to scope them to; the enclosing
				// parseGroup call (or top-level Parse) will restore its
				// own savedFlags when *it* closes.
				return newRegexp(OpEmptyMatch)
			default:
				ps.errorAt(ErrMissingParen, start)
			}
		}
	} else {
		capIndex = ps.ncap
		ps.ncap++
	}

	body := ps.parseAlt()

	if !ps.peekByteIs(')') {
		ps.errorAt(ErrMissingParen, start)
	}
	ps.pos++ // consume ')'
	ps.flags = savedFlags

	if capIndex == 0 {
		return body
	}
	n := newRegexp(OpCapture)
	n.Sub = []*Regexp{body}
	n.Cap = capIndex
	n.Name = name
	if name != "" {
		ps.names[name] = capIndex
	}
	return n
}

func peekIs(src string, pos int, b byte) bool {
	return pos < len(src) && src[pos] == b
}

// parseGroupName reads an identifier up to and including the closing '>'
// of (?P<name> / (?<name>.
func (ps *parseState) parseGroupName(groupStart int) string {
	start := ps.pos
	for {
		b, ok := ps.peekByte()
		if !ok {
			ps.errorAt(ErrMissingParen, groupStart)
		}
		if b == '>' {
			break
		}
		if !(isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_') {
			ps.errorAt(ErrBadCharClass, ps.pos)
		}
		ps.pos++
	}
	name := ps.src[start:ps.pos]
	if name == "" {
		ps.errorAt(ErrBadCharClass, groupStart)
	}
	ps.pos++ // consume '>'
	return name
}

// parseFlagsSpec parses the flag-letter sequence in (?flags) / (?flags:
// — e.g. "i", "ims", "i-m", "-s" — and returns the resulting Flags value
// applied on top of the current ambient flags. It does not consume the
// terminating ':' or ')'.
func (ps *parseState) parseFlagsSpec(groupStart int) Flags {
	flags := ps.flags
	negate := false
	sawAny := false
	for {
		b, ok := ps.peekByte()
		if !ok {
			ps.errorAt(ErrMissingParen, groupStart)
		}
		var bit Flags
		switch b {
		case 'i':
			bit = FoldCase
		case 'm':
			bit = MultiLine
		case 's':
			bit = DotNL
		case 'U':
			bit = Ungreedy
		case '-':
			if negate {
				ps.errorAt(ErrUnrecognizedFlag, ps.pos)
			}
			negate = true
			ps.pos++
			continue
		case ':', ')':
			if !sawAny && !negate {
				// "(?)" with no letters at all is not meaningful.
			}
			return flags
		default:
			ps.errorAt(ErrUnrecognizedFlag, ps.pos)
		}
		sawAny = true
		if negate {
			flags &^= bit
		} else {
			flags |= bit
		}
		ps.pos++
	}
}

// ---- escapes (outside character classes) ----

func (ps *parseState) parseEscape() *Regexp {
	escStart := ps.pos
	ps.pos++ // consume '\'
	b, ok := ps.peekByte()
	if !ok {
		ps.errorAt(ErrTrailingBackslash, escStart)
	}

	switch b {
	case 'A':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		n.Assert = AssertBeginText
		return n
	case 'z':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		n.Assert = AssertEndText
		return n
	case 'b':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		n.Assert = AssertWordBoundary
		return n
	case 'B':
		ps.pos++
		n := newRegexp(OpEmptyAssert)
		n.Assert = AssertNoWordBoundary
		return n
	case 'd', 'D', 's', 'S', 'w', 'W':
		ps.pos++
		cls := perlClass(lowerByte(b), ps.flags.Has(UnicodeGroups))
		if isUpper(b) {
			cls = cls.Negate()
		}
		if ps.flags.Has(FoldCase) {
			cls.CaseFold()
		}
		n := newRegexp(OpCharClass)
		n.Class = cls
		return n
	case 'p', 'P':
		return ps.parseUnicodeClassEscape(escStart)
	default:
		r, w, isLit := classEscapeRune(ps.src, ps.pos)
		if !isLit {
			ps.errorAtExpr(ErrBadEscape, escStart, ps.src[escStart:ps.pos+1])
		}
		ps.pos += w
		return literalNode(r, ps.flags)
	}
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func (ps *parseState) parseUnicodeClassEscape(escStart int) *Regexp {
	negated := ps.src[ps.pos] == 'P'
	ps.pos++ // consume 'p'/'P'
	var name string
	if ps.peekByteIs('{') {
		ps.pos++
		start := ps.pos
		for {
			b, ok := ps.peekByte()
			if !ok {
				ps.errorAt(ErrBadCharClass, escStart)
			}
			if b == '}' {
				break
			}
			ps.pos++
		}
		name = ps.src[start:ps.pos]
		ps.pos++ // consume '}'
		if len(name) > 0 && name[0] == '^' {
			negated = !negated
			name = name[1:]
		}
	} else {
		r, w, ok := ps.peekRune()
		if !ok {
			ps.errorAt(ErrBadCharClass, escStart)
		}
		name = string(r)
		ps.pos += w
	}
	cls, ok := lookupUnicodeClass(name)
	if !ok {
		ps.errorAtExpr(ErrBadCharClass, escStart, name)
	}
	cls = cls.Clone()
	if negated {
		cls = cls.Negate()
	}
	if ps.flags.Has(FoldCase) {
		cls.CaseFold()
	}
	n := newRegexp(OpCharClass)
	n.Class = cls
	return n
}

// classEscapeRune resolves a single-character escape (used both outside
// and inside character classes): control-character mnemonics, and
// backslash-escaped metacharacters that stand for themselves.
func classEscapeRune(src string, pos int) (r rune, width int, ok bool) {
	if pos >= len(src) {
		return 0, 0, false
	}
	b := src[pos]
	switch b {
	case 'n':
		return '\n', 1, true
	case 'r':
		return '\r', 1, true
	case 't':
		return '\t', 1, true
	case 'f':
		return '\f', 1, true
	case 'v':
		return '\v', 1, true
	case 'a':
		return '\a', 1, true
	case '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '-':
		return rune(b), 1, true
	default:
		r2, w := utf8x.DecodeAt([]byte(src[pos:]), 0)
		if r2 == utf8x.RuneError && w == 1 {
			return 0, 0, false
		}
		// Any other escaped ASCII letter or digit is a syntax error
		// (ErrBadEscape), not a silent literal — this matches RE2's
		// strictness and is what lets typos like "\q" surface instead of
		// silently meaning "q". Other escaped punctuation and non-ASCII
		// runes stand for themselves.
		if isASCIILetterOrDigit(b) {
			return 0, 0, false
		}
		return r2, w, true
	}
}

func isASCIILetterOrDigit(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
