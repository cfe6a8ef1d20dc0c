package syntax

// parseClass parses a bracket expression: [...], [^...], with POSIX
// [:name:] classes, ranges, and escapes. ps.pos is positioned at the
// leading '[' on entry.
func (ps *parseState) parseClass() *Regexp {
	start := ps.pos
	ps.pos++ // consume '['

	negated := false
	if ps.peekByteIs('^') {
		negated = true
		ps.pos++
	}

	cls := NewCharClass()
	first := true
	for {
		b, ok := ps.peekByte()
		if !ok {
			ps.errorAt(ErrMissingBracket, start)
		}
		if b == ']' && !first {
			ps.pos++
			break
		}
		first = false

		if b == '[' && ps.peekByteAtIs(1, ':') {
			if sub, consumed := ps.tryParsePosixClass(start); consumed {
				cls.AddClass(sub)
				continue
			}
		}

		lo, loIsClass, loClass := ps.parseClassItem(start)
		if loIsClass {
			cls.AddClass(loClass)
			continue
		}

		// Possible range: lo '-' hi, where hi is not ']'.
		if ps.peekByteIs('-') && !ps.peekByteAtIs(1, ']') {
			savedPos := ps.pos
			ps.pos++ // consume '-'
			if _, ok := ps.peekByte(); !ok {
				ps.errorAt(ErrMissingBracket, start)
			}
			hi, hiIsClass, _ := ps.parseClassItem(start)
			if hiIsClass {
				ps.errorAt(ErrInvalidCharRange, savedPos)
			}
			if hi < lo {
				ps.errorAt(ErrInvalidCharRange, savedPos)
			}
			cls.AddRange(lo, hi)
			continue
		}

		cls.AddRune(lo)
	}

	if ps.flags.Has(FoldCase) {
		cls.CaseFold()
	}
	if negated {
		cls = cls.Negate()
	}

	n := newRegexp(OpCharClass)
	n.Class = cls
	if cls.Empty() {
		return newRegexp(OpNoMatch)
	}
	return n
}

func (ps *parseState) peekByteAtIs(offset int, b byte) bool {
	c, ok := ps.peekByteAt(offset)
	return ok && c == b
}

// parseClassItem parses one element inside a bracket expression: either a
// literal rune (possibly via escape) or, for \d \s \w \p{...} etc., a
// nested CharClass to be unioned in directly.
func (ps *parseState) parseClassItem(classStart int) (r rune, isClass bool, cls *CharClass) {
	b, ok := ps.peekByte()
	if !ok {
		ps.errorAt(ErrMissingBracket, classStart)
	}
	if b != '\\' {
		rr, w, decOk := ps.peekRune()
		if !decOk {
			ps.errorAt(ErrBadUTF8, ps.pos)
		}
		ps.pos += w
		return rr, false, nil
	}

	// Escape inside a class.
	escStart := ps.pos
	ps.pos++ // consume '\'
	eb, eok := ps.peekByte()
	if !eok {
		ps.errorAt(ErrTrailingBackslash, escStart)
	}
	switch eb {
	case 'd', 'D', 's', 'S', 'w', 'W':
		ps.pos++
		c := perlClass(lowerByte(eb), ps.flags.Has(UnicodeGroups))
		if isUpper(eb) {
			c = c.Negate()
		}
		return 0, true, c
	case 'p', 'P':
		node := ps.parseUnicodeClassEscape(escStart)
		if node.Op == OpCharClass {
			return 0, true, node.Class
		}
		return 0, true, NewCharClass()
	default:
		rr, w, isLit := classEscapeRune(ps.src, ps.pos)
		if !isLit {
			ps.errorAtExpr(ErrBadEscape, escStart, ps.src[escStart:ps.pos+1])
		}
		ps.pos += w
		return rr, false, nil
	}
}

// tryParsePosixClass attempts to consume a [:name:] or [:^name:] POSIX
// class starting at the current '['. consumed is false (with ps.pos
// unchanged) if what follows isn't valid POSIX class syntax, so the
// leading '[' can fall through to ordinary literal-rune handling.
func (ps *parseState) tryParsePosixClass(classStart int) (cls *CharClass, consumed bool) {
	savedPos := ps.pos
	ps.pos += 2 // consume "[:"
	negate := false
	if ps.peekByteIs('^') {
		negate = true
		ps.pos++
	}
	nameStart := ps.pos
	for {
		b, ok := ps.peekByte()
		if !ok || !(b >= 'a' && b <= 'z') {
			break
		}
		ps.pos++
	}
	name := ps.src[nameStart:ps.pos]
	if name == "" || !ps.peekByteIs(':') || !ps.peekByteAtIs(1, ']') {
		ps.pos = savedPos
		return nil, false
	}
	ps.pos += 2 // consume ":]"

	builder, ok := posixClasses[name]
	if !ok {
		ps.errorAtExpr(ErrBadCharClass, savedPos, name)
	}
	c := builder()
	if negate {
		c = c.Negate()
	}
	return c, true
}
