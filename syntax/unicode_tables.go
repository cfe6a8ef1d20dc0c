package syntax

import "unicode"

// perlClass returns the CharClass for one of the Perl shorthand classes
// \d \s \w (and, via negation at the call site, \D \S \W). These are
// defined over ASCII only unless UnicodeGroups is requested, matching
// RE2's default behavior.
func perlClass(letter byte, unicodeMode bool) *CharClass {
	c := NewCharClass()
	switch letter {
	case 'd':
		if unicodeMode {
			c.AddTable(unicode.Nd)
		} else {
			c.AddRange('0', '9')
		}
	case 's':
		if unicodeMode {
			c.AddTable(unicode.White_Space)
		} else {
			c.AddRange('\t', '\n')
			c.AddRange('\f', '\r')
			c.AddRune(' ')
		}
	case 'w':
		if unicodeMode {
			c.AddTable(unicode.L)
			c.AddTable(unicode.Nd)
			c.AddRune('_')
		} else {
			c.AddRange('0', '9')
			c.AddRange('A', 'Z')
			c.AddRange('a', 'z')
			c.AddRune('_')
		}
	}
	return c
}

// posixClasses maps POSIX bracket-expression names ([:alpha:] etc.) to
// builder functions producing their ASCII-range CharClass.
var posixClasses = map[string]func() *CharClass{
	"alnum": func() *CharClass {
		c := NewCharClass()
		c.AddRange('0', '9')
		c.AddRange('A', 'Z')
		c.AddRange('a', 'z')
		return c
	},
	"alpha": func() *CharClass {
		c := NewCharClass()
		c.AddRange('A', 'Z')
		c.AddRange('a', 'z')
		return c
	},
	"ascii": func() *CharClass {
		c := NewCharClass()
		c.AddRange(0x00, 0x7F)
		return c
	},
	"blank": func() *CharClass {
		c := NewCharClass()
		c.AddRune(' ')
		c.AddRune('\t')
		return c
	},
	"cntrl": func() *CharClass {
		c := NewCharClass()
		c.AddRange(0x00, 0x1F)
		c.AddRune(0x7F)
		return c
	},
	"digit": func() *CharClass {
		c := NewCharClass()
		c.AddRange('0', '9')
		return c
	},
	"graph": func() *CharClass {
		c := NewCharClass()
		c.AddRange('!', '~')
		return c
	},
	"lower": func() *CharClass {
		c := NewCharClass()
		c.AddRange('a', 'z')
		return c
	},
	"print": func() *CharClass {
		c := NewCharClass()
		c.AddRange(' ', '~')
		return c
	},
	"punct": func() *CharClass {
		c := NewCharClass()
		c.AddRange('!', '/')
		c.AddRange(':', '@')
		c.AddRange('[', '`')
		c.AddRange('{', '~')
		return c
	},
	"space": func() *CharClass {
		c := NewCharClass()
		c.AddRange('\t', '\r')
		c.AddRune(' ')
		return c
	},
	"upper": func() *CharClass {
		c := NewCharClass()
		c.AddRange('A', 'Z')
		return c
	},
	"word": func() *CharClass {
		c := NewCharClass()
		c.AddRange('0', '9')
		c.AddRange('A', 'Z')
		c.AddRange('a', 'z')
		c.AddRune('_')
		return c
	},
	"xdigit": func() *CharClass {
		c := NewCharClass()
		c.AddRange('0', '9')
		c.AddRange('A', 'F')
		c.AddRange('a', 'f')
		return c
	},
}

// unicodeGeneralCategories maps the one- and two-letter general category
// names accepted by \p{X} to the stdlib unicode.RangeTable. One-letter
// categories (L, M, N, P, S, Z, C) are unions of their two-letter children,
// exactly as unicode.Categories already defines them.
var unicodeGeneralCategories = unicode.Categories

// unicodeScripts maps script names accepted by \p{X} (Latin, Greek, Han,
// Cyrillic, ...) to the stdlib unicode.RangeTable.
var unicodeScripts = unicode.Scripts

// lookupUnicodeClass resolves a \p{name} / \P{name} body to a CharClass,
// trying general categories first and then scripts, matching RE2's own
// resolution order. ok is false for an unrecognized name.
func lookupUnicodeClass(name string) (c *CharClass, ok bool) {
	if t, found := unicodeGeneralCategories[name]; found {
		c = NewCharClass()
		c.AddTable(t)
		return c, true
	}
	if t, found := unicodeScripts[name]; found {
		c = NewCharClass()
		c.AddTable(t)
		return c, true
	}
	return nil, false
}
