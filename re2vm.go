// Package re2vm is a linear-time, RE2-dialect regular expression engine.
//
// re2vm compiles a pattern once into a program the pike package's PikeVM
// executes with leftmost-first (Perl-style) semantics and a guaranteed
// O(pattern_size * input_size) worst case — no backreferences, no
// lookaround, so no catastrophic backtracking. Literal prefixes are
// extracted and prefiltered ahead of the simulator where the pattern
// allows it (the literal and prefilter packages).
//
// The public surface mirrors stdlib regexp where the semantics coincide:
//
//	re, err := re2vm.Compile(`\w+@\w+\.\w+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("user@example.com") {
//	    fmt.Println(re.FindString("contact: user@example.com"))
//	}
package re2vm

import "github.com/coregx/re2vm/meta"

// Regexp is a compiled regular expression, safe for concurrent use by
// multiple goroutines (the underlying meta.Engine pools its mutable
// per-search state).
type Regexp struct {
	engine  *meta.Engine
	pattern string
}

// Compile parses and compiles pattern with the default Config.
func Compile(pattern string) (*Regexp, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile is like Compile but panics if pattern cannot be compiled.
// Intended for patterns fixed at init time.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(`re2vm: Compile(` + pattern + `): ` + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with an explicit meta.Config.
func CompileWithConfig(pattern string, config meta.Config) (*Regexp, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regexp{engine: engine, pattern: pattern}, nil
}

// MustCompileWithConfig is like CompileWithConfig but panics on error.
func MustCompileWithConfig(pattern string, config meta.Config) *Regexp {
	re, err := CompileWithConfig(pattern, config)
	if err != nil {
		panic(`re2vm: CompileWithConfig(` + pattern + `): ` + err.Error())
	}
	return re
}

// DefaultConfig returns the Config Compile uses.
func DefaultConfig() meta.Config { return meta.DefaultConfig() }

// String returns the source text re was compiled from.
func (re *Regexp) String() string { return re.pattern }

// NumSubexp returns the number of parenthesized subexpressions, not
// counting group 0 (the entire match).
func (re *Regexp) NumSubexp() int { return re.engine.NumCaptures() - 1 }

// SubexpNames returns the names of the capture groups; index 0 is always
// "". An unnamed group's entry is also "".
func (re *Regexp) SubexpNames() []string { return re.engine.SubexpNames() }

// SubexpIndex returns the index of the first subexpression named name, or
// -1 if there is none such.
func (re *Regexp) SubexpIndex(name string) int {
	for i, n := range re.engine.SubexpNames() {
		if n == name {
			return i
		}
	}
	return -1
}

// Match reports whether b contains any match of re.
func (re *Regexp) Match(b []byte) bool { return re.engine.IsMatch(b) }

// MatchString reports whether s contains any match of re.
func (re *Regexp) MatchString(s string) bool { return re.engine.IsMatch([]byte(s)) }

// Find returns the leftmost match in b, or nil.
func (re *Regexp) Find(b []byte) []byte {
	m := re.engine.Find(b)
	if m == nil {
		return nil
	}
	return m.Bytes()
}

// FindString returns the leftmost match in s, or "".
func (re *Regexp) FindString(s string) string {
	m := re.engine.Find([]byte(s))
	if m == nil {
		return ""
	}
	return m.String()
}

// FindIndex returns the (start, end) span of the leftmost match in b, or
// nil.
func (re *Regexp) FindIndex(b []byte) []int {
	m := re.engine.Find(b)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringIndex is FindIndex for strings.
func (re *Regexp) FindStringIndex(s string) []int {
	return re.FindIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups.
// Result[0] is the whole match; result[i] is group i. An unmatched
// optional group is nil.
func (re *Regexp) FindSubmatch(b []byte) [][]byte {
	m := re.engine.FindSubmatch(b)
	if m == nil {
		return nil
	}
	return groupBytes(m)
}

// FindStringSubmatch is FindSubmatch for strings.
func (re *Regexp) FindStringSubmatch(s string) []string {
	m := re.engine.FindSubmatch([]byte(s))
	if m == nil {
		return nil
	}
	return groupStrings(m)
}

// FindSubmatchIndex returns the flattened [start0, end0, start1, end1,
// ...] span of the leftmost match and its capture groups, or nil.
// Unmatched groups carry (-1, -1).
func (re *Regexp) FindSubmatchIndex(b []byte) []int {
	m := re.engine.FindSubmatch(b)
	if m == nil {
		return nil
	}
	return m.FlatIndices()
}

// FindStringSubmatchIndex is FindSubmatchIndex for strings.
func (re *Regexp) FindStringSubmatchIndex(s string) []int {
	return re.FindSubmatchIndex([]byte(s))
}

func groupBytes(m *meta.MatchWithCaptures) [][]byte {
	out := make([][]byte, m.NumGroups())
	for i := range out {
		out[i] = m.Group(i)
	}
	return out
}

func groupStrings(m *meta.MatchWithCaptures) []string {
	out := make([]string, m.NumGroups())
	for i := range out {
		if g := m.Group(i); g != nil {
			out[i] = string(g)
		}
	}
	return out
}
