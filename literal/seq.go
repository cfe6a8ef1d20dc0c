// Package literal extracts literal byte strings from a syntax.Regexp so a
// prefilter can skip ahead to candidate positions before the pike package's
// PikeVM is invoked. Grounded on the teacher's literal package, reduced to
// prefix extraction (the case re2vm's meta engine actually needs).
package literal

import (
	"bytes"
	"sort"
)

// Literal is one concrete byte string a match may start with. Complete is
// true when the literal alone is the whole pattern (so a literal match is a
// full match, not just a prefix to confirm with the simulator).
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral constructs a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

func (l Literal) Len() int { return len(l.Bytes) }

// Seq is a set of alternative literals — e.g. the extraction from `foo|bar`
// is the two-literal Seq {"foo", "bar"}. A nil or empty Seq means no useful
// literal could be extracted (the pattern must fall back to the PikeVM
// directly).
type Seq struct {
	literals []Literal
}

// NewSeq builds a Seq from the given literals.
func NewSeq(lits ...Literal) *Seq { return &Seq{literals: lits} }

func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

func (s *Seq) Get(i int) Literal { return s.literals[i] }

func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// AnyIncomplete reports whether any literal is a prefix rather than a full
// match, meaning the PikeVM must still confirm and locate the real match
// after the prefilter's candidate position.
func (s *Seq) AnyIncomplete() bool {
	for _, l := range s.literals {
		if !l.Complete {
			return true
		}
	}
	return false
}

// Minimize drops literals that are redundant because a shorter literal in
// the set is already a prefix of them — any haystack containing the longer
// literal also contains the shorter one, so the shorter one is sufficient
// for prefilter purposes.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.Slice(s.literals, func(i, j int) bool { return len(s.literals[i].Bytes) < len(s.literals[j].Bytes) })
	kept := s.literals[:0]
	for _, l := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(l.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, l)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the byte prefix shared by every literal in
// the set, or nil if the set is empty or shares no prefix.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		prefix = commonPrefix(prefix, l.Bytes)
		if len(prefix) == 0 {
			return nil
		}
	}
	return prefix
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
