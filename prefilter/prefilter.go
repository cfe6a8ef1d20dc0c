// Package prefilter turns an extracted literal.Seq into a fast
// candidate-position scanner that runs ahead of the pike package's PikeVM.
// Grounded on the teacher's prefilter package: single literal -> SIMD
// substring search (simd.Memmem/Memchr); many literals -> an Aho-Corasick
// automaton, the "future" item the teacher's own doc comment flags as not
// yet built ("Many literals -> AhoCorasickPrefilter (automaton, future)").
package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/re2vm/literal"
	"github.com/coregx/re2vm/simd"
)

// Prefilter finds candidate match-start positions cheaply; the caller must
// still confirm (and locate the true span) with the PikeVM unless
// IsComplete reports the prefilter's own match is already exact.
type Prefilter interface {
	// Find returns the offset of the first candidate at or after start, or
	// -1 if none remains.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a Find hit is itself a full match (true
	// only when the whole pattern reduced to a literal alternation).
	IsComplete() bool

	// LiteralLen returns the matched literal's length when IsComplete is
	// true; 0 otherwise.
	LiteralLen() int
}

// Build selects a Prefilter for seq, or (nil, false) if seq carries nothing
// worth prefiltering on (empty, or its only literal is the empty string).
func Build(seq *literal.Seq) (Prefilter, bool) {
	if seq.IsEmpty() {
		return nil, false
	}
	n := seq.Len()
	for i := 0; i < n; i++ {
		if seq.Get(i).Len() == 0 {
			return nil, false
		}
	}
	complete := !seq.AnyIncomplete()

	if n == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return &memchrPrefilter{b: lit.Bytes[0], complete: complete}, true
		}
		return &memmemPrefilter{needle: lit.Bytes, complete: complete}, true
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < n; i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		// Fall back to the first (shortest, after Minimize) literal alone
		// rather than giving up prefiltering entirely.
		lit := seq.Get(0)
		return &memmemPrefilter{needle: lit.Bytes, complete: false}, true
	}
	return &acPrefilter{auto: auto, complete: complete}, true
}

type memchrPrefilter struct {
	b        byte
	complete bool
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	rel := simd.Memchr(haystack[start:], p.b)
	if rel < 0 {
		return -1
	}
	return start + rel
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		if len(p.needle) == 0 && start == len(haystack) {
			return start
		}
		return -1
	}
	rel := simd.Memmem(haystack[start:], p.needle)
	if rel < 0 {
		return -1
	}
	return start + rel
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// acPrefilter wraps an Aho-Corasick automaton for alternations with more
// literals than a single substring search can usefully try one at a time.
type acPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	lastLen  int
}

func (p *acPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	p.lastLen = m.End - m.Start
	return m.Start
}

func (p *acPrefilter) IsComplete() bool { return p.complete }
func (p *acPrefilter) LiteralLen() int {
	if p.complete {
		return p.lastLen
	}
	return 0
}
