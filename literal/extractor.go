package literal

import (
	"github.com/coregx/re2vm/internal/utf8x"
	"github.com/coregx/re2vm/syntax"
)

// ExtractorConfig bounds how much work (and how many alternative literals)
// extraction is allowed to produce before it gives up and lets the pike
// package's PikeVM run unfiltered.
type ExtractorConfig struct {
	MaxLiterals   int // cap on cross-product / alternation fan-out
	MaxLiteralLen int // cap on a single literal's byte length
	MaxClassRunes int // a CharClass wider than this contributes no literal
}

// DefaultConfig mirrors the teacher's extractor defaults in spirit: small
// enough to keep extraction itself linear, generous enough to catch the
// common cases (literal prefixes, small alternations, short classes).
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{MaxLiterals: 32, MaxLiteralLen: 64, MaxClassRunes: 4}
}

// Extractor walks a syntax.Regexp to find the set of literal byte strings
// every match of the pattern must begin with, grounded on the teacher's
// literal.Extractor (reduced to prefix extraction, the only mode the meta
// engine's prefilter needs).
type Extractor struct {
	config ExtractorConfig
}

// New returns an Extractor with the given config.
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = 32
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = 64
	}
	if config.MaxClassRunes <= 0 {
		config.MaxClassRunes = 4
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns the set of literal byte strings every match of re
// must start with. An empty Seq means no useful prefix could be extracted
// (re starts with something unbounded: ".*", a wide class, an empty
// alternative branch, ...).
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	seq := e.extract(re)
	seq.Minimize()
	return seq
}

// extract returns the literal alternatives contributed by re alone (not
// accounting for what follows it in an enclosing Concat).
func (e *Extractor) extract(re *syntax.Regexp) *Seq {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpEmptyAssert:
		return NewSeq(NewLiteral(nil, true))
	case syntax.OpLiteral:
		return e.extractLiteral(re)
	case syntax.OpCharClass:
		return e.extractClass(re)
	case syntax.OpConcat:
		return e.extractConcat(re.Sub)
	case syntax.OpAlt:
		return e.extractAlt(re.Sub)
	case syntax.OpCapture:
		return e.extract(re.Sub[0])
	case syntax.OpPlus:
		sub := e.extract(re.Sub[0])
		return markIncomplete(sub)
	default:
		// OpNoMatch, OpAnyChar, OpAnyByte, OpStar, OpQuest, OpRepeat: none of
		// these guarantee a fixed byte prefix (Star/Quest allow zero
		// occurrences; OpRepeat never reaches here, it is always lowered
		// before compilation).
		return NewSeq()
	}
}

func (e *Extractor) extractLiteral(re *syntax.Regexp) *Seq {
	if re.Flags.Has(syntax.FoldCase) {
		// A folded literal's runes were never case-normalized by the
		// parser (prog.compileLiteral folds them later, at compile time,
		// into a RuneClass covering the fold orbit). Encoding re.Rune
		// verbatim here would hand the prefilter an exact-case byte
		// string and silently miss every differently-cased match, so
		// skip prefiltering for this literal rather than risk a false
		// negative.
		return NewSeq()
	}
	var buf []byte
	for _, r := range re.Rune {
		buf = utf8x.EncodeRune(buf, r)
	}
	if len(buf) > e.config.MaxLiteralLen {
		return NewSeq()
	}
	return NewSeq(NewLiteral(buf, true))
}

func (e *Extractor) extractClass(re *syntax.Regexp) *Seq {
	cls := re.Class
	n := len(cls.Ranges) / 2
	total := 0
	for i := 0; i < n; i++ {
		total += int(cls.Ranges[2*i+1]-cls.Ranges[2*i]) + 1
	}
	if total == 0 || total > e.config.MaxClassRunes {
		return NewSeq()
	}
	lits := make([]Literal, 0, total)
	for i := 0; i < n; i++ {
		for r := cls.Ranges[2*i]; r <= cls.Ranges[2*i+1]; r++ {
			lits = append(lits, NewLiteral(utf8x.EncodeRune(nil, r), true))
		}
	}
	return NewSeq(lits...)
}

func (e *Extractor) extractConcat(subs []*syntax.Regexp) *Seq {
	acc := NewSeq(NewLiteral(nil, true))
	for _, sub := range subs {
		contrib := e.extract(sub)
		if contrib.IsEmpty() {
			if acc.Len() == 1 && acc.literals[0].Len() == 0 {
				// Nothing concrete accumulated yet (e.g. a leading ".*"): there
				// is no prefix at all, not an empty-string one.
				return NewSeq()
			}
			return markIncomplete(acc)
		}
		acc = crossProduct(acc, contrib)
		if acc.Len() > e.config.MaxLiterals || e.exceedsLen(acc) {
			return markIncomplete(acc)
		}
		if !contrib.allComplete() {
			// contrib itself can't be extended past (e.g. a Plus body);
			// nothing after it in the concat can be folded in either.
			return markIncomplete(acc)
		}
	}
	return acc
}

func (e *Extractor) extractAlt(subs []*syntax.Regexp) *Seq {
	var lits []Literal
	for _, sub := range subs {
		contrib := e.extract(sub)
		if contrib.IsEmpty() {
			return NewSeq()
		}
		lits = append(lits, contrib.literals...)
		if len(lits) > e.config.MaxLiterals {
			return NewSeq()
		}
	}
	return NewSeq(lits...)
}

func (e *Extractor) exceedsLen(s *Seq) bool {
	for _, l := range s.literals {
		if l.Len() > e.config.MaxLiteralLen {
			return true
		}
	}
	return false
}

func crossProduct(a, b *Seq) *Seq {
	out := make([]Literal, 0, a.Len()*b.Len())
	for _, la := range a.literals {
		for _, lb := range b.literals {
			joined := make([]byte, 0, len(la.Bytes)+len(lb.Bytes))
			joined = append(joined, la.Bytes...)
			joined = append(joined, lb.Bytes...)
			out = append(out, NewLiteral(joined, la.Complete && lb.Complete))
		}
	}
	return NewSeq(out...)
}

func (s *Seq) allComplete() bool {
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

func markIncomplete(s *Seq) *Seq {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
	return s
}
