package literal

import (
	"testing"

	"github.com/coregx/re2vm/syntax"
)

func mustParse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern, 0)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return re
}

func literalStrings(s *Seq) []string {
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = string(s.Get(i).Bytes)
	}
	return out
}

func TestExtractPrefixes(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		pattern string
		want    []string
	}{
		{"hello", []string{"hello"}},
		{"foo|bar", []string{"bar", "foo"}},
		{"foo.*", []string{"foo"}},
		{"(ab)+", []string{"ab"}},
		{"[abc]x", []string{"ax", "bx", "cx"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := mustParse(t, tt.pattern)
			seq := e.ExtractPrefixes(re)
			got := literalStrings(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractPrefixes(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestExtractPrefixes_NoUsablePrefix(t *testing.T) {
	for _, pattern := range []string{".*foo", "a*", "a?"} {
		re := mustParse(t, pattern)
		seq := New(DefaultConfig()).ExtractPrefixes(re)
		if !seq.IsEmpty() {
			t.Errorf("ExtractPrefixes(%q) = %v, want empty", pattern, literalStrings(seq))
		}
	}
}

func TestExtractPrefixes_CompleteFlag(t *testing.T) {
	re := mustParse(t, "foo|bar")
	seq := New(DefaultConfig()).ExtractPrefixes(re)
	if seq.AnyIncomplete() {
		t.Error("an alternation of bare literals should be Complete")
	}

	re = mustParse(t, "foo.*")
	seq = New(DefaultConfig()).ExtractPrefixes(re)
	if !seq.AnyIncomplete() {
		t.Error("foo.* should have an incomplete (prefix-only) literal")
	}
}

func TestExtractPrefixes_FoldCaseSkipsPrefilter(t *testing.T) {
	re := mustParse(t, "(?i)foo")
	seq := New(DefaultConfig()).ExtractPrefixes(re)
	if !seq.IsEmpty() {
		t.Errorf("ExtractPrefixes(%q) = %v, want empty (folded literals must not drive a case-sensitive prefilter)",
			"(?i)foo", literalStrings(seq))
	}
}

func TestExtractPrefixes_FoldCaseInConcatFallsBackToIncomplete(t *testing.T) {
	// "x(?i:foo)" has a concrete, case-sensitive "x" prefix followed by a
	// folded literal: the accumulator already holds "x" when the folded
	// contribution is hit, so the result must be the non-empty-but-
	// incomplete prefix "x", not an empty Seq.
	re := mustParse(t, "x(?i:foo)")
	seq := New(DefaultConfig()).ExtractPrefixes(re)
	if seq.IsEmpty() {
		t.Fatal("expected a non-empty prefix for \"x(?i:foo)\"")
	}
	if !seq.AnyIncomplete() {
		t.Error("prefix before a folded literal must be marked incomplete")
	}
	got := literalStrings(seq)
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("ExtractPrefixes(%q) = %v, want [x]", "x(?i:foo)", got)
	}
}

func TestSeq_Minimize(t *testing.T) {
	s := NewSeq(NewLiteral([]byte("foo"), true), NewLiteral([]byte("foobar"), true))
	s.Minimize()
	if s.Len() != 1 || string(s.Get(0).Bytes) != "foo" {
		t.Errorf("Minimize() = %v, want [foo]", literalStrings(s))
	}
}

func TestSeq_LongestCommonPrefix(t *testing.T) {
	s := NewSeq(NewLiteral([]byte("hello"), true), NewLiteral([]byte("help"), true))
	if got := string(s.LongestCommonPrefix()); got != "hel" {
		t.Errorf("LongestCommonPrefix() = %q, want %q", got, "hel")
	}
}
