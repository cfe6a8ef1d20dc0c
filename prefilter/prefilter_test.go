package prefilter

import (
	"testing"

	"github.com/coregx/re2vm/literal"
)

func TestBuild_Empty(t *testing.T) {
	if _, ok := Build(literal.NewSeq()); ok {
		t.Fatal("Build(empty seq) should report false")
	}
}

func TestBuild_ZeroLengthLiteralRejected(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral(nil, true))
	if _, ok := Build(seq); ok {
		t.Fatal("Build(seq containing an empty literal) should report false")
	}
}

func TestMemchrPrefilter(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("x"), true))
	pf, ok := Build(seq)
	if !ok {
		t.Fatal("Build should succeed for a single-byte literal")
	}
	if !pf.IsComplete() || pf.LiteralLen() != 1 {
		t.Fatalf("IsComplete/LiteralLen = %v/%d, want true/1", pf.IsComplete(), pf.LiteralLen())
	}

	haystack := []byte("abcxdef")
	if got := pf.Find(haystack, 0); got != 3 {
		t.Fatalf("Find(0) = %d, want 3", got)
	}
	if got := pf.Find(haystack, 4); got != -1 {
		t.Fatalf("Find(4) = %d, want -1", got)
	}
	if got := pf.Find(haystack, len(haystack)); got != -1 {
		t.Fatalf("Find(at end) = %d, want -1", got)
	}
}

func TestMemmemPrefilter(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("foo"), false))
	pf, ok := Build(seq)
	if !ok {
		t.Fatal("Build should succeed for a multi-byte literal")
	}
	if pf.IsComplete() {
		t.Fatal("incomplete literal should report IsComplete() == false")
	}
	if pf.LiteralLen() != 0 {
		t.Fatalf("LiteralLen() = %d, want 0 for an incomplete prefilter", pf.LiteralLen())
	}

	haystack := []byte("barfoobaz")
	if got := pf.Find(haystack, 0); got != 3 {
		t.Fatalf("Find(0) = %d, want 3", got)
	}
	if got := pf.Find(haystack, 4); got != -1 {
		t.Fatalf("Find(4) = %d, want -1", got)
	}
}

func TestAhoCorasickPrefilter(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("cat"), true),
		literal.NewLiteral([]byte("dog"), true),
		literal.NewLiteral([]byte("bird"), true),
	)
	pf, ok := Build(seq)
	if !ok {
		t.Fatal("Build should succeed for a multi-literal seq")
	}
	if !pf.IsComplete() {
		t.Fatal("all-complete literal set should report IsComplete() == true")
	}

	haystack := []byte("the quick dog jumps")
	got := pf.Find(haystack, 0)
	if got != 10 {
		t.Fatalf("Find(0) = %d, want 10 (start of \"dog\")", got)
	}
	if pf.LiteralLen() != 3 {
		t.Fatalf("LiteralLen() = %d, want 3", pf.LiteralLen())
	}

	if got := pf.Find([]byte("no animals here"), 0); got != -1 {
		t.Fatalf("Find(no match) = %d, want -1", got)
	}
}
