package meta

import (
	"testing"

	"github.com/coregx/re2vm/pike"
)

func TestCompile_InvalidPattern(t *testing.T) {
	if _, err := Compile("a("); err == nil {
		t.Fatal("expected a compile error for unbalanced group")
	}
}

func TestCompile_StrategySelection(t *testing.T) {
	tests := []struct {
		pattern string
		want    Strategy
	}{
		{"foo", StrategyPrefilter},
		{"foo|bar", StrategyPrefilter},
		{".*", StrategyPikeVM},
		{"a*", StrategyPikeVM},
	}
	for _, tt := range tests {
		e, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.pattern, err)
		}
		if e.Strategy() != tt.want {
			t.Errorf("Compile(%q).Strategy() = %v, want %v", tt.pattern, e.Strategy(), tt.want)
		}
	}
}

func TestEngine_Find(t *testing.T) {
	e, err := Compile(`foo\d+`)
	if err != nil {
		t.Fatal(err)
	}
	m := e.Find([]byte("prefix foo123 suffix"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if got := m.String(); got != "foo123" {
		t.Fatalf("match = %q, want foo123", got)
	}
}

func TestEngine_Find_NoMatch(t *testing.T) {
	e, err := Compile(`xyz`)
	if err != nil {
		t.Fatal(err)
	}
	if m := e.Find([]byte("abcdef")); m != nil {
		t.Fatalf("expected nil, got %v", m)
	}
}

func TestEngine_FindSubmatch(t *testing.T) {
	e, err := Compile(`(\w+)@(\w+)`)
	if err != nil {
		t.Fatal(err)
	}
	m := e.FindSubmatch([]byte("contact: user@example"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if string(m.Group(1)) != "user" || string(m.Group(2)) != "example" {
		t.Fatalf("groups = %q, %q; want user, example", m.Group(1), m.Group(2))
	}
}

func TestEngine_IsMatch(t *testing.T) {
	e, err := Compile(`\d{3}-\d{4}`)
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsMatch([]byte("call 555-1234 now")) {
		t.Fatal("expected IsMatch to be true")
	}
	if e.IsMatch([]byte("no digits here")) {
		t.Fatal("expected IsMatch to be false")
	}
}

func TestEngine_FindAll(t *testing.T) {
	e, err := Compile(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	matches := e.FindAll([]byte("a1 b22 c333"), -1)
	want := []string{"1", "22", "333"}
	if len(matches) != len(want) {
		t.Fatalf("FindAll = %d matches, want %d", len(matches), len(want))
	}
	for i, m := range matches {
		if m.String() != want[i] {
			t.Errorf("match[%d] = %q, want %q", i, m.String(), want[i])
		}
	}
}

func TestEngine_FindAll_Limit(t *testing.T) {
	e, err := Compile(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	matches := e.FindAll([]byte("a1 b22 c333"), 2)
	if len(matches) != 2 {
		t.Fatalf("FindAll with limit 2 = %d matches, want 2", len(matches))
	}
}

func TestEngine_FindAll_EmptyMatchesAdvance(t *testing.T) {
	e, err := Compile(`a*`)
	if err != nil {
		t.Fatal(err)
	}
	matches := e.FindAll([]byte("baab"), -1)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	for _, m := range matches {
		if m.Start() < 0 || m.End() > 4 {
			t.Fatalf("match out of range: %+v", m)
		}
	}
}

func TestEngine_Count(t *testing.T) {
	e, err := Compile(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Count([]byte("a1 b22 c333")); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
}

func TestEngine_PrefilterConfirmFalsePositive(t *testing.T) {
	// `foo\d` prefilters on "foo" but only "foo" followed by a digit is a
	// real match; a "foo" candidate with no digit after it must not confirm.
	e, err := Compile(`foo\d`)
	if err != nil {
		t.Fatal(err)
	}
	if e.Find([]byte("foo but no match here")) != nil {
		t.Fatal("expected no match: only a partial literal is present")
	}
	if e.Find([]byte("xxfoo1xx")) == nil {
		t.Fatal("expected a match")
	}
}

func TestEngine_FoldCaseLiteral_NotMisdirectedByPrefilter(t *testing.T) {
	e, err := Compile(`(?i)foo`)
	if err != nil {
		t.Fatal(err)
	}
	// A folded literal must never drive a case-sensitive prefilter: with
	// no lowercase "foo" anywhere in the haystack, a buggy case-sensitive
	// prefilter would report no candidate at all.
	if e.Find([]byte("say FOO now")) == nil {
		t.Fatal("expected (?i)foo to match FOO")
	}
	if e.Find([]byte("say Foo now")) == nil {
		t.Fatal("expected (?i)foo to match Foo")
	}
	if !e.IsMatch([]byte("FOOBAR")) {
		t.Fatal("expected (?i)foo to match within FOOBAR")
	}
}

func TestEngine_MaxMemoryReachesSimulator(t *testing.T) {
	config := DefaultConfig()
	config.EnablePrefilter = false // exercise the plain StrategyPikeVM path
	config.MaxMemory = 1
	e, err := CompileWithConfig(`a+b+`, config)
	if err != nil {
		t.Fatal(err)
	}
	_, searchErr := e.searchAt([]byte("aaabbb"), 0, e.baseOptions())
	if searchErr != pike.ErrMemoryBudget {
		t.Fatalf("searchAt error = %v, want %v (Config.MaxMemory must reach pike.Options.MaxMemory)", searchErr, pike.ErrMemoryBudget)
	}
}

func TestEngine_ConcurrentSearches(t *testing.T) {
	e, err := Compile(`\w+`)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- true }()
			for j := 0; j < 50; j++ {
				e.Find([]byte("hello world"))
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
