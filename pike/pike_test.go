package pike

import (
	"testing"

	"github.com/coregx/re2vm/prog"
	"github.com/coregx/re2vm/syntax"
)

func mustCompile(t *testing.T, pattern string) *prog.Program {
	t.Helper()
	p, err := prog.Compile(pattern, 0, prog.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return p
}

func TestVM_Exec_Basic(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		haystack  string
		at        int
		wantStart int
		wantEnd   int
		wantFound bool
	}{
		{name: "literal from start", pattern: "foo", haystack: "foo bar foo", at: 0, wantStart: 0, wantEnd: 3, wantFound: true},
		{name: "literal skip first", pattern: "foo", haystack: "foo bar foo", at: 3, wantStart: 8, wantEnd: 11, wantFound: true},
		{name: "no match after position", pattern: "foo", haystack: "foo", at: 1, wantFound: false},
		{name: "empty pattern mid-string", pattern: "", haystack: "abc", at: 2, wantStart: 2, wantEnd: 2, wantFound: true},
		{name: "empty pattern empty input", pattern: "", haystack: "", at: 0, wantStart: 0, wantEnd: 0, wantFound: true},
		{name: "digit class from middle", pattern: `\d+`, haystack: "abc123def456", at: 6, wantStart: 9, wantEnd: 12, wantFound: true},
		{name: "dot excludes newline", pattern: `a.b`, haystack: "a\nb", at: 0, wantFound: false},
		{name: "greedy star", pattern: `a*`, haystack: "aaab", at: 0, wantStart: 0, wantEnd: 3, wantFound: true},
		{name: "lazy star stops empty", pattern: `a*?`, haystack: "aaab", at: 0, wantStart: 0, wantEnd: 0, wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustCompile(t, tt.pattern)
			vm := New(p)
			res, err := vm.Exec([]byte(tt.haystack), tt.at, Options{})
			if err != nil {
				t.Fatalf("Exec error: %v", err)
			}
			if res.Matched != tt.wantFound {
				t.Fatalf("Matched = %v, want %v", res.Matched, tt.wantFound)
			}
			if !tt.wantFound {
				return
			}
			if res.Captures[0] != tt.wantStart || res.Captures[1] != tt.wantEnd {
				t.Errorf("span = (%d, %d), want (%d, %d)", res.Captures[0], res.Captures[1], tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestVM_Exec_LeftmostFirst(t *testing.T) {
	// Alternation must prefer the first branch that can match at a given
	// start, even if a later branch would consume more of the input.
	p := mustCompile(t, `a|ab`)
	vm := New(p)
	res, err := vm.Exec([]byte("ab"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Captures[0] != 0 || res.Captures[1] != 1 {
		t.Fatalf("got %+v, want leftmost-first span (0,1)", res)
	}
}

func TestVM_Exec_Captures(t *testing.T) {
	root, err := syntax.Parse(`(a+)(b+)?`, 0)
	if err != nil {
		t.Fatal(err)
	}
	p, err := prog.NewCompiler(prog.DefaultCompilerConfig()).CompileAST(root)
	if err != nil {
		t.Fatal(err)
	}
	vm := New(p)
	res, err := vm.Exec([]byte("aaa"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched {
		t.Fatal("expected match")
	}
	if res.Captures[0] != 0 || res.Captures[1] != 3 {
		t.Fatalf("full span = (%d,%d), want (0,3)", res.Captures[0], res.Captures[1])
	}
	if res.Captures[2] != 0 || res.Captures[3] != 3 {
		t.Fatalf("group 1 = (%d,%d), want (0,3)", res.Captures[2], res.Captures[3])
	}
	if res.Captures[4] != -1 || res.Captures[5] != -1 {
		t.Fatalf("group 2 = (%d,%d), want unset (-1,-1)", res.Captures[4], res.Captures[5])
	}
}

func TestVM_Exec_WordBoundary(t *testing.T) {
	p := mustCompile(t, `\bcat\b`)
	vm := New(p)

	res, err := vm.Exec([]byte("a cat sat"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Captures[0] != 2 || res.Captures[1] != 5 {
		t.Fatalf("got %+v, want span (2,5)", res)
	}

	res, err = vm.Exec([]byte("concatenate"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched {
		t.Fatalf("expected no match inside a larger word, got %+v", res)
	}
}

func TestVM_Exec_AnchoredRejectsLaterStart(t *testing.T) {
	p := mustCompile(t, `^foo`)
	vm := New(p)
	res, err := vm.Exec([]byte("xxfoo"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched {
		t.Fatalf("^ anchor should not match mid-string, got %+v", res)
	}
}

func TestVM_Exec_NoExponentialBlowup(t *testing.T) {
	// Classic pathological family: a?^n a^n against a^n. A backtracker
	// blows up; the PikeVM must stay linear in program size.
	const n = 28
	pattern := ""
	for i := 0; i < n; i++ {
		pattern += "a?"
	}
	for i := 0; i < n; i++ {
		pattern += "a"
	}
	input := make([]byte, n)
	for i := range input {
		input[i] = 'a'
	}
	p := mustCompile(t, pattern)
	vm := New(p)
	res, err := vm.Exec(input, 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Captures[1] != n {
		t.Fatalf("got %+v, want full-length match", res)
	}
}

func TestVM_Exec_EmptyStarTerminates(t *testing.T) {
	root, err := syntax.Parse(`()*`, 0)
	if err != nil {
		t.Fatal(err)
	}
	p, err := prog.NewCompiler(prog.DefaultCompilerConfig()).CompileAST(root)
	if err != nil {
		t.Fatal(err)
	}
	vm := New(p)
	res, err := vm.Exec([]byte("xyz"), 0, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Captures[0] != 0 || res.Captures[1] != 0 {
		t.Fatalf("got %+v, want a single empty match at 0", res)
	}
}

func TestVM_Exec_Cancel(t *testing.T) {
	p := mustCompile(t, `a+`)
	vm := New(p)
	calls := 0
	_, err := vm.Exec([]byte("aaaa"), 0, Options{Cancel: func() bool {
		calls++
		return calls > 1
	}})
	if err != ErrCanceled {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestVM_Exec_MemoryBudget(t *testing.T) {
	p := mustCompile(t, `(a)(b)(c)(d)(e)`)
	vm := New(p)
	_, err := vm.Exec([]byte("abcde"), 0, Options{MaxMemory: 1})
	if err != ErrMemoryBudget {
		t.Fatalf("err = %v, want ErrMemoryBudget", err)
	}
}

func TestVM_Exec_FirstMatchOption(t *testing.T) {
	p := mustCompile(t, `a|ab`)
	vm := New(p)
	res, err := vm.Exec([]byte("ab"), 0, Options{FirstMatch: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Captures[1] != 1 {
		t.Fatalf("got %+v, want the first-found span (0,1)", res)
	}
}
