package syntax

import "testing"

func TestError_Message(t *testing.T) {
	_, err := Parse("a(b", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err is %T, want *Error", err)
	}
	if serr.Code != ErrMissingParen {
		t.Errorf("Code = %v, want %v", serr.Code, ErrMissingParen)
	}
	if serr.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestExcerptAt_ClampsToPatternBounds(t *testing.T) {
	s := excerptAt("abc", 100)
	if s == "" {
		t.Error("excerptAt should not panic or return empty for out-of-range pos")
	}
}
