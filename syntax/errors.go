package syntax

import "fmt"

// ErrorCode identifies the kind of syntax error the parser reported.
// Grounded on the nfa.CompileError / nfa.BuildError pattern in the teacher
// repo: a small sentinel-like taxonomy wrapped in a struct that carries
// position context, rather than one error string per call site.
type ErrorCode string

const (
	ErrBadEscape          ErrorCode = "bad escape sequence"
	ErrBadCharClass       ErrorCode = "bad character class"
	ErrBadPerlOp          ErrorCode = "bad Perl operator"
	ErrBadRepeatOp        ErrorCode = "bad repetition operator"
	ErrBadRepeatSize      ErrorCode = "bad repetition size"
	ErrBadUTF8            ErrorCode = "invalid UTF-8"
	ErrInvalidCharRange   ErrorCode = "invalid character class range"
	ErrInvalidRepeatSize  ErrorCode = "invalid repeat count"
	ErrMissingBracket     ErrorCode = "missing closing ]"
	ErrMissingParen       ErrorCode = "missing closing )"
	ErrTrailingBackslash  ErrorCode = "trailing backslash at end of expression"
	ErrUnexpectedParen    ErrorCode = "unexpected )"
	ErrInternalError      ErrorCode = "internal error"
	ErrTooDeep            ErrorCode = "expression too deeply nested"
	ErrUnrecognizedFlag   ErrorCode = "unrecognized flag"
	ErrPatternTooLarge    ErrorCode = "pattern too large"
)

// Error is a syntax error produced by Parse. It carries the byte offset
// into the pattern where the error was detected, and renders a short
// caret-style excerpt of the pattern around that offset.
type Error struct {
	Code    ErrorCode
	Pos     int
	Pattern string
	Expr    string // the offending sub-expression text, if available
}

func (e *Error) Error() string {
	excerpt := excerptAt(e.Pattern, e.Pos)
	if e.Expr != "" {
		return fmt.Sprintf("%s: %q at position %d\n%s", e.Code, e.Expr, e.Pos, excerpt)
	}
	return fmt.Sprintf("%s at position %d\n%s", e.Code, e.Pos, excerpt)
}

// excerptAt renders a single line showing the pattern with a caret under
// the byte offset pos, truncating long patterns around the error site.
func excerptAt(pattern string, pos int) string {
	const window = 20
	if pos > len(pattern) {
		pos = len(pattern)
	}
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	hi := pos + window
	if hi > len(pattern) {
		hi = len(pattern)
	}
	if pos < lo {
		pos = lo
	}
	line := pattern[lo:hi]
	caret := make([]byte, pos-lo)
	for i := range caret {
		caret[i] = ' '
	}
	return fmt.Sprintf("    %s\n    %s^", line, caret)
}
