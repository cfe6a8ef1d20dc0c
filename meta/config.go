// Package meta implements the engine orchestrator for re2vm: it composes
// the literal extractor, prefilter, and the pike package's PikeVM into a
// single compiled Engine. Grounded on the teacher's meta package, reduced
// to the two strategies prefix extraction actually supports here — a bare
// PikeVM scan, or a prefilter-guided scan that confirms every candidate
// with an anchored PikeVM call. The teacher's DFA, OnePass, reverse-search,
// Teddy, and branch-dispatch strategies all assume a lazy-DFA or
// backtracker layer this build does not carry; see DESIGN.md.
package meta

// Config controls how Compile builds an Engine.
type Config struct {
	// EnablePrefilter turns on literal-prefix prefiltering. When false, or
	// when no usable prefix can be extracted, the Engine always runs the
	// PikeVM unanchored over the whole haystack.
	EnablePrefilter bool

	// MaxLiterals caps literal.Extractor's alternation fan-out.
	MaxLiterals int

	// MaxLiteralLen caps a single extracted literal's byte length.
	MaxLiteralLen int

	// MaxClassRunes caps how wide a character class can be before it stops
	// contributing individual-rune literals.
	MaxClassRunes int

	// MaxRecursionDepth limits recursion during AST-to-program compilation.
	MaxRecursionDepth int

	// MaxMemory bounds the PikeVM's capture-vector memory, in words (ints);
	// 0 means unbounded. See pike.Options.MaxMemory.
	MaxMemory int
}

// DefaultConfig returns sensible defaults: prefiltering on, generous but
// bounded literal extraction, no memory cap.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:   true,
		MaxLiterals:       32,
		MaxLiteralLen:     64,
		MaxClassRunes:     4,
		MaxRecursionDepth: 1000,
		MaxMemory:         0,
	}
}

// Validate reports whether c's fields are in range.
func (c Config) Validate() error {
	if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
		return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 10,000"}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 4096 {
		return &ConfigError{Field: "MaxLiteralLen", Message: "must be between 1 and 4,096"}
	}
	if c.MaxClassRunes < 0 || c.MaxClassRunes > 100_000 {
		return &ConfigError{Field: "MaxClassRunes", Message: "must be between 0 and 100,000"}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 10_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 10,000"}
	}
	if c.MaxMemory < 0 {
		return &ConfigError{Field: "MaxMemory", Message: "must not be negative"}
	}
	return nil
}

// ConfigError reports an out-of-range Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "re2vm: invalid config: " + e.Field + ": " + e.Message
}
