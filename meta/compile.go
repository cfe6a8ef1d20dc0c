package meta

import (
	"sync"

	"github.com/coregx/re2vm/literal"
	"github.com/coregx/re2vm/pike"
	"github.com/coregx/re2vm/prefilter"
	"github.com/coregx/re2vm/prog"
	"github.com/coregx/re2vm/syntax"
)

// Compile compiles pattern with DefaultConfig.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with an explicit Config.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	root, err := syntax.Parse(pattern, 0)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return compileAST(pattern, root, config)
}

func compileAST(pattern string, root *syntax.Regexp, config Config) (*Engine, error) {
	compilerConfig := prog.CompilerConfig{MaxRecursionDepth: config.MaxRecursionDepth}
	program, err := prog.NewCompiler(compilerConfig).CompileAST(root)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	e := &Engine{
		pattern: pattern,
		program: program,
		config:  config,
	}
	e.vmPool = sync.Pool{New: func() any { return pike.New(program) }}

	if config.EnablePrefilter {
		extractorConfig := literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassRunes: config.MaxClassRunes,
		}
		seq := literal.New(extractorConfig).ExtractPrefixes(root)
		if pf, ok := prefilter.Build(seq); ok {
			e.prefilt = pf
			e.strategy = StrategyPrefilter
		}
	}

	return e, nil
}

// CompileError reports a pattern that failed to parse or compile.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "re2vm: error parsing pattern `" + e.Pattern + "`: " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }
