// Package meta implements the engine orchestrator.
//
// compile.go contains pattern compilation logic.

package meta

import (
	"errors"

	"v.io/x/lib/vlog"

	"github.com/coregx/earlgrep/grammar"
	"github.com/coregx/earlgrep/literal"
	"github.com/coregx/earlgrep/nfa"
	"github.com/coregx/earlgrep/prefilter"
	"github.com/coregx/earlgrep/syntax"
)

// Compile compiles a pattern into an executable Engine.
//
// Steps:
//  1. Parse the pattern with the Earley parser
//  2. Compile the parse tree to an epsilon-free NFA
//  3. Extract the literal prefix and the literal set
//  4. Select the strategy
//  5. Build the prefilter for it
//
// Returns an error if:
//   - Pattern syntax is invalid
//   - Pattern is too complex (recursion limit exceeded)
//   - Configuration is invalid
//
// Example:
//
//	engine, err := meta.Compile("Bobby|Daigle")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	engine, err := compileTree(tree, config)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}
	vlog.VI(1).Infof("earlgrep: compiled %q: %d states, %v (%s)",
		pattern, engine.nfa.States(), engine.strategy,
		StrategyReason(engine.strategy, engine.prefix, engine.literals, config))
	return engine, nil
}

// CompileTree compiles a collapsed pattern parse tree, as returned by
// syntax.Parse, with the given configuration.
func CompileTree(tree *grammar.Node, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return compileTree(tree, config)
}

func compileTree(tree *grammar.Node, config Config) (*Engine, error) {
	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	n, err := compiler.CompileTree(tree)
	if err != nil {
		return nil, err
	}
	vlog.VI(2).Infof("earlgrep: %v", n)

	search, prefix, literals, err := extractLiterals(n, config)
	if err != nil {
		return nil, err
	}

	strategy := SelectStrategy(prefix, literals, config)
	var pf prefilter.Prefilter
	switch strategy {
	case UsePrefix:
		pf, err = prefilter.NewBuilder(prefix, nil).Build()
	case UseLiteralSet:
		pf, err = prefilter.NewBuilder(literal.Literal{}, literals).Build()
	}
	if err != nil {
		return nil, err
	}
	if strategy != UsePrefix {
		// The reduced automaton only pays off when the prefix is skipped.
		search = n
	}

	return &Engine{
		nfa:       n,
		pikevm:    nfa.NewPikeVM(search),
		prefix:    prefix,
		literals:  literals,
		prefilter: pf,
		strategy:  strategy,
		config:    config,
		statePool: newSearchStatePool(search),
	}, nil
}

// extractLiterals runs prefix extraction and, when there is no prefix,
// literal-set extraction.
func extractLiterals(n *nfa.NFA, config Config) (*nfa.NFA, literal.Literal, *literal.Seq, error) {
	if !config.EnablePrefilter {
		return n, literal.Literal{}, nil, nil
	}
	extractor := literal.New(literal.ExtractorConfig{
		MaxLiteralLen: config.MaxLiteralSetLen,
		MaxLiterals:   config.MaxLiteralSetSize,
	})
	reduced, prefix, err := extractor.ExtractPrefix(n)
	if err != nil {
		return nil, literal.Literal{}, nil, err
	}
	if prefix.Len() > 0 || !config.EnableLiteralSet {
		return reduced, prefix, nil, nil
	}
	return n, prefix, extractor.ExtractSet(n), nil
}

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// For syntax errors, returns the error directly.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return "earlgrep: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
