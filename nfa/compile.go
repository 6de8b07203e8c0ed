package nfa

import (
	"fmt"

	"github.com/coregx/earlgrep/grammar"
	"github.com/coregx/earlgrep/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion over the parse tree to prevent
	// stack overflow on deeply nested patterns.
	// Default: 10000
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 10000,
	}
}

// Compiler compiles pattern parse trees into Thompson NFAs and removes their
// epsilon edges. A Compiler is not safe for concurrent use.
type Compiler struct {
	config  CompilerConfig
	parser  *syntax.Parser
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	return &Compiler{
		config: config,
		parser: syntax.NewParser(),
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an epsilon-free NFA.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	tree, err := c.parser.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	n, err := c.CompileTree(tree)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return n, nil
}

// CompileTree compiles a collapsed parse tree into an epsilon-free NFA.
func (c *Compiler) CompileTree(tree *grammar.Node) (*NFA, error) {
	n, err := c.Thompson(tree)
	if err != nil {
		return nil, err
	}
	if err := n.EliminateEpsilon(); err != nil {
		return nil, err
	}
	return n, nil
}

// Thompson builds the Thompson automaton for a collapsed parse tree, epsilon
// edges included. The fragment's exits are patched to a fresh match state.
func (c *Compiler) Thompson(tree *grammar.Node) (*NFA, error) {
	c.builder = NewBuilder()
	c.depth = 0

	start, err := c.compile(tree)
	if err != nil {
		return nil, err
	}
	match := c.builder.AddMatch()
	if err := c.builder.Patch(start, match); err != nil {
		return nil, err
	}
	return c.builder.Build(start)
}

func (c *Compiler) compile(node *grammar.Node) (StateID, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, ErrTooComplex
	}

	if node.Sym.IsTerminal() {
		return c.builder.AddByte(node.Sym.Char), nil
	}

	switch node.Label() {
	case syntax.Dot:
		return c.builder.AddClass(syntax.Letters, syntax.Digits, syntax.Whitespace, syntax.Punctuation), nil
	case syntax.Let:
		return c.builder.AddClass(syntax.Letters), nil
	case syntax.Dgt:
		return c.builder.AddClass(syntax.Digits), nil
	case syntax.WS:
		return c.builder.AddClass(syntax.Whitespace), nil
	case syntax.NotLet:
		return c.builder.AddClass(syntax.Digits, syntax.Whitespace, syntax.Punctuation), nil
	case syntax.NotDgt:
		return c.builder.AddClass(syntax.Letters, syntax.Whitespace, syntax.Punctuation), nil
	case syntax.NotWS:
		return c.builder.AddClass(syntax.Letters, syntax.Digits, syntax.Punctuation), nil
	case syntax.SP:
		// Escaped special: '\' followed by the literal byte.
		if err := arity(node, 2); err != nil {
			return InvalidState, err
		}
		return c.builder.AddByte(node.Children[1].Sym.Char), nil
	case syntax.Paren:
		if err := arity(node, 3); err != nil {
			return InvalidState, err
		}
		return c.compile(node.Children[1])
	case syntax.Concat:
		return c.compileConcat(node)
	case syntax.Union:
		return c.compileUnion(node)
	case syntax.Counts:
		return c.compileCounts(node)
	}
	return InvalidState, &BuildError{
		Message: fmt.Sprintf("unexpected parse node %s", node.Sym),
		StateID: InvalidState,
	}
}

func (c *Compiler) compileConcat(node *grammar.Node) (StateID, error) {
	if err := arity(node, 2); err != nil {
		return InvalidState, err
	}
	left, err := c.compile(node.Children[0])
	if err != nil {
		return InvalidState, err
	}
	right, err := c.compile(node.Children[1])
	if err != nil {
		return InvalidState, err
	}
	if err := c.builder.Patch(left, right); err != nil {
		return InvalidState, err
	}
	return left, nil
}

func (c *Compiler) compileUnion(node *grammar.Node) (StateID, error) {
	if err := arity(node, 3); err != nil {
		return InvalidState, err
	}
	left, err := c.compile(node.Children[0])
	if err != nil {
		return InvalidState, err
	}
	right, err := c.compile(node.Children[2])
	if err != nil {
		return InvalidState, err
	}
	return c.builder.AddSplit(left, right), nil
}

// compileCounts builds e*, e+ and e?. In all three the split state S has an
// epsilon edge into e; its dangling epsilon edge is the fragment's exit.
//
//	e*  e loops back to S, entry S
//	e+  e loops back to S, entry e
//	e?  e exits directly, entry S
func (c *Compiler) compileCounts(node *grammar.Node) (StateID, error) {
	if err := arity(node, 2); err != nil {
		return InvalidState, err
	}
	inner, err := c.compile(node.Children[0])
	if err != nil {
		return InvalidState, err
	}
	split := c.builder.AddSplit(inner)

	op := node.Children[1].Sym.Char
	switch op {
	case '*', '+':
		if err := c.builder.Patch(inner, split); err != nil {
			return InvalidState, err
		}
	case '?':
	default:
		return InvalidState, &BuildError{
			Message: fmt.Sprintf("unknown repetition operator %q", op),
			StateID: split,
		}
	}
	if err := c.builder.AddEdge(split, DanglingEpsilon()); err != nil {
		return InvalidState, err
	}
	if op == '+' {
		return inner, nil
	}
	return split, nil
}

func arity(node *grammar.Node, want int) error {
	if len(node.Children) != want {
		return &BuildError{
			Message: fmt.Sprintf("%s node has %d children, want %d", node.Label(), len(node.Children), want),
			StateID: InvalidState,
		}
	}
	return nil
}

// Compile parses and compiles pattern with the default configuration.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}
