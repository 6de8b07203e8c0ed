// Package syntax defines the regular-expression grammar and parses pattern
// strings into collapsed parse trees.
//
// Supported syntax:
//
//	a|b        alternation
//	ab         concatenation
//	a* a+ a?   postfix repetition, chainable (a+? is valid)
//	(a)        grouping
//	.          any byte of the alphabet except newline
//	\s \d \w   letter, digit and whitespace classes
//	\S \D \W   the union of the other three classes
//	\| \* ...  a special byte matched literally
//
// The class escapes deliberately keep their historical mapping: \s is the
// LETTER class and \w is the WHITESPACE class. Patterns written for other
// engines will not behave the same.
package syntax

import (
	"github.com/coregx/earlgrep/grammar"
)

// Nonterminal names of the pattern grammar. After collapsing, internal tree
// nodes carry one of these labels.
const (
	RE     = "RE"
	Union  = "UNION"
	Concat = "CONCAT"
	Counts = "COUNTS"
	Paren  = "PAREN"
	Term   = "TERM"
	Let    = "LET"
	Dgt    = "DGT"
	WS     = "WS"
	SP     = "SP"
	Dot    = "DOT"
	NotLet = "NOTLET"
	NotDgt = "NOTDGT"
	NotWS  = "NOTWS"
)

// Grammar builds a fresh copy of the pattern grammar. The result is not
// shared; callers may keep it for repeated parses.
func Grammar() *grammar.Grammar {
	g := grammar.New(RE)
	nt, tr := grammar.N, grammar.T

	g.AddRule(RE, nt(Union))
	g.AddRule(Union, nt(Union), tr('|'), nt(Concat))
	g.AddRule(Union, nt(Concat))

	g.AddRule(Concat, nt(Concat), nt(Counts))
	g.AddRule(Concat, nt(Counts))

	g.AddRule(Counts, nt(Counts), tr('*'))
	g.AddRule(Counts, nt(Counts), tr('+'))
	g.AddRule(Counts, nt(Counts), tr('?'))
	g.AddRule(Counts, nt(Paren))

	g.AddRule(Paren, tr('('), nt(RE), tr(')'))
	g.AddRule(Paren, nt(Term))

	for _, name := range []string{Let, SP, Dgt, WS, Dot, NotLet, NotDgt, NotWS} {
		g.AddRule(Term, nt(name))
	}

	for _, c := range Whitespace {
		g.AddRule(WS, tr(c))
	}
	for _, c := range Digits {
		g.AddRule(Dgt, tr(c))
	}
	for _, c := range Letters {
		g.AddRule(Let, tr(c))
	}
	for _, c := range Punctuation {
		if !IsSpecial(c) {
			g.AddRule(SP, tr(c))
		}
	}
	for _, c := range Specials() {
		g.AddRule(SP, tr('\\'), tr(c))
	}

	g.AddRule(Dot, tr('.'))

	g.AddRule(Let, tr('\\'), tr('s'))
	g.AddRule(Dgt, tr('\\'), tr('d'))
	g.AddRule(WS, tr('\\'), tr('w'))

	g.AddRule(NotLet, tr('\\'), tr('S'))
	g.AddRule(NotDgt, tr('\\'), tr('D'))
	g.AddRule(NotWS, tr('\\'), tr('W'))

	return g
}

// Parser parses patterns with one shared grammar instance.
// A Parser is read-only after construction and safe for concurrent use.
type Parser struct {
	g *grammar.Grammar
}

// NewParser creates a parser backed by a fresh pattern grammar.
func NewParser() *Parser {
	return &Parser{g: Grammar()}
}

// Parse parses pattern and returns its collapsed tree. DOT nodes are kept so
// that an unescaped '.' stays distinguishable from the escaped literal.
func (p *Parser) Parse(pattern string) (*grammar.Node, error) {
	tree, ok := grammar.Parse(pattern, p.g)
	if !ok {
		return nil, &Error{Pattern: pattern, Err: ErrInvalidPattern}
	}
	return tree.Collapse(Dot), nil
}

// Parse parses pattern with a freshly built grammar.
func Parse(pattern string) (*grammar.Node, error) {
	return NewParser().Parse(pattern)
}
