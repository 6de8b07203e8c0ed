// Package grammar provides context-free grammars over bytes and a general
// Earley chart parser that turns an input string into a parse tree.
//
// The parser accepts any grammar, including left-recursive ones and ones with
// empty (nullable) productions. Ambiguous inputs are resolved
// deterministically: rules are tried in declaration order and, for each
// nonterminal on a right-hand side, the shortest span is tried first.
//
// Example:
//
//	g := grammar.New("EXP")
//	g.AddRule("EXP", grammar.N("EXP"), grammar.T('-'), grammar.N("EXP"))
//	g.AddRule("EXP", grammar.T('5'))
//
//	tree, ok := grammar.Parse("5-5", g)
//	if ok {
//	    fmt.Println(tree)
//	}
package grammar

import (
	"fmt"
	"strings"
)

// SymbolKind distinguishes terminals from nonterminals.
type SymbolKind uint8

const (
	// Terminal is a single input byte.
	Terminal SymbolKind = iota

	// NonTerminal is a named grammar variable.
	NonTerminal
)

// Symbol is either a terminal byte or a named nonterminal.
// Symbols are comparable and may be used as map keys.
type Symbol struct {
	Kind SymbolKind
	Char byte   // valid for Terminal
	Name string // valid for NonTerminal
}

// T returns the terminal symbol for byte c.
func T(c byte) Symbol {
	return Symbol{Kind: Terminal, Char: c}
}

// N returns the nonterminal symbol with the given name.
func N(name string) Symbol {
	return Symbol{Kind: NonTerminal, Name: name}
}

// IsTerminal reports whether s is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

// String returns the nonterminal name or the quoted terminal byte.
func (s Symbol) String() string {
	if s.Kind == Terminal {
		return fmt.Sprintf("%q", rune(s.Char))
	}
	return s.Name
}

// Rule is a single production LHS -> RHS.
type Rule struct {
	LHS string
	RHS []Symbol
}

// String renders the rule as "LHS -> s1 s2 ...".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS)
	b.WriteString(" ->")
	if len(r.RHS) == 0 {
		b.WriteString(" ε")
	}
	for _, s := range r.RHS {
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	return b.String()
}

// Grammar is a start symbol plus an ordered set of rules for each
// nonterminal. Declaration order is preserved and drives tie-breaking when
// the parser reconstructs a derivation.
//
// A Grammar is built once with AddRule and must not be modified while it is
// being used by Parse.
type Grammar struct {
	start  string
	rules  []Rule
	byName map[string][]int // nonterminal -> indexes into rules
	names  []string         // nonterminals in first-declaration order
}

// New creates an empty grammar with the given start nonterminal.
func New(start string) *Grammar {
	return &Grammar{
		start:  start,
		byName: make(map[string][]int),
	}
}

// AddRule appends the production lhs -> rhs. The rhs slice is copied.
func (g *Grammar) AddRule(lhs string, rhs ...Symbol) {
	if _, ok := g.byName[lhs]; !ok {
		g.names = append(g.names, lhs)
	}
	body := make([]Symbol, len(rhs))
	copy(body, rhs)
	g.byName[lhs] = append(g.byName[lhs], len(g.rules))
	g.rules = append(g.rules, Rule{LHS: lhs, RHS: body})
}

// Start returns the start nonterminal.
func (g *Grammar) Start() string {
	return g.start
}

// Rules returns the rules of the named nonterminal in declaration order.
// The result is nil for a nonterminal that has no rules.
func (g *Grammar) Rules(name string) []Rule {
	idx := g.byName[name]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Rule, len(idx))
	for i, r := range idx {
		out[i] = g.rules[r]
	}
	return out
}

// NumRules returns the total number of rules in the grammar.
func (g *Grammar) NumRules() int {
	return len(g.rules)
}

// Undefined returns the nonterminals that appear in some rule body but have
// no rules of their own. Parsing with such a grammar never panics; those
// nonterminals simply never derive anything.
func (g *Grammar) Undefined() []string {
	var missing []string
	seen := make(map[string]bool)
	check := func(name string) {
		if _, ok := g.byName[name]; !ok && !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}
	check(g.start)
	for _, r := range g.rules {
		for _, s := range r.RHS {
			if !s.IsTerminal() {
				check(s.Name)
			}
		}
	}
	return missing
}

// String dumps the grammar one rule per line, numbered in declaration order.
func (g *Grammar) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start: %s\n", g.start)
	for _, name := range g.names {
		for _, r := range g.byName[name] {
			fmt.Fprintf(&b, "%3d: %s\n", r, g.rules[r])
		}
	}
	return b.String()
}

// nullable computes the set of nonterminals that derive the empty string.
func (g *Grammar) nullable() map[string]bool {
	null := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if null[r.LHS] {
				continue
			}
			all := true
			for _, s := range r.RHS {
				if s.IsTerminal() || !null[s.Name] {
					all = false
					break
				}
			}
			if all {
				null[r.LHS] = true
				changed = true
			}
		}
	}
	return null
}
