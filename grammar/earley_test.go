package grammar

import (
	"strings"
	"testing"
)

// arithmetic builds the left-recursive expression grammar used throughout
// these tests.
func arithmetic() *Grammar {
	g := New("EXP")
	g.AddRule("EXP", N("EXP"), T('-'), N("EXP"))
	g.AddRule("EXP", N("TERM"))

	g.AddRule("TERM", N("TERM"), T('/'), N("TERM"))
	g.AddRule("TERM", N("FACTOR"))

	g.AddRule("FACTOR", T('('), N("EXP"), T(')'))
	for c := byte('0'); c <= '9'; c++ {
		g.AddRule("FACTOR", T(c))
	}
	return g
}

func TestParse_Arithmetic(t *testing.T) {
	g := arithmetic()
	tests := []struct {
		input string
		want  bool
	}{
		{"5--5", false},
		{"5-5", true},
		{"(5-5)/(2-3/4)", true},
		{"5", true},
		{"", false},
		{"(5", false},
		{"5-", false},
		{"((((1))))", true},
		{"1/2/3-4-5", true},
		{"a", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree, ok := Parse(tt.input, g)
			if ok != tt.want {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.want)
			}
			if ok != Recognize(tt.input, g) {
				t.Errorf("Recognize(%q) disagrees with Parse", tt.input)
			}
			if !ok {
				if tree != nil {
					t.Errorf("Parse(%q) returned a tree on failure", tt.input)
				}
				return
			}
			if tree.Label() != "EXP" {
				t.Errorf("root = %s, want EXP", tree.Sym)
			}
			if got := tree.Text(); got != tt.input {
				t.Errorf("tree text = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParse_CollapseArithmetic(t *testing.T) {
	tree, ok := Parse("5-5", arithmetic())
	if !ok {
		t.Fatal("expected parse")
	}
	got := tree.Collapse().String()
	want := "EXP\n  '5'\n  '-'\n  '5'\n"
	if got != want {
		t.Errorf("collapsed tree:\n%s\nwant:\n%s", got, want)
	}

	tree, ok = Parse("(5-5)/(2-3/4)", arithmetic())
	if !ok {
		t.Fatal("expected parse")
	}
	c := tree.Collapse()
	if c.Label() != "TERM" || len(c.Children) != 3 {
		t.Fatalf("collapsed root = %s with %d children, want TERM with 3", c.Sym, len(c.Children))
	}
	if c.Children[0].Label() != "FACTOR" || c.Children[0].Text() != "(5-5)" {
		t.Errorf("left operand = %s %q", c.Children[0].Sym, c.Children[0].Text())
	}
}

func TestParse_TieBreakShortestFirst(t *testing.T) {
	tree, ok := Parse("5-5-5", arithmetic())
	if !ok {
		t.Fatal("expected parse")
	}
	c := tree.Collapse()
	if len(c.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(c.Children))
	}
	if got := c.Children[0].Text(); got != "5" {
		t.Errorf("left child = %q, want %q", got, "5")
	}
	if got := c.Children[2].Text(); got != "5-5" {
		t.Errorf("right child = %q, want %q", got, "5-5")
	}
}

func TestParse_DeclarationOrder(t *testing.T) {
	g := New("S")
	g.AddRule("S", N("A"))
	g.AddRule("S", N("B"))
	g.AddRule("A", T('x'))
	g.AddRule("B", T('x'))

	tree, ok := Parse("x", g)
	if !ok {
		t.Fatal("expected parse")
	}
	if got := tree.Children[0].Label(); got != "A" {
		t.Errorf("first declared rule not chosen: got %s", got)
	}
}

func TestParse_LeftRecursionDeep(t *testing.T) {
	g := New("L")
	g.AddRule("L", N("L"), T('a'))
	g.AddRule("L", T('a'))

	input := strings.Repeat("a", 200)
	tree, ok := Parse(input, g)
	if !ok {
		t.Fatal("expected parse of long left-recursive input")
	}
	if tree.Text() != input {
		t.Error("tree text does not reproduce the input")
	}
	if _, ok := Parse(input+"b", g); ok {
		t.Error("unexpected parse with trailing garbage")
	}
}

func TestParse_Nullable(t *testing.T) {
	g := New("S")
	g.AddRule("S", N("A"), T('b'), N("A"))
	g.AddRule("A")
	g.AddRule("A", T('a'))

	tests := []struct {
		input string
		want  bool
	}{
		{"b", true},
		{"ab", true},
		{"ba", true},
		{"aba", true},
		{"aa", false},
		{"abaa", false},
		{"", false},
	}
	for _, tt := range tests {
		tree, ok := Parse(tt.input, g)
		if ok != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, ok, tt.want)
			continue
		}
		if ok && tree.Text() != tt.input {
			t.Errorf("Parse(%q) text = %q", tt.input, tree.Text())
		}
	}
}

func TestParse_EmptyStart(t *testing.T) {
	g := New("S")
	g.AddRule("S")
	tree, ok := Parse("", g)
	if !ok {
		t.Fatal("empty input should derive from S -> ε")
	}
	if !tree.IsLeaf() {
		t.Errorf("expected childless root, got %d children", len(tree.Children))
	}
}

func TestParse_UnitCycle(t *testing.T) {
	g := New("A")
	g.AddRule("A", N("A"))
	g.AddRule("A", T('a'))

	tree, ok := Parse("a", g)
	if !ok {
		t.Fatal("expected parse through cyclic grammar")
	}
	if tree.Collapse().Sym != T('a') {
		t.Errorf("collapsed tree = %s", tree.Collapse())
	}
}

func TestParse_MalformedGrammar(t *testing.T) {
	g := New("S")
	g.AddRule("S", T('a'), N("MISSING"))

	if _, ok := Parse("a", g); ok {
		t.Error("undefined nonterminal must not derive anything")
	}
	if _, ok := Parse("ab", g); ok {
		t.Error("undefined nonterminal must not derive anything")
	}
	if got := g.Undefined(); len(got) != 1 || got[0] != "MISSING" {
		t.Errorf("Undefined() = %v", got)
	}

	if _, ok := Parse("", New("NOTHING")); ok {
		t.Error("grammar without rules must not parse")
	}
}

func TestGrammar_Accessors(t *testing.T) {
	g := arithmetic()
	if g.Start() != "EXP" {
		t.Errorf("Start() = %s", g.Start())
	}
	if got := len(g.Rules("FACTOR")); got != 11 {
		t.Errorf("FACTOR has %d rules, want 11", got)
	}
	if g.Rules("NOPE") != nil {
		t.Error("Rules of unknown nonterminal should be nil")
	}
	if g.NumRules() != 15 {
		t.Errorf("NumRules() = %d, want 15", g.NumRules())
	}
	if got := g.Rules("EXP")[0].String(); got != "EXP -> EXP '-' EXP" {
		t.Errorf("rule string = %q", got)
	}
	if !strings.HasPrefix(g.String(), "start: EXP\n") {
		t.Errorf("dump = %q", g.String())
	}
}

func TestCollapse_Keep(t *testing.T) {
	g := New("S")
	g.AddRule("S", N("DOT"))
	g.AddRule("DOT", T('.'))

	tree, ok := Parse(".", g)
	if !ok {
		t.Fatal("expected parse")
	}
	if c := tree.Collapse(); c.Sym != T('.') {
		t.Errorf("Collapse() = %s", c.Sym)
	}
	c := tree.Collapse("DOT")
	if c.Label() != "DOT" || len(c.Children) != 1 {
		t.Errorf("Collapse(DOT) = %s", c)
	}
}

func BenchmarkParse_Arithmetic(b *testing.B) {
	g := arithmetic()
	input := strings.Repeat("(1-2)/", 20) + "3"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := Parse(input, g); !ok {
			b.Fatal("parse failed")
		}
	}
}
