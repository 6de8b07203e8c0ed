package grammar

import (
	"strings"
)

// Node is a parse tree node. Leaves carry terminal symbols; internal nodes
// carry nonterminals whose children correspond to one rule's right-hand side
// (before collapsing).
type Node struct {
	Sym      Symbol
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Label returns the nonterminal name, or "" for a terminal node.
func (n *Node) Label() string {
	if n.Sym.IsTerminal() {
		return ""
	}
	return n.Sym.Name
}

// Collapse returns a copy of the tree with chain productions removed: every
// node with exactly one child is replaced by its collapsed child, unless the
// node's nonterminal name is listed in keep. Nodes with two or more children
// carry structure and are always preserved.
//
// Example: the tree RE(UNION(CONCAT(COUNTS(PAREN(TERM(LET('a'))))))) collapses
// to the single leaf 'a'.
func (n *Node) Collapse(keep ...string) *Node {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	return n.collapse(kept)
}

func (n *Node) collapse(keep map[string]bool) *Node {
	if len(n.Children) == 1 && !keep[n.Label()] {
		return n.Children[0].collapse(keep)
	}
	out := &Node{Sym: n.Sym}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.collapse(keep)
		}
	}
	return out
}

// Text returns the concatenation of the terminal leaves under n.
func (n *Node) Text() string {
	var b strings.Builder
	n.text(&b)
	return b.String()
}

func (n *Node) text(b *strings.Builder) {
	if n.Sym.IsTerminal() {
		b.WriteByte(n.Sym.Char)
		return
	}
	for _, c := range n.Children {
		c.text(b)
	}
}

// String renders the tree with two-space indentation, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Sym.String())
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}
