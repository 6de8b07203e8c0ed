package grammar

// item is a partially matched rule: the rule, how many RHS symbols have
// been matched, and the input position where the match began.
type item struct {
	rule   int
	dot    int
	origin int
}

func (it item) advance() item {
	return item{rule: it.rule, dot: it.dot + 1, origin: it.origin}
}

// itemSet is an insertion-ordered set of items. Items appended while the set
// is being processed are picked up by the same sweep.
type itemSet struct {
	items []item
	seen  map[item]struct{}
}

func newItemSet() *itemSet {
	return &itemSet{seen: make(map[item]struct{})}
}

func (s *itemSet) add(it item) {
	if _, ok := s.seen[it]; ok {
		return
	}
	s.seen[it] = struct{}{}
	s.items = append(s.items, it)
}

// span identifies a completed nonterminal by name and origin; the end
// position is the index of the chart column that holds it.
type span struct {
	name   string
	origin int
}

// chart holds the Earley item sets for one input.
type chart struct {
	g        *Grammar
	input    string
	nullable map[string]bool
	sets     []*itemSet
}

// Parse parses input with g and returns one derivation tree rooted at the
// grammar's start symbol. The boolean is false when the input has no
// derivation; this is a normal outcome, not an error.
//
// The tree is uncollapsed: every internal node corresponds to exactly one
// rule application. Use Node.Collapse to drop chain productions.
func Parse(input string, g *Grammar) (*Node, bool) {
	c := &chart{
		g:        g,
		input:    input,
		nullable: g.nullable(),
	}
	c.recognize()

	done := c.completed()
	if _, ok := done[len(input)][span{name: g.start, origin: 0}]; !ok {
		return nil, false
	}

	d := &deriver{
		g:      g,
		input:  input,
		done:   done,
		active: make(map[activeKey]bool),
	}
	root := d.node(g.start, 0, len(input))
	if root == nil {
		return nil, false
	}
	return root, true
}

// Recognize reports whether input derives from g without building a tree.
func Recognize(input string, g *Grammar) bool {
	c := &chart{
		g:        g,
		input:    input,
		nullable: g.nullable(),
	}
	c.recognize()
	_, ok := c.completed()[len(input)][span{name: g.start, origin: 0}]
	return ok
}

// recognize fills the chart by applying predict, scan and complete to a
// fixed point at every input position.
func (c *chart) recognize() {
	n := len(c.input)
	c.sets = make([]*itemSet, n+1)
	for i := range c.sets {
		c.sets[i] = newItemSet()
	}
	for _, r := range c.g.byName[c.g.start] {
		c.sets[0].add(item{rule: r, origin: 0})
	}

	for i := 0; i <= n; i++ {
		set := c.sets[i]
		for k := 0; k < len(set.items); k++ {
			it := set.items[k]
			rhs := c.g.rules[it.rule].RHS
			if it.dot == len(rhs) {
				c.complete(it, i)
				continue
			}
			next := rhs[it.dot]
			if next.IsTerminal() {
				if i < n && c.input[i] == next.Char {
					c.sets[i+1].add(it.advance())
				}
				continue
			}
			c.predict(next.Name, it, i)
		}
	}
}

// predict adds a fresh item for every rule of name at position i. If name is
// nullable the waiting item is also advanced past it right away, since its
// empty completion may already have been processed.
func (c *chart) predict(name string, waiting item, i int) {
	set := c.sets[i]
	for _, r := range c.g.byName[name] {
		set.add(item{rule: r, origin: i})
	}
	if c.nullable[name] {
		set.add(waiting.advance())
	}
}

// complete advances every item in the origin column that was waiting on the
// completed item's nonterminal.
func (c *chart) complete(done item, i int) {
	lhs := c.g.rules[done.rule].LHS
	origin := c.sets[done.origin]
	for k := 0; k < len(origin.items); k++ {
		w := origin.items[k]
		rhs := c.g.rules[w.rule].RHS
		if w.dot < len(rhs) && !rhs[w.dot].IsTerminal() && rhs[w.dot].Name == lhs {
			c.sets[i].add(w.advance())
		}
	}
}

// completed indexes the finished items of every column by (name, origin).
func (c *chart) completed() []map[span]struct{} {
	out := make([]map[span]struct{}, len(c.sets))
	for j, set := range c.sets {
		out[j] = make(map[span]struct{})
		for _, it := range set.items {
			r := c.g.rules[it.rule]
			if it.dot == len(r.RHS) {
				out[j][span{name: r.LHS, origin: it.origin}] = struct{}{}
			}
		}
	}
	return out
}

type activeKey struct {
	name     string
	from, to int
}

// deriver rebuilds a single derivation tree from the completed items of a
// successful recognition.
type deriver struct {
	g      *Grammar
	input  string
	done   []map[span]struct{}
	active map[activeKey]bool // guards against unit and nullable cycles
}

func (d *deriver) derives(name string, from, to int) bool {
	_, ok := d.done[to][span{name: name, origin: from}]
	return ok
}

// node builds the tree for name spanning input[from:to], trying rules in
// declaration order. Returns nil if no derivation avoids a cycle.
func (d *deriver) node(name string, from, to int) *Node {
	key := activeKey{name: name, from: from, to: to}
	if d.active[key] {
		return nil
	}
	d.active[key] = true
	defer delete(d.active, key)

	for _, r := range d.g.byName[name] {
		rhs := d.g.rules[r].RHS
		if !d.feasible(rhs, from, to) {
			continue
		}
		if kids, ok := d.sequence(rhs, from, to); ok {
			return &Node{Sym: N(name), Children: kids}
		}
	}
	return nil
}

// feasible reports whether rhs can cover input[from:to] according to the
// chart, without building any nodes.
func (d *deriver) feasible(rhs []Symbol, from, to int) bool {
	if len(rhs) == 0 {
		return from == to
	}
	sym := rhs[0]
	if sym.IsTerminal() {
		return from < to && d.input[from] == sym.Char && d.feasible(rhs[1:], from+1, to)
	}
	for mid := d.firstSplit(rhs, from, to); mid <= to; mid++ {
		if d.derives(sym.Name, from, mid) && d.feasible(rhs[1:], mid, to) {
			return true
		}
	}
	return false
}

// firstSplit returns the smallest end worth trying for the nonterminal
// rhs[0]. A trailing nonterminal must end at to; trying every split there
// would make reconstruction cubic in the input length.
func (d *deriver) firstSplit(rhs []Symbol, from, to int) int {
	if len(rhs) == 1 {
		return to
	}
	return from
}

// sequence builds the children for rhs over input[from:to]. Nonterminal
// children take the shortest feasible span first.
func (d *deriver) sequence(rhs []Symbol, from, to int) ([]*Node, bool) {
	if len(rhs) == 0 {
		return nil, from == to
	}
	sym := rhs[0]
	if sym.IsTerminal() {
		if from >= to || d.input[from] != sym.Char {
			return nil, false
		}
		rest, ok := d.sequence(rhs[1:], from+1, to)
		if !ok {
			return nil, false
		}
		return append([]*Node{{Sym: sym}}, rest...), true
	}
	for mid := d.firstSplit(rhs, from, to); mid <= to; mid++ {
		if !d.derives(sym.Name, from, mid) || !d.feasible(rhs[1:], mid, to) {
			continue
		}
		child := d.node(sym.Name, from, mid)
		if child == nil {
			continue
		}
		rest, ok := d.sequence(rhs[1:], mid, to)
		if !ok {
			continue
		}
		return append([]*Node{child}, rest...), true
	}
	return nil, false
}
