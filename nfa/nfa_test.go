package nfa

import (
	"errors"
	"strings"
	"testing"
)

func TestBuilder_Patch(t *testing.T) {
	b := NewBuilder()
	a := b.AddByte('a')
	c := b.AddByte('c')
	if err := b.Patch(a, c); err != nil {
		t.Fatal(err)
	}
	m := b.AddMatch()
	if err := b.Patch(a, m); err != nil {
		t.Fatal(err)
	}
	n, err := b.Build(a)
	if err != nil {
		t.Fatal(err)
	}

	if got := n.Transitions(a); len(got) != 1 || got[0] != ByteEdge('a', c) {
		t.Errorf("edges of a = %v", got)
	}
	if got := n.Transitions(c); len(got) != 1 || got[0] != ByteEdge('c', m) {
		t.Errorf("edges of c = %v", got)
	}
	if !n.IsMatch(m) || n.IsMatch(a) {
		t.Error("match flags wrong")
	}
}

func TestBuilder_PatchLoopTerminates(t *testing.T) {
	// x -a-> y, y -ε-> x, y -ε-> ?  : the walk must visit x once.
	b := NewBuilder()
	x := b.AddByte('a')
	y := b.AddSplit(x)
	if err := b.Patch(x, y); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge(y, DanglingEpsilon()); err != nil {
		t.Fatal(err)
	}
	m := b.AddMatch()
	if err := b.Patch(x, m); err != nil {
		t.Fatal(err)
	}
	n, err := b.Build(x)
	if err != nil {
		t.Fatal(err)
	}
	want := []Transition{EpsilonEdge(x), EpsilonEdge(m)}
	got := n.Transitions(y)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("edges of y = %v, want %v", got, want)
	}
}

func TestBuilder_PatchSkipsTarget(t *testing.T) {
	// Patching into a fragment must leave the fragment's own exits dangling.
	b := NewBuilder()
	x := b.AddByte('x')
	y := b.AddByte('y')
	if err := b.Patch(x, y); err != nil {
		t.Fatal(err)
	}
	if !b.states[y].out[0].IsDangling() {
		t.Error("patch bound the exit of its target")
	}
}

func TestBuilder_Errors(t *testing.T) {
	b := NewBuilder()
	a := b.AddByte('a')

	var be *BuildError
	if err := b.Patch(a, 42); !errors.As(err, &be) || be.StateID != 42 {
		t.Errorf("Patch to missing state: %v", err)
	}
	if err := b.AddEdge(7, DanglingEpsilon()); !errors.As(err, &be) {
		t.Errorf("AddEdge on missing state: %v", err)
	}
	if _, err := b.Build(a); !errors.As(err, &be) || !errors.Is(err, ErrCompilation) {
		t.Errorf("Build with dangling edge: %v", err)
	}

	b = NewBuilder()
	bad := b.AddState(false, ByteEdge('z', 9))
	if err := b.Patch(bad, bad); err != nil {
		t.Errorf("self patch: %v", err)
	}
	m := b.AddMatch()
	if err := b.Patch(bad, m); !errors.As(err, &be) {
		t.Errorf("Patch through out-of-range edge: %v", err)
	}
}

func TestBuilder_AddClassDedupes(t *testing.T) {
	b := NewBuilder()
	id := b.AddClass([]byte("abc"), []byte("cd"))
	out := b.states[id].out
	if len(out) != 4 {
		t.Fatalf("got %d edges, want 4", len(out))
	}
	for i, c := range []byte("abcd") {
		if out[i].Byte != c || !out[i].IsDangling() || out[i].IsEpsilon() {
			t.Errorf("edge %d = %v", i, out[i])
		}
	}
}

func TestNFA_Extend(t *testing.T) {
	n, err := Compile("ab")
	if err != nil {
		t.Fatal(err)
	}
	before := n.String()

	ext, err := n.Extend([]Transition{ByteEdge('z', n.Start())}, true)
	if err != nil {
		t.Fatal(err)
	}
	if ext.States() != n.States()+1 || int(ext.Start()) != n.States() {
		t.Errorf("extended NFA start=%d states=%d", ext.Start(), ext.States())
	}
	if !ext.IsMatch(ext.Start()) {
		t.Error("new start should carry the match flag")
	}
	if n.String() != before {
		t.Error("Extend modified the receiver")
	}

	if _, err := n.Extend([]Transition{ByteEdge('z', 99)}, false); err == nil {
		t.Error("Extend accepted an out-of-range edge")
	}
	if _, err := n.Extend([]Transition{DanglingByte('z')}, false); err == nil {
		t.Error("Extend accepted a dangling edge")
	}
}

func TestNFA_CloneIsDeep(t *testing.T) {
	n, err := Compile("a|b")
	if err != nil {
		t.Fatal(err)
	}
	c := n.Clone()
	c.states[c.start].out[0].Byte = 'q'
	c.states[c.start].match = true
	if n.Transitions(n.Start())[0].Byte == 'q' || n.IsMatch(n.Start()) {
		t.Error("Clone shares state with the original")
	}
}

func TestNFA_String(t *testing.T) {
	n, err := Compile("a")
	if err != nil {
		t.Fatal(err)
	}
	s := n.String()
	if !strings.HasPrefix(s, "NFA(start=0, states=2)\n") {
		t.Errorf("String() = %q", s)
	}
	if !strings.Contains(s, "'a' -> 1") || !strings.Contains(s, "match") {
		t.Errorf("String() = %q", s)
	}
	if got := DanglingEpsilon().String(); got != "ε -> ?" {
		t.Errorf("DanglingEpsilon().String() = %q", got)
	}
}

func TestNFA_Validate(t *testing.T) {
	n := &NFA{states: []State{{}}, start: 3}
	var be *BuildError
	if err := n.Validate(); !errors.As(err, &be) || be.StateID != 3 {
		t.Errorf("Validate() = %v", err)
	}
	if n.State(3) != nil {
		t.Error("State(out of range) should be nil")
	}
}

func TestBuildError_Message(t *testing.T) {
	err := &BuildError{Message: "boom", StateID: InvalidState}
	if err.Error() != "NFA build error: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	err = &BuildError{Message: "boom", StateID: 4}
	if err.Error() != "NFA build error at state 4: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}
