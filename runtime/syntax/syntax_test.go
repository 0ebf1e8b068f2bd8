package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mofmt/mofmt/runtime/token"
)

func newTestStore() *token.Store {
	// "a + b" as three identifiers/operator tokens; contents don't matter
	// for tree-shape tests, only the resulting IDs and positions.
	s := token.NewStore("a + b")
	s.Push(token.Identifier, 0, 1)
	s.Push(token.Plus, 2, 3)
	s.Push(token.Identifier, 4, 5)
	s.Push(token.EOF, 5, 5)
	return s
}

func TestBuildSimpleTree(t *testing.T) {
	tokens := newTestStore()
	events := []Event{
		{Evt: EventEnter},
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventAdvance, Tok: 1},
		{Evt: EventAdvance, Tok: 2},
		{Evt: EventExit, Kind: ArithmeticExpression},
	}
	tree := Build(tokens, events)

	root := tree.Root()
	if tree.Kind(root) != ArithmeticExpression {
		t.Fatalf("Kind(root) = %v, want ArithmeticExpression", tree.Kind(root))
	}
	children := tree.Children(root)
	if len(children) != 3 {
		t.Fatalf("len(Children(root)) = %d, want 3", len(children))
	}
	for i, c := range children {
		if !c.IsToken() {
			t.Fatalf("children[%d] is not a token", i)
		}
	}
	if tree.Start(root) != 0 || tree.End(root) != 2 {
		t.Fatalf("Start/End = %d/%d, want 0/2", tree.Start(root), tree.End(root))
	}
}

func TestBuildNestedTree(t *testing.T) {
	tokens := newTestStore()
	events := []Event{
		{Evt: EventEnter}, // outer: Term
		{Evt: EventEnter}, // inner: Factor wrapping token 0
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventExit, Kind: Factor},
		{Evt: EventAdvance, Tok: 1},
		{Evt: EventEnter}, // inner: Factor wrapping token 2
		{Evt: EventAdvance, Tok: 2},
		{Evt: EventExit, Kind: Factor},
		{Evt: EventExit, Kind: Term},
	}
	tree := Build(tokens, events)

	root := tree.Root()
	if tree.Kind(root) != Term {
		t.Fatalf("Kind(root) = %v, want Term", tree.Kind(root))
	}
	children := tree.Children(root)
	if len(children) != 3 {
		t.Fatalf("len(Children(root)) = %d, want 3", len(children))
	}
	if children[0].IsToken() || children[2].IsToken() {
		t.Fatalf("expected subtree children at positions 0 and 2")
	}
	if !children[1].IsToken() {
		t.Fatalf("expected token child at position 1")
	}

	parent, ok := tree.Parent(children[0].Tree())
	if !ok || parent != root {
		t.Fatalf("Parent(children[0]) = (%v, %v), want (%v, true)", parent, ok, root)
	}

	if !tree.Contains(root, Factor) {
		t.Fatalf("Contains(root, Factor) = false, want true")
	}
	if tree.Contains(root, Equation) {
		t.Fatalf("Contains(root, Equation) = true, want false")
	}
}

func TestBuildPrunesEmptyProduction(t *testing.T) {
	tokens := newTestStore()
	events := []Event{
		{Evt: EventEnter}, // outer: ElementList
		{Evt: EventEnter}, // empty inner: Element, never advances
		{Evt: EventExit, Kind: Element},
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventExit, Kind: ElementList},
	}
	tree := Build(tokens, events)

	root := tree.Root()
	children := tree.Children(root)
	if len(children) != 1 {
		t.Fatalf("len(Children(root)) = %d, want 1 (empty Element should be pruned)", len(children))
	}
	if !children[0].IsToken() {
		t.Fatalf("expected surviving child to be the token, not a pruned subtree")
	}
}

// A bare EventError (the shape expect() emits) never touches the tree: it
// only records a diagnostic against its token, so the token it names is
// still free to be consumed normally by whatever advances past it.
func TestBuildBareErrorIsDiagnosticOnly(t *testing.T) {
	tokens := newTestStore()
	events := []Event{
		{Evt: EventEnter},
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventError, Tok: 1, Msg: "unexpected token"},
		{Evt: EventAdvance, Tok: 1},
		{Evt: EventExit, Kind: Equation},
	}
	tree := Build(tokens, events)

	root := tree.Root()
	children := tree.Children(root)
	if len(children) != 2 {
		t.Fatalf("len(Children(root)) = %d, want 2 (token 0 and token 1, each appended once)", len(children))
	}
	for i, c := range children {
		if !c.IsToken() {
			t.Fatalf("children[%d] is not a token", i)
		}
	}

	want := []token.Diagnostic{{Message: "unexpected token", Position: tokens.Start(1)}}
	if diff := cmp.Diff(want, tree.Diagnostics()); diff != "" {
		t.Fatalf("Diagnostics() mismatch (-want +got):\n%s", diff)
	}
}

// A production that wraps its own EventError in an Enter/Exit(Error) pair
// (advanceWithError's shape) reifies exactly one Error subtree holding the
// single token it consumed.
func TestBuildReifiesWrappedError(t *testing.T) {
	tokens := newTestStore()
	events := []Event{
		{Evt: EventEnter}, // outer: Equation
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventEnter}, // inner: the Error wrapper
		{Evt: EventError, Tok: 1, Msg: "unexpected token"},
		{Evt: EventAdvance, Tok: 1},
		{Evt: EventExit, Kind: Error},
		{Evt: EventExit, Kind: Equation},
	}
	tree := Build(tokens, events)

	root := tree.Root()
	children := tree.Children(root)
	if len(children) != 2 {
		t.Fatalf("len(Children(root)) = %d, want 2", len(children))
	}
	errChild := children[1]
	if errChild.IsToken() {
		t.Fatalf("expected the wrapped Error event to be reified as a subtree child")
	}
	errNode := errChild.Tree()
	if tree.Kind(errNode) != Error {
		t.Fatalf("Kind(errNode) = %v, want Error", tree.Kind(errNode))
	}
	errChildren := tree.Children(errNode)
	if len(errChildren) != 1 || !errChildren[0].IsToken() || errChildren[0].Token() != 1 {
		t.Fatalf("Children(errNode) = %+v, want single token child 1", errChildren)
	}

	want := []token.Diagnostic{{Message: "unexpected token", Position: tokens.Start(1)}}
	if diff := cmp.Diff(want, tree.Diagnostics()); diff != "" {
		t.Fatalf("Diagnostics() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsMultiline(t *testing.T) {
	src := "a +\nb"
	s := token.NewStore(src)
	s.Push(token.Identifier, 0, 1)
	s.Push(token.Plus, 2, 3)
	s.Push(token.Identifier, 4, 5)
	s.Push(token.EOF, 5, 5)

	events := []Event{
		{Evt: EventEnter},
		{Evt: EventAdvance, Tok: 0},
		{Evt: EventAdvance, Tok: 1},
		{Evt: EventAdvance, Tok: 2},
		{Evt: EventExit, Kind: ArithmeticExpression},
	}
	tree := Build(s, events)
	if !tree.IsMultiline(tree.Root()) {
		t.Fatalf("IsMultiline(root) = false, want true")
	}
}
