package parser

import (
	"testing"

	"github.com/mofmt/mofmt/runtime/scanner"
	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	store := scanner.Scan(src)
	return Parse(store)
}

// countKind recursively counts subtrees of kind k in tree.
func countKind(tree *syntax.Tree, n syntax.TreeID, k syntax.Kind) int {
	count := 0
	if tree.Kind(n) == k {
		count++
	}
	for _, c := range tree.Children(n) {
		if !c.IsToken() {
			count += countKind(tree, c.Tree(), k)
		}
	}
	return count
}

func TestParseMinimalModel(t *testing.T) {
	tree := parse(t, "model Foo end Foo;")
	root := tree.Root()
	if tree.Kind(root) != syntax.StoredDefinition {
		t.Fatalf("Kind(root) = %v, want StoredDefinition", tree.Kind(root))
	}
	if countKind(tree, root, syntax.ClassDefinition) != 1 {
		t.Fatalf("expected exactly one ClassDefinition")
	}
	if countKind(tree, root, syntax.LongClassSpecifier) != 1 {
		t.Fatalf("expected exactly one LongClassSpecifier")
	}
}

func TestParseEquationSection(t *testing.T) {
	tree := parse(t, "model Foo\nequation\n  x = 1 + y;\nend Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.EquationSection) != 1 {
		t.Fatalf("expected exactly one EquationSection")
	}
	if countKind(tree, root, syntax.Equation) != 1 {
		t.Fatalf("expected exactly one Equation")
	}
	if countKind(tree, root, syntax.ArithmeticExpression) == 0 {
		t.Fatalf("expected at least one ArithmeticExpression for '1 + y'")
	}
}

func TestParseAlgorithmSection(t *testing.T) {
	tree := parse(t, "model Foo\nalgorithm\n  x := 1;\nend Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.AlgorithmSection) != 1 {
		t.Fatalf("expected exactly one AlgorithmSection")
	}
	if countKind(tree, root, syntax.Statement) != 1 {
		t.Fatalf("expected exactly one Statement")
	}
}

func TestParseComponentDeclaration(t *testing.T) {
	tree := parse(t, "model Foo\n  Real x;\n  parameter Integer n = 3;\nend Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.ComponentClause) != 2 {
		t.Fatalf("expected exactly two ComponentClause nodes, got %d", countKind(tree, root, syntax.ComponentClause))
	}
}

func TestParseIfEquation(t *testing.T) {
	tree := parse(t, "model Foo\nequation\n  if x > 0 then\n    y = 1;\n  else\n    y = 0;\n  end if;\nend Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.IfEquation) != 1 {
		t.Fatalf("expected exactly one IfEquation")
	}
}

func TestParseConnectEquation(t *testing.T) {
	tree := parse(t, "model Foo\nequation\n  connect(a.p, b.n);\nend Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.ConnectEquation) != 1 {
		t.Fatalf("expected exactly one ConnectEquation")
	}
}

func TestParseRecoversFromMalformedInput(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Parse panicked on recoverable malformed input: %v", r)
		}
	}()
	tree := parse(t, "model Foo\n  Real x\nequation\n  x = 1;\nend Foo;") // missing ';' after x
	require.NotEmpty(t, tree.Diagnostics(), "expected a diagnostic for the missing semicolon")
	assert.Contains(t, tree.Diagnostics()[0].Message, "expected")
}

// TestParseReifiesErrorSubtreeOnUnexpectedToken covers advanceWithError's
// recovery path specifically: an unexpected token inside a class specifier
// is wrapped in its own Error subtree and consumed exactly once, so it
// still shows up among the tree's leaves.
func TestParseReifiesErrorSubtreeOnUnexpectedToken(t *testing.T) {
	tree := parse(t, "model 123\nend 123;")
	root := tree.Root()

	require.GreaterOrEqual(t, countKind(tree, root, syntax.Error), 1, "expected at least one reified Error subtree")

	var leaves int
	var walk func(n syntax.TreeID)
	walk = func(n syntax.TreeID) {
		for _, c := range tree.Children(n) {
			if c.IsToken() {
				leaves++
				continue
			}
			walk(c.Tree())
		}
	}
	walk(root)
	// model 123 end 123 ; = 5 tokens, none of them dropped or duplicated.
	assert.Equal(t, 5, leaves)
}

func TestParseWithinClause(t *testing.T) {
	tree := parse(t, "within Some.Package;\nmodel Foo end Foo;")
	root := tree.Root()
	if countKind(tree, root, syntax.Name) == 0 {
		t.Fatalf("expected a Name node for the within clause path")
	}
}
