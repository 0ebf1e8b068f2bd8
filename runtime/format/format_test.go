package format

import (
	"testing"

	"github.com/mofmt/mofmt/runtime/parser"
	"github.com/mofmt/mofmt/runtime/scanner"
)

func countMarkerKind(markers []Marker, k MarkerKind) int {
	n := 0
	for _, m := range markers {
		if m.Kind == k {
			n++
		}
	}
	return n
}

func TestFormatMinimalModelBalancesIndentDedent(t *testing.T) {
	store := scanner.Scan("model Foo\n  Real x;\nend Foo;")
	tree := parser.Parse(store)
	markers := Format(tree)

	indents := countMarkerKind(markers, Indent)
	dedents := countMarkerKind(markers, Dedent)
	if indents != dedents {
		t.Fatalf("Indent/Dedent imbalance: %d indents, %d dedents", indents, dedents)
	}
	if indents == 0 {
		t.Fatalf("expected at least one Indent for the element list")
	}
}

func TestFormatEmitsTokenForEveryNonCommentToken(t *testing.T) {
	store := scanner.Scan("model Foo end Foo;")
	tree := parser.Parse(store)
	markers := Format(tree)

	tokens := countMarkerKind(markers, Token)
	// model Foo end Foo ; = 5 non-comment, non-EOF tokens.
	if tokens != 5 {
		t.Fatalf("Token markers = %d, want 5", tokens)
	}
}

func TestFormatEquationSectionIndented(t *testing.T) {
	store := scanner.Scan("model Foo\nequation\n  x = 1;\nend Foo;")
	tree := parser.Parse(store)
	markers := Format(tree)

	if countMarkerKind(markers, Indent) != countMarkerKind(markers, Dedent) {
		t.Fatalf("Indent/Dedent imbalance")
	}
	if countMarkerKind(markers, Blank) == 0 {
		t.Fatalf("expected at least one Blank marker (the section keyword and end are blank-separated)")
	}
}

func TestFormatMultipleDeclarationsSeparatedByBreak(t *testing.T) {
	store := scanner.Scan("model Foo\n  Real x;\n  Real y;\nend Foo;")
	tree := parser.Parse(store)
	markers := Format(tree)

	breaks := countMarkerKind(markers, Break)
	blanks := countMarkerKind(markers, Blank)
	if breaks != 1 || blanks != 2 {
		t.Fatalf("Break markers = %d, Blank markers = %d, want 1 Break (between declarations) and 2 Blanks (before the element list, before end)", breaks, blanks)
	}
}

func TestFormatDoesNotPanicOnRecoveredError(t *testing.T) {
	store := scanner.Scan("model Foo\n  Real x\nequation\n  x = 1;\nend Foo;")
	tree := parser.Parse(store)
	markers := Format(tree)
	if len(markers) == 0 {
		t.Fatalf("expected a non-empty marker stream even over recovered input")
	}
}

// A token recovered into an Error subtree must still reach the marker
// stream exactly once: neither dropped (no formatter case for it) nor
// duplicated (double-counted between the Error node and its production).
func TestFormatPreservesTokenInsideErrorSubtree(t *testing.T) {
	store := scanner.Scan("model 123\nend 123;")
	tree := parser.Parse(store)
	markers := Format(tree)

	// model 123 end 123 ; = 5 tokens, none dropped or duplicated.
	if n := countMarkerKind(markers, Token); n != 5 {
		t.Fatalf("Token markers = %d, want 5", n)
	}
}
