package scanner

import (
	"testing"

	"github.com/mofmt/mofmt/runtime/token"
)

func kinds(s *token.Store) []token.Kind {
	var out []token.Kind
	for i := 0; i < s.Len(); i++ {
		out = append(out, s.Kind(token.ID(i)))
	}
	return out
}

func TestScanKeywordsAndPunctuation(t *testing.T) {
	s := Scan("model Foo end Foo;")
	got := kinds(s)
	want := []token.Kind{
		token.Model, token.Identifier, token.End, token.Identifier,
		token.Semicolon, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanNumbersAndOperators(t *testing.T) {
	s := Scan("x := 1 + 2.5e-1 .* y;")
	got := kinds(s)
	want := []token.Kind{
		token.Identifier, token.Assign, token.UInt, token.Plus, token.UReal,
		token.DotStar, token.Identifier, token.Semicolon, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanComments(t *testing.T) {
	s := Scan("x; // trailing\n/* block */ y;")
	var comments, tokens int
	for i := 0; i < s.Len(); i++ {
		k := s.Kind(token.ID(i))
		if k.IsComment() {
			comments++
		} else if k != token.EOF {
			tokens++
		}
	}
	if comments != 2 {
		t.Fatalf("comments = %d, want 2", comments)
	}
	if tokens != 4 { // x ; y ;
		t.Fatalf("non-comment tokens = %d, want 4", tokens)
	}
}

func TestScanStringLiteral(t *testing.T) {
	s := Scan(`"hello world"`)
	if kinds(s)[0] != token.String {
		t.Fatalf("kinds[0] = %v, want String", kinds(s)[0])
	}
}

func TestScanUnterminatedStringProducesErrorToken(t *testing.T) {
	s := Scan(`"unterminated`)
	k := kinds(s)[0]
	if k != token.ErrorUnclosedString {
		t.Fatalf("kinds[0] = %v, want ErrorUnclosedString", k)
	}
	if !k.IsError() {
		t.Fatalf("IsError() = false for %v", k)
	}
	errs := s.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %v, want 1 entry", errs)
	}
}

func TestScanIllegalCharacterDoesNotStopScanning(t *testing.T) {
	s := Scan("a ` b")
	got := kinds(s)
	want := []token.Kind{token.Identifier, token.ErrorIllegalCharacter, token.Identifier, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanAlwaysTerminatesWithEOF(t *testing.T) {
	for _, src := range []string{"", "x", "model A end A;", "\"unterminated"} {
		s := Scan(src)
		if s.Kind(s.Last()) != token.EOF {
			t.Errorf("Scan(%q) last token = %v, want EOF", src, s.Kind(s.Last()))
		}
	}
}
