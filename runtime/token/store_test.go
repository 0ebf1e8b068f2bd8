package token

import "testing"

func TestStorePushAndAccessors(t *testing.T) {
	s := NewStore("model Foo end Foo;")
	id := s.Push(Model, 0, 5)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Kind(id) != Model {
		t.Fatalf("Kind(%d) = %v, want Model", id, s.Kind(id))
	}
	if got := s.Text(id); got != "model" {
		t.Fatalf("Text(%d) = %q, want %q", id, got, "model")
	}
}

func TestStorePosition(t *testing.T) {
	src := "a\nbc\nd"
	s := NewStore(src)
	// offsets: a=0, \n=1, b=2, c=3, \n=4, d=5
	id := s.Push(Identifier, 2, 4) // "bc"
	pos := s.Start(id)
	if pos.Line != 2 || pos.Col != 1 {
		t.Fatalf("Start(%d) = %+v, want line 2 col 1", id, pos)
	}
	end := s.End(id)
	if end.Line != 2 || end.Col != 2 {
		t.Fatalf("End(%d) = %+v, want line 2 col 2", id, end)
	}
}

func TestStoreTokensFiltersCommentsAndEOF(t *testing.T) {
	s := NewStore("a // c\n")
	id1 := s.Push(Identifier, 0, 1)
	s.Push(LineComment, 2, 6)
	s.Push(EOF, 7, 7)

	toks := s.Tokens()
	if len(toks) != 1 || toks[0] != id1 {
		t.Fatalf("Tokens() = %v, want [%d]", toks, id1)
	}
	comments := s.Comments()
	if len(comments) != 1 {
		t.Fatalf("Comments() = %v, want 1 entry", comments)
	}
}

func TestStoreErrors(t *testing.T) {
	s := NewStore("\"unterminated")
	id := s.Push(ErrorUnclosedString, 0, 13)
	errs := s.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %v, want 1 entry", errs)
	}
	if errs[0].Position != s.Start(id) {
		t.Fatalf("Errors()[0].Position = %+v, want %+v", errs[0].Position, s.Start(id))
	}
}
