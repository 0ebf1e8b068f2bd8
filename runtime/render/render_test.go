package render

import (
	"testing"

	"github.com/mofmt/mofmt/runtime/format"
	"github.com/mofmt/mofmt/runtime/token"
)

func TestRenderTokensAndSpaces(t *testing.T) {
	store := token.NewStore("a+b")
	a := store.Push(token.Identifier, 0, 1)
	plus := store.Push(token.Plus, 1, 2)
	b := store.Push(token.Identifier, 2, 3)

	markers := []format.Marker{
		{Kind: format.Token, Tok: a},
		{Kind: format.Space},
		{Kind: format.Token, Tok: plus},
		{Kind: format.Space},
		{Kind: format.Token, Tok: b},
	}
	got := Render(store, markers, false, DefaultIndentWidth)
	if want := "a + b"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderIndentAndBreak(t *testing.T) {
	store := token.NewStore("ab")
	a := store.Push(token.Identifier, 0, 1)
	b := store.Push(token.Identifier, 1, 2)

	markers := []format.Marker{
		{Kind: format.Token, Tok: a},
		{Kind: format.Indent},
		{Kind: format.Break},
		{Kind: format.Token, Tok: b},
		{Kind: format.Dedent},
	}
	got := Render(store, markers, false, 4)
	want := "a\n    b"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNestedIndent(t *testing.T) {
	store := token.NewStore("xyz")
	x := store.Push(token.Identifier, 0, 1)
	y := store.Push(token.Identifier, 1, 2)
	z := store.Push(token.Identifier, 2, 3)

	markers := []format.Marker{
		{Kind: format.Token, Tok: x},
		{Kind: format.Indent},
		{Kind: format.Break},
		{Kind: format.Token, Tok: y},
		{Kind: format.Indent},
		{Kind: format.Break},
		{Kind: format.Token, Tok: z},
		{Kind: format.Dedent},
		{Kind: format.Dedent},
	}
	got := Render(store, markers, false, 2)
	want := "x\n  y\n    z"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderBlankLine(t *testing.T) {
	store := token.NewStore("ab")
	a := store.Push(token.Identifier, 0, 1)
	b := store.Push(token.Identifier, 1, 2)

	markers := []format.Marker{
		{Kind: format.Token, Tok: a},
		{Kind: format.Blank},
		{Kind: format.Token, Tok: b},
	}
	got := Render(store, markers, false, DefaultIndentWidth)
	want := "a\n\nb"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderCRLF(t *testing.T) {
	store := token.NewStore("ab")
	a := store.Push(token.Identifier, 0, 1)
	b := store.Push(token.Identifier, 1, 2)

	markers := []format.Marker{
		{Kind: format.Token, Tok: a},
		{Kind: format.Break},
		{Kind: format.Token, Tok: b},
	}
	got := Render(store, markers, true, DefaultIndentWidth)
	want := "a\r\nb"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}
