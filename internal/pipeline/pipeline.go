// Package pipeline wires the scanner, parser, formatter and renderer into
// the single entry point the CLI drives: source text in, formatted text
// and diagnostics out.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/mofmt/mofmt/internal/config"
	"github.com/mofmt/mofmt/runtime/format"
	"github.com/mofmt/mofmt/runtime/parser"
	"github.com/mofmt/mofmt/runtime/render"
	"github.com/mofmt/mofmt/runtime/scanner"
	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/mofmt/mofmt/runtime/token"
)

// Result is the outcome of formatting one source file.
type Result struct {
	// Output is the formatted source text.
	Output string
	// Diagnostics are the non-fatal lexical and syntactic errors recovered
	// during scanning and parsing, in source order.
	Diagnostics []token.Diagnostic
	// Store and Tree are exposed for callers that want to dump the token
	// stream or CST (the --ast debug flag).
	Store *token.Store
	Tree  *syntax.Tree
}

// StuckError is returned when the parser cannot make progress on
// malformed input; it is the one fatal tier of the pipeline's error
// handling.
type StuckError struct {
	Pos token.Position
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("%s: parser stuck: no progress after repeated lookahead", e.Pos)
}

// Format runs the full scan/parse/format/render pipeline over source and
// returns the canonical rendering under cfg. It returns a *StuckError if
// the parser exhausts its lookahead budget on unrecoverable input.
func Format(source string, cfg config.Config) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*parser.StuckError); ok {
				err = &StuckError{Pos: se.Pos}
				return
			}
			panic(r)
		}
	}()

	store := scanner.Scan(source)
	tree := parser.Parse(store)
	markers := format.Format(tree)
	out := render.Render(store, markers, cfg.CRLF, cfg.Indent)

	diags := append(store.Errors(), tree.Diagnostics()...)
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Position, diags[j].Position
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})

	return Result{
		Output:      out,
		Diagnostics: diags,
		Store:       store,
		Tree:        tree,
	}, nil
}
