// Package format walks a syntax.Tree and produces a flat marker stream
// describing the layout of a pretty-printed rendering, without committing to
// actual text. A render package turns markers into bytes.
package format

import "github.com/mofmt/mofmt/runtime/token"

// MarkerKind identifies what one Marker contributes to the rendered output.
type MarkerKind uint8

const (
	// Token emits the literal text of a token.
	Token MarkerKind = iota
	// Indent raises the renderer's indent level for subsequent Break/Blank.
	Indent
	// Dedent lowers the renderer's indent level.
	Dedent
	// Space emits a single ASCII space.
	Space
	// Break emits one line terminator at the current indent level.
	Break
	// Blank emits two line terminators (one blank line) at the current
	// indent level.
	Blank
)

// Marker is one step of the layout stream; Tok is only meaningful when Kind
// is Token.
type Marker struct {
	Kind MarkerKind
	Tok  token.ID
}

// blank controls whether handleBreak is permitted to emit a blank line
// between the previous node and the next one.
type blank uint8

const (
	// blankRequired always emits at least one blank line, regardless of
	// how many source lines separated the two constructs — used before a
	// composition section, before the first entry after a section keyword,
	// and before a class's closing end.
	blankRequired blank = iota
	// blankLegal preserves an existing blank line from the source but
	// never invents one.
	blankLegal
	// blankIllegal never emits a blank line directly before the next
	// construct, only a single break; re-attached comments ahead of it
	// still keep a blank line that separated them in the source.
	blankIllegal
)
