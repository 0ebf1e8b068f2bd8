// Package render turns a format.Marker stream into the final formatted
// source text. It is the only package that knows about line endings and
// the literal indent unit; everything upstream works in markers.
package render

import (
	"strings"

	"github.com/mofmt/mofmt/runtime/format"
	"github.com/mofmt/mofmt/runtime/token"
)

// DefaultIndentWidth is the number of spaces per indent level absent a
// project .mofmt.yaml override.
const DefaultIndentWidth = 2

// Render writes every marker in markers to text, reading token text from
// tokens. crlf selects "\r\n" line terminators instead of "\n"; indentWidth
// is the number of spaces per indent level. Everything else about layout
// is identical.
func Render(tokens *token.Store, markers []format.Marker, crlf bool, indentWidth int) string {
	eol := "\n"
	if crlf {
		eol = "\r\n"
	}
	p := &printer{tokens: tokens, eol: eol, unit: strings.Repeat(" ", indentWidth)}
	var b strings.Builder
	for _, m := range markers {
		p.printMarker(&b, m)
	}
	return b.String()
}

// printer holds the state rendering needs: the current indent depth and
// the literal indent unit. Indent/Dedent markers adjust the depth without
// producing output; every other marker kind either emits literal text or
// a line break followed by the unit repeated indent times.
type printer struct {
	tokens *token.Store
	eol    string
	unit   string
	indent int
}

func (p *printer) printMarker(b *strings.Builder, m format.Marker) {
	switch m.Kind {
	case format.Space:
		b.WriteByte(' ')
	case format.Indent:
		p.indent++
	case format.Dedent:
		p.indent--
	case format.Token:
		b.WriteString(p.tokens.Text(m.Tok))
	case format.Break, format.Blank:
		b.WriteString(p.eol)
		if m.Kind == format.Blank {
			b.WriteString(p.eol)
		}
		for i := 0; i < p.indent; i++ {
			b.WriteString(p.unit)
		}
	}
}
