package token

import (
	"fmt"
	"strings"
)

// Store owns the source text and the parallel kind/start/end arrays of every
// token the scanner produced, including comments and lexical-error tokens.
// IDs are dense and equal to source-order rank, so Store is an arena, not a
// collection of heap-allocated Token values.
type Store struct {
	source string
	kinds  []Kind
	starts []int
	ends   []int
}

// NewStore creates an empty Store over source. Tokens are appended with
// Push as the scanner runs.
func NewStore(source string) *Store {
	return &Store{source: source}
}

// Push appends a new token and returns its ID.
func (s *Store) Push(kind Kind, start, end int) ID {
	id := ID(len(s.kinds))
	s.kinds = append(s.kinds, kind)
	s.starts = append(s.starts, start)
	s.ends = append(s.ends, end)
	return id
}

// Len returns the number of tokens in the store, including EOF.
func (s *Store) Len() int { return len(s.kinds) }

// First returns the ID of the first token.
func (s *Store) First() ID { return ID(0) }

// Last returns the ID of the last token (conventionally EOF).
func (s *Store) Last() ID { return ID(len(s.kinds) - 1) }

// Next returns the ID immediately after id.
func (s *Store) Next(id ID) ID { return id + 1 }

// Prev returns the ID immediately before id.
func (s *Store) Prev(id ID) ID { return id - 1 }

// Kind returns the kind of the token at id.
func (s *Store) Kind(id ID) Kind { return s.kinds[id] }

// Text returns the literal source slice covered by the token at id.
func (s *Store) Text(id ID) string { return s.source[s.starts[id]:s.ends[id]] }

// Source returns the full underlying source string.
func (s *Store) Source() string { return s.source }

// Start returns the 1-based line/column position of the first byte of the
// token at id. Positions are recomputed by counting newlines in the prefix;
// this is O(n) per call and acceptable given how rarely positions are asked
// for relative to how often tokens are walked.
func (s *Store) Start(id ID) Position { return s.position(s.starts[id]) }

// End returns the 1-based line/column position of the last byte covered by
// the token at id (one before the exclusive end of its half-open range; for
// an empty token, its start).
func (s *Store) End(id ID) Position {
	off := s.ends[id]
	if off > s.starts[id] {
		off--
	}
	return s.position(off)
}

func (s *Store) position(offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset && i < len(s.source); i++ {
		if s.source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Col: col, Offset: offset}
}

// Tokens returns the IDs of every non-comment, non-EOF token, in source
// order. This is the view the parser reads.
func (s *Store) Tokens() []ID {
	out := make([]ID, 0, len(s.kinds))
	for i, k := range s.kinds {
		if k == EOF || k.IsComment() {
			continue
		}
		out = append(out, ID(i))
	}
	return out
}

// Comments returns the IDs of every comment token, in source order. This is
// the view the formatter's comment cursor reads.
func (s *Store) Comments() []ID {
	out := make([]ID, 0)
	for i, k := range s.kinds {
		if k.IsComment() {
			out = append(out, ID(i))
		}
	}
	return out
}

// Diagnostic is a single human-readable lexical or syntactic error.
type Diagnostic struct {
	Message  string
	Position Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Position.Line, d.Position.Col, d.Message)
}

// Errors returns every lexical-error token rendered as a diagnostic.
func (s *Store) Errors() []Diagnostic {
	var out []Diagnostic
	for i, k := range s.kinds {
		if !k.IsError() {
			continue
		}
		id := ID(i)
		out = append(out, Diagnostic{
			Message:  errorMessage(k, s.Text(id)),
			Position: s.Start(id),
		})
	}
	return out
}

func errorMessage(k Kind, text string) string {
	switch k {
	case ErrorIllegalCharacter:
		return fmt.Sprintf("illegal character %q", text)
	case ErrorIllegalQident:
		return fmt.Sprintf("illegal character in quoted identifier %q", text)
	case ErrorUnclosedString:
		return "unterminated string literal"
	case ErrorUnclosedBlockComment:
		return "unterminated block comment"
	case ErrorUnclosedQIdent:
		return "unterminated quoted identifier"
	default:
		return "lexical error"
	}
}

// Dump renders every token as "kind(text)@line:col", one per line. Used by
// the --ast debug flag and by tests that want a readable token trace.
func (s *Store) Dump() string {
	var b strings.Builder
	for i := range s.kinds {
		id := ID(i)
		fmt.Fprintf(&b, "%s(%q)@%s\n", s.Kind(id), s.Text(id), s.Start(id))
	}
	return b.String()
}
