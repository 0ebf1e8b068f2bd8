package parser

import (
	"fmt"

	"github.com/mofmt/mofmt/runtime/syntax"
	"github.com/mofmt/mofmt/runtime/token"
)

// StuckError is raised when the parser's lookahead budget is exhausted: a
// production looped without consuming a token. This is the only
// unrecoverable condition in the pipeline.
type StuckError struct {
	Pos token.Position
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("%s: parser stuck: no progress after repeated lookahead", e.Pos)
}

// sectionBreakers bounds element/equation/statement list loops during
// parsing and recovery.
var sectionBreakers = map[token.Kind]bool{
	token.Protected:  true,
	token.Public:     true,
	token.Initial:    true,
	token.Equation:   true,
	token.Algorithm:  true,
	token.End:        true,
	token.Annotation: true,
	token.External:   true,
}

const initialLives = 100

// parser walks a non-comment token view and emits a flat syntax.Event
// stream. It never builds a tree directly (see syntax.Build).
type parser struct {
	store  *token.Store
	toks   []token.ID // non-comment tokens plus trailing EOF sentinel
	pos    int
	events []syntax.Event
	lives  int
}

// Parse runs the recursive-descent parser over store starting from the
// stored-definition production and returns the built tree. Panics with
// *StuckError if the parser gets stuck; callers that want to recover from
// that fatal tier should wrap the call in a deferred recover().
func Parse(store *token.Store) *syntax.Tree {
	toks := store.Tokens()
	toks = append(toks, store.Last()) // EOF sentinel, always last
	p := &parser{store: store, toks: toks, lives: initialLives}
	p.storedDefinition()
	return syntax.Build(store, p.events)
}

// --- core primitives, grounded on the donor parser's at/current/advance/expect shape ---

func (p *parser) current() token.ID {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// nth returns the kind of the token n positions ahead of the cursor,
// decrementing the stuck-detection budget. Lookahead never rewinds past a
// consumed token.
func (p *parser) nth(n int) token.Kind {
	idx := p.pos + n
	p.lives--
	if p.lives <= 0 {
		panic(&StuckError{Pos: p.store.Start(p.current())})
	}
	if idx >= len(p.toks) {
		return token.EOF
	}
	return p.store.Kind(p.toks[idx])
}

func (p *parser) at(k token.Kind) bool { return p.nth(0) == k }

func (p *parser) atAny(ks ...token.Kind) bool {
	cur := p.nth(0)
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *parser) atEOF() bool { return p.nth(0) == token.EOF }

func (p *parser) isSectionBreaker() bool { return sectionBreakers[p.nth(0)] }

// enter opens a production node; its real kind is supplied to exit.
func (p *parser) enter() {
	p.events = append(p.events, syntax.Event{Evt: syntax.EventEnter})
}

func (p *parser) exit(kind syntax.Kind) {
	p.events = append(p.events, syntax.Event{Evt: syntax.EventExit, Kind: kind})
}

// advance consumes the current token unconditionally, resetting the stuck
// counter since real progress was made.
func (p *parser) advance() {
	tok := p.current()
	if p.pos < len(p.toks)-1 {
		p.pos++
	} else {
		p.pos = len(p.toks) - 1
	}
	p.events = append(p.events, syntax.Event{Evt: syntax.EventAdvance, Tok: tok})
	p.lives = initialLives
}

// expect consumes the current token if it matches k, else records a
// syntactic error without consuming. Returns whether it matched.
func (p *parser) expect(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	p.errorHere(fmt.Sprintf("expected %s, found %s", k, p.nth(0)))
	return false
}

// consume advances past the current token only if it matches k; used for
// optional prefixes like `final` or `each`.
func (p *parser) consume(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) errorHere(msg string) {
	p.events = append(p.events, syntax.Event{Evt: syntax.EventError, Tok: p.current(), Msg: msg})
}

// advanceWithError synthesises an Error-kinded subtree around the current
// token and advances past it — the parser's one way of recovering from an
// unexpected token inside a list loop. Grounded on the donor parser's
// advance_with_error, which wraps error()+advance() in its own enter/exit
// so the offending token is consumed exactly once, inside the Error node.
func (p *parser) advanceWithError(msg string) {
	p.enter()
	p.errorHere(msg)
	p.advance()
	p.exit(syntax.Error)
}
