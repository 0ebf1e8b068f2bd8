package syntax

import "github.com/mofmt/mofmt/runtime/token"

// EventKind identifies what an Event does to the tree under construction.
type EventKind uint8

const (
	// EventEnter opens a new node. The node's kind is initially Error and is
	// rewritten to the kind carried by the matching EventExit — productions
	// don't have to know they are going to fail until exit time.
	EventEnter EventKind = iota
	EventExit
	EventAdvance
	EventError
)

// Event is one step of the flat syntax event stream a parser produces.
type Event struct {
	Evt  EventKind
	Kind Kind     // meaningful for EventExit: the kind given to the node it closes
	Tok  token.ID // meaningful for EventAdvance/EventError
	Msg  string   // meaningful for EventError
}

// Build converts an event stream into a Tree. It is a stack-based
// algorithm: EventEnter pushes a new node, EventAdvance appends a token
// child to the node on top of the stack, EventExit pops the top node and
// appends it as a subtree child of its new parent — unless it has zero
// children, in which case it is dropped (empty-production pruning).
// EventError records a diagnostic against its token without touching the
// tree or the stack; a production that wants the offending token reified
// as a recovered Error subtree wraps its own EventError in an
// EventEnter/EventExit(Error) pair.
//
// Exactly one root node must remain when the stream is exhausted.
func Build(tokens *token.Store, events []Event) *Tree {
	t := &Tree{tokens: tokens}
	var stack []TreeID

	push := func(kind Kind) TreeID {
		id := TreeID(len(t.nodes))
		t.nodes = append(t.nodes, node{kind: kind, parent: noParent})
		stack = append(stack, id)
		return id
	}
	top := func() TreeID { return stack[len(stack)-1] }
	appendChild := func(c Child) {
		id := top()
		t.nodes[id].children = append(t.nodes[id].children, c)
	}

	for _, ev := range events {
		switch ev.Evt {
		case EventEnter:
			push(Error)
		case EventAdvance:
			appendChild(TokenChild(ev.Tok))
		case EventError:
			t.diagnostics = append(t.diagnostics, token.Diagnostic{
				Message:  ev.Msg,
				Position: tokens.Start(ev.Tok),
			})
		case EventExit:
			id := top()
			t.nodes[id].kind = ev.Kind
			stack = stack[:len(stack)-1]
			if len(t.nodes[id].children) == 0 {
				// Empty production: drop it from the parent entirely.
				continue
			}
			if len(stack) > 0 {
				parent := top()
				t.nodes[id].parent = parent
				appendChild(TreeChild(id))
			} else {
				t.root = id
			}
		}
	}
	return t
}
