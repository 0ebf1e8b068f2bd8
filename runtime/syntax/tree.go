package syntax

import "github.com/mofmt/mofmt/runtime/token"

// TreeID is a dense identifier into a Tree's node arena.
type TreeID int

// noParent marks the root node, which has no parent.
const noParent TreeID = -1

// Child is either a subtree or a leaf token. Exactly one of the two fields
// is meaningful; IsToken reports which.
type Child struct {
	tree    TreeID
	tok     token.ID
	isToken bool
}

// TreeChild wraps a subtree ID as a Child.
func TreeChild(id TreeID) Child { return Child{tree: id} }

// TokenChild wraps a token ID as a Child.
func TokenChild(id token.ID) Child { return Child{tok: id, isToken: true} }

// IsToken reports whether this child is a leaf token rather than a subtree.
func (c Child) IsToken() bool { return c.isToken }

// Tree returns the subtree ID. Only valid when !IsToken().
func (c Child) Tree() TreeID { return c.tree }

// Token returns the token ID. Only valid when IsToken().
func (c Child) Token() token.ID { return c.tok }

type node struct {
	kind     Kind
	parent   TreeID
	children []Child
}

// Tree is the concrete syntax tree: a single arena of nodes plus the token
// store it references. Once built by Build it is read-only.
type Tree struct {
	tokens      *token.Store
	nodes       []node
	root        TreeID
	diagnostics []token.Diagnostic
}

// Tokens returns the token store this tree's leaves reference.
func (t *Tree) Tokens() *token.Store { return t.tokens }

// Diagnostics returns every syntactic error recorded while building the
// tree, in parse order.
func (t *Tree) Diagnostics() []token.Diagnostic { return t.diagnostics }

// Root returns the ID of the tree's root node.
func (t *Tree) Root() TreeID { return t.root }

// Kind returns the syntax kind of node n.
func (t *Tree) Kind(n TreeID) Kind { return t.nodes[n].kind }

// Parent returns the parent of n and whether n has one (false for the root).
func (t *Tree) Parent(n TreeID) (TreeID, bool) {
	p := t.nodes[n].parent
	return p, p != noParent
}

// Children returns the ordered children of n.
func (t *Tree) Children(n TreeID) []Child { return t.nodes[n].children }

// IsEmpty reports whether n has no children at all.
func (t *Tree) IsEmpty(n TreeID) bool { return len(t.nodes[n].children) == 0 }

// Start returns the first leaf token under n.
func (t *Tree) Start(n TreeID) token.ID {
	for {
		children := t.nodes[n].children
		if len(children) == 0 {
			// Childless nodes are pruned from their parent during Build and
			// never referenced as a Child, so a well-formed tree never
			// recurses into one; this only triggers on the (never pruned)
			// root of a fully empty parse.
			return 0
		}
		c := children[0]
		if c.IsToken() {
			return c.Token()
		}
		n = c.Tree()
	}
}

// End returns the last leaf token under n.
func (t *Tree) End(n TreeID) token.ID {
	for {
		children := t.nodes[n].children
		if len(children) == 0 {
			return 0
		}
		c := children[len(children)-1]
		if c.IsToken() {
			return c.Token()
		}
		n = c.Tree()
	}
}

// IsMultiline reports whether n's first and last leaf tokens lie on
// different source lines.
func (t *Tree) IsMultiline(n TreeID) bool {
	return t.tokens.Start(t.Start(n)).Line < t.tokens.Start(t.End(n)).Line
}

// Contains reports whether n has any descendant subtree of kind k
// (depth-first, short-circuiting on the first match).
func (t *Tree) Contains(n TreeID, k Kind) bool {
	for _, c := range t.nodes[n].children {
		if c.IsToken() {
			continue
		}
		if t.nodes[c.Tree()].kind == k {
			return true
		}
		if t.Contains(c.Tree(), k) {
			return true
		}
	}
	return false
}
