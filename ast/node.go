package ast

import (
	"fmt"
	"strings"

	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// Node is one segment of output text. A node is either a leaf (Text) or an
// interior node (Children); declaration and reference nodes additionally
// carry location information that the compiler uses to route output into
// files and to collect cross-file edges.
type Node struct {
	text     string
	children []*Node

	// loc marks a declaration node: this node is the body of a top-level
	// declaration at loc.
	loc *DeclarationLocation

	// refersTo marks a reference node: the surrounding output depends on the
	// declaration at refersTo, possibly in another file. refersToNode
	// optionally carries the declaration node itself.
	refersTo     *DeclarationLocation
	refersToNode *Node

	// Origin, for debugging and source-map attribution.
	typ  *typemodel.Type
	path typepath.Path
	pos  *typemodel.Pos

	noCache bool
}

// New builds a plain node from parts. Each part is a string or a *Node;
// strings become leaf children. Anything else panics: node shapes are
// programming errors, not input errors.
func New(parts ...any) *Node {
	n := &Node{}
	n.children = convertParts(parts)
	return n
}

// Text builds a leaf node.
func Text(s string) *Node { return &Node{text: s} }

// NewDeclaration builds a declaration node for loc from parts.
func NewDeclaration(loc DeclarationLocation, parts ...any) *Node {
	n := New(parts...)
	n.loc = &loc
	return n
}

// NewReference builds a reference node to loc from parts. Reference nodes
// default to not being cached: how a reference renders depends on where it
// is rendered from.
func NewReference(loc DeclarationLocation, parts ...any) *Node {
	n := New(parts...)
	n.refersTo = &loc
	n.noCache = true
	return n
}

func convertParts(parts []any) []*Node {
	if len(parts) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, &Node{text: v})
		case *Node:
			if v != nil {
				out = append(out, v)
			}
		default:
			panic(fmt.Sprintf("ast: node part must be string or *Node, got %T", p))
		}
	}
	return out
}

// Add appends children (strings or *Node) and returns n.
func (n *Node) Add(parts ...any) *Node {
	n.children = append(n.children, convertParts(parts)...)
	return n
}

// Leaf reports whether n is a pure text leaf.
func (n *Node) Leaf() bool { return len(n.children) == 0 }

// Text returns the leaf text.
func (n *Node) Text() string { return n.text }

// Children returns the ordered children.
func (n *Node) Children() []*Node { return n.children }

// Location returns the declaration location when n is a declaration node.
func (n *Node) Location() (DeclarationLocation, bool) {
	if n.loc == nil {
		return DeclarationLocation{}, false
	}
	return *n.loc, true
}

// IsDeclaration reports whether n is a declaration node.
func (n *Node) IsDeclaration() bool { return n.loc != nil }

// RefersTo returns the referenced location when n is a reference node.
func (n *Node) RefersTo() (DeclarationLocation, bool) {
	if n.refersTo == nil {
		return DeclarationLocation{}, false
	}
	return *n.refersTo, true
}

// IsReference reports whether n is a reference node.
func (n *Node) IsReference() bool { return n.refersTo != nil }

// RefersToDeclaration returns the referenced declaration node, when known.
func (n *Node) RefersToDeclaration() *Node { return n.refersToNode }

// AsReference converts n into a reference node to loc, keeping its content.
// The compiler uses this to wrap backend output so reference edges stay
// collectable.
func (n *Node) AsReference(loc DeclarationLocation, decl *Node) *Node {
	n.refersTo = &loc
	n.refersToNode = decl
	return n
}

// WithOrigin records the type and path the node was compiled from.
func (n *Node) WithOrigin(t *typemodel.Type, p typepath.Path) *Node {
	n.typ = t
	n.path = p
	return n
}

// Origin returns the originating type and path, when recorded.
func (n *Node) Origin() (*typemodel.Type, typepath.Path) { return n.typ, n.path }

// At records the source position the node's text came from.
func (n *Node) At(pos typemodel.Pos) *Node {
	if !pos.IsZero() {
		n.pos = &pos
	}
	return n
}

// Pos returns the recorded source position, if any.
func (n *Node) Pos() (typemodel.Pos, bool) {
	if n.pos == nil {
		return typemodel.Pos{}, false
	}
	return *n.pos, true
}

// DoNotCache marks the node as context-dependent: the compiler will not
// memoize it and the backend will be asked again at the next encounter.
func (n *Node) DoNotCache() *Node {
	n.noCache = true
	return n
}

// ShouldCache reports whether the compiler may memoize this node.
func (n *Node) ShouldCache() bool { return !n.noCache }

// String renders the concatenated text without source mapping. Diagnostics
// and tests use it; real output goes through Serialize.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	b.WriteString(n.text)
	for _, c := range n.children {
		c.render(b)
	}
}
