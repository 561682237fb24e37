// Package index builds the flat path map of a merged token document.
//
// [Build] walks the document once, depth-first with keys in sorted order,
// and classifies every object node as a group or a token by the presence of
// "$value". Nothing downstream inspects raw maps to make that decision
// again.
package index

import (
	"slices"

	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// Kind distinguishes tokens from groups.
type Kind int

const (
	// KindGroup nodes have no "$value" and exist to nest other nodes.
	KindGroup Kind = iota
	// KindToken nodes carry a "$value".
	KindToken
)

func (k Kind) String() string {
	if k == KindToken {
		return "token"
	}
	return "group"
}

// Node is one addressable object in the document.
type Node struct {
	Path string
	Kind Kind

	// Type is the canonical type, declared on the node or inherited from
	// the nearest ancestor group. Empty when neither declares one.
	Type token.Type
	// Declared is "$type" as written on this node, before canonicalization.
	Declared token.Type
	// Inherited is true when Type came from an ancestor.
	Inherited bool

	Value       any            // raw "$value"; nil for groups
	Extensions  any            // raw "$extensions", usually an object
	Description string         // "$description" when it is a string
	Deprecated  any            // "$deprecated": a bool or a reason string
	Raw         map[string]any // the node object itself
}

// IsToken reports whether the node carries a value.
func (n *Node) IsToken() bool { return n.Kind == KindToken }

// Malformed is a non-object value found where a node was expected.
type Malformed struct {
	Path  string
	Value any
}

// Index is the flat view of a document.
type Index struct {
	nodes     map[string]*Node
	order     []*Node
	tokens    []*Node
	malformed []Malformed
}

// Build indexes doc. The root object itself is not addressable; its "$type",
// if any, is inherited by top-level nodes.
func Build(doc map[string]any) *Index {
	ix := &Index{nodes: make(map[string]*Node)}
	var rootType token.Type
	if s, ok := doc[token.KeyType].(string); ok {
		rootType = token.Type(s).Canonical()
	}
	ix.walk(doc, "", rootType)
	return ix
}

func (ix *Index) walk(obj map[string]any, prefix string, inherited token.Type) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if !token.IsReserved(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	for _, k := range keys {
		path := token.Join(prefix, k)
		child, ok := obj[k].(map[string]any)
		if !ok {
			ix.malformed = append(ix.malformed, Malformed{Path: path, Value: obj[k]})
			continue
		}

		n := &Node{Path: path, Type: inherited, Inherited: inherited != "", Raw: child}
		if s, ok := child[token.KeyType].(string); ok {
			n.Declared = token.Type(s)
			n.Type = n.Declared.Canonical()
			n.Inherited = false
		}
		if v, ok := child[token.KeyValue]; ok {
			n.Kind = KindToken
			n.Value = v
		}
		n.Extensions = child[token.KeyExtensions]
		n.Description, _ = child[token.KeyDescription].(string)
		n.Deprecated = child[token.KeyDeprecated]

		ix.nodes[path] = n
		ix.order = append(ix.order, n)
		if n.IsToken() {
			ix.tokens = append(ix.tokens, n)
		}
		ix.walk(child, path, n.Type)
	}
}

// Lookup returns the node at path.
func (ix *Index) Lookup(path string) (*Node, bool) {
	n, ok := ix.nodes[path]
	return n, ok
}

// Nodes returns every node, groups and tokens, in walk order.
func (ix *Index) Nodes() []*Node { return ix.order }

// Tokens returns every token in walk order.
func (ix *Index) Tokens() []*Node { return ix.tokens }

// Malformed returns the non-object values found in node position.
func (ix *Index) Malformed() []Malformed { return ix.malformed }

// Len returns the number of tokens.
func (ix *Index) Len() int { return len(ix.tokens) }

// Children returns the direct child nodes of path in walk order. The empty
// path returns top-level nodes.
func (ix *Index) Children(path string) []*Node {
	var out []*Node
	for _, n := range ix.order {
		if token.Parent(n.Path) == path {
			out = append(out, n)
		}
	}
	return out
}
