package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. Every node is a token path and paths are never empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [Graph.Validate] and
	// [Graph.TopologicalOrder] when the references form a cycle.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph,
// such as the token type shown in rendered labels. Metadata maps are never
// nil after AddNode or AddEdge.
type Metadata map[string]any

// NodeKind says what a path in the graph refers to.
type NodeKind int

const (
	// NodeKindToken is a token present in the document.
	NodeKindToken NodeKind = iota
	// NodeKindGroup is a group that some token references. Such a
	// reference is always an error.
	NodeKindGroup
	// NodeKindMissing is a referenced path that does not exist.
	NodeKindMissing
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindGroup:
		return "group"
	case NodeKindMissing:
		return "missing"
	}
	return "token"
}

// Node is a vertex of the reference graph, identified by token path.
type Node struct {
	ID   string   // token path
	Kind NodeKind // what the path resolves to
	Meta Metadata // arbitrary metadata (never nil after AddNode)
}

// IsToken reports whether the node is a real token.
func (n Node) IsToken() bool { return n.Kind == NodeKindToken }

// Edge points from a referencing token to the path it references.
type Edge struct {
	From string   // referencing token
	To   string   // referenced path
	Meta Metadata // arbitrary metadata (never nil after AddEdge)
}

// Graph is a directed graph of token references. Unlike a document tree it
// may contain cycles; finding them is one of its jobs.
//
// The zero value is not usable; use [New]. A Graph is not safe for
// concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> referenced IDs
	incoming map[string][]string // nodeID -> referencing IDs
	meta     Metadata
}

// New creates an empty graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node. It returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the ID is taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Adding the same
// edge twice is a no-op.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if slices.Contains(g.outgoing[e.From], e.To) {
		return nil
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
func (g *Graph) RemoveEdge(from, to string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID. The pointers refer to the graph's
// own nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, id := range g.ids() {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

func (g *Graph) ids() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the paths referenced by id. The slice is read-only.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the tokens that reference id. The slice is read-only.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of references made by the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of tokens referencing the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes nothing references, sorted by ID.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, n := range g.Nodes() {
		if len(g.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes that reference nothing (literal tokens, missing
// paths and groups), sorted by ID.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, n := range g.Nodes() {
		if len(g.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate returns ErrGraphHasCycle if any reference cycle exists.
func (g *Graph) Validate() error {
	if len(g.Cycles()) > 0 {
		return ErrGraphHasCycle
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
