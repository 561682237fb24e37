package dag

import (
	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

// FromIndex builds the reference graph of an indexed document. Every token
// becomes a node; every reference inside a token's value, nested ones
// included, becomes an edge. Referenced paths that are groups or do not
// exist are added as [NodeKindGroup] and [NodeKindMissing] nodes.
func FromIndex(ix *index.Index) *Graph {
	g := New(Metadata{"tokens": ix.Len()})
	for _, n := range ix.Tokens() {
		_ = g.AddNode(Node{ID: n.Path, Kind: NodeKindToken, Meta: Metadata{"type": string(n.Type)}})
	}
	for _, n := range ix.Tokens() {
		for _, ref := range token.References(n.Value) {
			if _, ok := g.Node(ref); !ok {
				kind := NodeKindMissing
				if target, ok := ix.Lookup(ref); ok && !target.IsToken() {
					kind = NodeKindGroup
				}
				_ = g.AddNode(Node{ID: ref, Kind: kind})
			}
			_ = g.AddEdge(Edge{From: n.Path, To: ref})
		}
	}
	return g
}
