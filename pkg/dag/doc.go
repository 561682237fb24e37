// Package dag provides the token reference graph: a directed graph whose
// nodes are token paths and whose edges point from a token to every path
// its value references.
//
// # Overview
//
// Documents are trees, but values are not: "{color.primary}" inside
// color.accent adds an edge that the tree does not show. This package makes
// those edges explicit so they can be checked and drawn.
//
// # Basic Usage
//
// Build a graph from an indexed document with [FromIndex], or by hand with
// [New], [Graph.AddNode] and [Graph.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "color.accent"})
//	g.AddNode(dag.Node{ID: "color.primary"})
//	g.AddEdge(dag.Edge{From: "color.accent", To: "color.primary"})
//
// # Cycles
//
// [Graph.Cycles] walks the graph depth-first with an explicit recursion
// stack and reports each cycle once, rotated by [CanonicalCycle] to start at
// its smallest path. [Graph.TopologicalOrder] yields a dependency-first
// order for acyclic graphs and [BreakCycles] drops back edges when a
// drawable acyclic graph is needed anyway.
//
// # Rendering
//
// [ToDOT] emits Graphviz DOT; [RenderSVG] lays it out with the embedded
// Graphviz from github.com/goccy/go-graphviz.
//
// # Concurrency
//
// A [Graph] is not safe for concurrent mutation. Read-only use from several
// goroutines is fine once construction has finished.
package dag
