package dag

import (
	"slices"
	"strings"
)

// Cycles returns the reference cycles found by a depth-first search with an
// explicit recursion stack. Each cycle is closed (its first path is repeated
// at the end), rotated to start at its smallest path, and reported once.
// The result is sorted.
//
// Every strongly connected component that contains a cycle yields at least
// one; not every elementary cycle of a dense component is listed.
func (g *Graph) Cycles() [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	onStack := make(map[string]int)
	var stack []string
	seen := make(map[string]bool)
	var cycles [][]string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		onStack[id] = len(stack)
		stack = append(stack, id)
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cycle := append(slices.Clone(stack[onStack[child]:]), child)
				cycle = CanonicalCycle(cycle)
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, id)
		color[id] = black
	}

	for _, id := range g.ids() {
		if color[id] == white {
			dfs(id)
		}
	}

	slices.SortFunc(cycles, func(a, b []string) int { return slices.Compare(a, b) })
	return cycles
}

// CanonicalCycle rotates a cycle so it starts at its smallest path and
// returns it in closed form. Both closed ([a b a]) and open ([a b]) input
// is accepted. The input is not modified.
func CanonicalCycle(cycle []string) []string {
	open := cycle
	if n := len(open); n > 1 && open[0] == open[n-1] {
		open = open[:n-1]
	}
	if len(open) == 0 {
		return nil
	}
	start := 0
	for i, p := range open {
		if p < open[start] {
			start = i
		}
	}
	out := make([]string, 0, len(open)+1)
	out = append(out, open[start:]...)
	out = append(out, open[:start]...)
	return append(out, out[0])
}

// TopologicalOrder returns node IDs with every referenced path before the
// tokens that reference it, so values can be computed in order. Ties are
// broken by ID. It returns ErrGraphHasCycle when no order exists.
func (g *Graph) TopologicalOrder() ([]string, error) {
	remaining := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		remaining[id] = len(g.outgoing[id])
	}

	var ready []string
	for _, id := range g.ids() {
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var next []string
		for _, parent := range g.incoming[id] {
			remaining[parent]--
			if remaining[parent] == 0 {
				next = append(next, parent)
			}
		}
		slices.Sort(next)
		ready = append(ready, next...)
	}

	if len(order) != len(g.nodes) {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}

// BreakCycles removes one back edge per cycle found by a depth-first search
// and returns the number removed. Afterwards the graph is acyclic, which
// lets cyclic documents still be drawn as a layered diagram.
func BreakCycles(g *Graph) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}
