package dag

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/darianrosebrook/portfolio-sub007/pkg/index"
)

func build(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := New(nil)
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q) = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v) = %v", e, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Errorf("Node(a) = %v, %v; want node with non-nil Meta", n, ok)
	}
}

func TestAddEdge(t *testing.T) {
	g := build(t, []string{"a", "b"}, nil)
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x->a) = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a->x) = %v, want ErrUnknownTargetNode", err)
	}
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 after duplicate add", g.EdgeCount())
	}
	if got := g.Parents("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Parents(b) = %v", got)
	}

	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 0 || g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Errorf("RemoveEdge left edges behind: %v", g.Edges())
	}
}

func TestSourcesSinks(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"c", "b"}})
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Sources() = %v", got)
	}
	if got := NodeIDs(g.Sinks()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Sinks() = %v", got)
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  [][]string
	}{
		{"none", []string{"a", "b"}, [][2]string{{"a", "b"}}, nil},
		{"self", []string{"a"}, [][2]string{{"a", "a"}}, [][]string{{"a", "a"}}},
		{"pair", []string{"a", "b"}, [][2]string{{"b", "a"}, {"a", "b"}}, [][]string{{"a", "b", "a"}}},
		{
			"two separate",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "a"}, {"d", "c"}, {"c", "d"}},
			[][]string{{"a", "b", "a"}, {"c", "d", "c"}},
		},
		{
			"tail into cycle",
			[]string{"x", "m", "n"},
			[][2]string{{"x", "m"}, {"m", "n"}, {"n", "m"}},
			[][]string{{"m", "n", "m"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			got := g.Cycles()
			if len(got) != len(tt.want) {
				t.Fatalf("Cycles() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("Cycles()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			wantErr := len(tt.want) > 0
			if err := g.Validate(); (err != nil) != wantErr {
				t.Errorf("Validate() = %v, want error %v", err, wantErr)
			}
		})
	}
}

func TestCanonicalCycle(t *testing.T) {
	tests := []struct {
		in, want []string
	}{
		{[]string{"c", "a", "b", "c"}, []string{"a", "b", "c", "a"}},
		{[]string{"b", "a"}, []string{"a", "b", "a"}},
		{[]string{"a", "a"}, []string{"a", "a"}},
		{nil, nil},
	}
	for _, tt := range tests {
		in := slices.Clone(tt.in)
		if got := CanonicalCycle(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("CanonicalCycle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !slices.Equal(in, tt.in) {
			t.Errorf("CanonicalCycle modified its input")
		}
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := build(t, []string{"d", "c", "b", "a"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})
	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder() = %v", err)
	}
	if !slices.Equal(order, []string{"d", "b", "c", "a"}) {
		t.Errorf("TopologicalOrder() = %v", order)
	}

	cyclic := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	if _, err := cyclic.TopologicalOrder(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("TopologicalOrder() on cycle = %v, want ErrGraphHasCycle", err)
	}
}

func TestBreakCycles(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if removed := BreakCycles(g); removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}

func TestFromIndex(t *testing.T) {
	ix := index.Build(map[string]any{
		"color": map[string]any{
			"$type":   "color",
			"primary": map[string]any{"$value": "#3366cc"},
			"shadow": map[string]any{
				"$type":  "shadow",
				"$value": map[string]any{"color": "{color.primary}", "offsetX": "{space}"},
			},
		},
		"space": map[string]any{"sm": map[string]any{"$value": "4px"}},
	})
	g := FromIndex(ix)

	if got := g.Children("color.shadow"); !slices.Equal(got, []string{"color.primary", "space"}) {
		t.Errorf("Children(color.shadow) = %v", got)
	}
	n, ok := g.Node("space")
	if !ok || n.Kind != NodeKindGroup {
		t.Errorf("Node(space) = %v, want group node", n)
	}
	p, _ := g.Node("color.primary")
	if p.Meta["type"] != "color" {
		t.Errorf("color.primary type meta = %v", p.Meta["type"])
	}
}

func TestToDOT(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	_ = g.AddNode(Node{ID: "gone", Kind: NodeKindMissing})
	dot := ToDOT(g, DOTOptions{Detailed: true, Highlight: []string{"a", "b"}})

	for _, want := range []string{
		"digraph tokens {",
		`"a" -> "b" [color=red];`,
		`"gone" [label="gone\nmissing", style="rounded,dashed", color=red, fontcolor=red];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}
