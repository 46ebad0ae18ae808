package taskgraph

import (
	"strings"
	"testing"
)

func TestGraphAddNodeAndEdge(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", func() (interface{}, error) { return nil, nil }, false)
	b := newNode("B", func() (interface{}, error) { return nil, nil }, false)
	g.addNode(a)
	g.addNode(b)
	g.addEdge(a, b)

	if got := g.numNodes(); got != 2 {
		t.Fatalf("numNodes() = %d, want 2", got)
	}
	if got := b.pendingCount(); got != 1 {
		t.Fatalf("b.pendingCount() = %d, want 1", got)
	}
	if got := len(a.successors); got != 1 || a.successors[0] != b {
		t.Fatalf("a.successors = %v, want [b]", a.successors)
	}
}

func TestGraphDuplicateEdgesBumpPendingEachTime(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addEdge(a, b)
	g.addEdge(a, b)

	if got := b.pendingCount(); got != 2 {
		t.Fatalf("b.pendingCount() = %d, want 2 (no dedup per spec invariant iv)", got)
	}
	if got := len(a.successors); got != 2 {
		t.Fatalf("len(a.successors) = %d, want 2", got)
	}
}

func TestGraphSourceNodes(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	c := newNode("C", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addNode(c)
	g.addEdge(a, c)

	sources := g.sourceNodes()
	if len(sources) != 2 {
		t.Fatalf("sourceNodes() = %v, want 2 entries", sources)
	}
	seen := map[*node]bool{}
	for _, n := range sources {
		seen[n] = true
	}
	if !seen[a] || !seen[b] {
		t.Fatalf("sourceNodes() missing a source node: %v", sources)
	}
}

func TestGraphDumpFormat(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addEdge(a, b)

	want := "Task \"A\" [dependents:0|successors:1]\n" +
		"  |--> task \"B\"\n" +
		"Task \"B\" [dependents:1|successors:0]"
	if got := g.dump(); got != want {
		t.Fatalf("dump() = %q, want %q", got, want)
	}
}

func TestGraphDumpUnnamedNode(t *testing.T) {
	g := newGraph("g")
	n := newNode("", nil, false)
	g.addNode(n)

	want := "Task \"\" [dependents:0|successors:0]"
	if got := g.dump(); got != want {
		t.Fatalf("dump() = %q, want %q", got, want)
	}
}

func TestGraphTopologicalOrderDetectsCycle(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addEdge(a, b)
	g.addEdge(b, a)

	if _, ok := g.topologicalOrder(); ok {
		t.Fatal("topologicalOrder() ok = true for a graph with a cycle")
	}
}

func TestGraphTopologicalOrderAcceptsDag(t *testing.T) {
	g := newGraph("g")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	c := newNode("C", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addNode(c)
	g.addEdge(a, b)
	g.addEdge(b, c)

	order, ok := g.topologicalOrder()
	if !ok {
		t.Fatal("topologicalOrder() ok = false for a valid dag")
	}
	pos := map[*node]int{}
	for i, n := range order {
		pos[n] = i
	}
	if pos[a] > pos[b] || pos[b] > pos[c] {
		t.Fatalf("topologicalOrder() = %v, not a valid topological order", order)
	}
}

func TestGraphvizContainsNodesAndEdges(t *testing.T) {
	g := newGraph("mygraph")
	a := newNode("A", nil, false)
	b := newNode("B", nil, false)
	g.addNode(a)
	g.addNode(b)
	g.addEdge(a, b)

	out := g.graphviz()
	if out == "" {
		t.Fatal("graphviz() returned empty string")
	}
	if got := out[:len("digraph")]; got != "digraph" {
		t.Fatalf("graphviz() = %q, want it to start with \"digraph\"", out)
	}
	for _, want := range []string{`n0 [label="A"];`, `n1 [label="B"];`, `n0 -> n1;`} {
		if !strings.Contains(out, want) {
			t.Fatalf("graphviz() = %q, want it to contain %q", out, want)
		}
	}
}
