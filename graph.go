package taskgraph

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// graph is the append-only arena described in spec section 3/4.1: it owns
// every node added since the last dispatch. Adding a node appends it to the
// arena, where it keeps a stable position; edge addition mutates the successor
// list of u and atomically bumps v's pending counter. No cycle check is
// performed here by default (spec section 4.1) -- that is the optional,
// off-by-default DetectCycles executor behavior layered on top in
// executor.go, grounded on the pack's Kahn's-algorithm topological sort.
type graph struct {
	name       string
	nodes      []*node
	dispatched bool // true once this graph has been captured by dispatch()
}

func newGraph(name string) *graph {
	return &graph{name: name}
}

func (g *graph) addNode(n *node) {
	g.nodes = append(g.nodes, n)
}

func (g *graph) addEdge(u, v *node) {
	u.addSuccessor(v)
}

func (g *graph) numNodes() int {
	return len(g.nodes)
}

// sourceNodes returns every node with a zero pending count, i.e. the
// frontier described in spec section 4.4 step 2.
func (g *graph) sourceNodes() []*node {
	var sources []*node
	for _, n := range g.nodes {
		if n.pendingCount() == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// topologicalOrder runs Kahn's algorithm over the graph's current edge
// structure, grounded on purpleidea-mgmt/pgraph.Graph.TopologicalSort. It is
// only used by the optional dev-mode cycle check (spec section 7: "an
// optional dev-mode cycle check, off by default").
func (g *graph) topologicalOrder() (order []*node, ok bool) {
	remaining := make(map[*node]int, len(g.nodes))
	var ready []*node
	for _, n := range g.nodes {
		remaining[n] = n.incoming
		if n.incoming == 0 {
			ready = append(ready, n)
		}
	}

	for len(ready) > 0 {
		last := len(ready) - 1
		n := ready[last]
		ready = ready[:last]
		order = append(order, n)
		for _, succ := range n.successors {
			remaining[succ]--
			if remaining[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	return order, len(order) == len(g.nodes)
}

// dump renders the graph exactly as specified in spec section 6: one
// paragraph per node in insertion order, giving the node's name, its
// dependent (incoming-edge) count, its successor count, and a
// `|--> task "NAME"` line per successor. Lines are newline-separated with no
// trailing newline.
func (g *graph) dump() string {
	var b strings.Builder
	for i, n := range g.nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Task %q [dependents:%d|successors:%d]", n.name, n.incoming, len(n.successors))
		for _, succ := range n.successors {
			b.WriteByte('\n')
			fmt.Fprintf(&b, "  |--> task %q", succ.name)
		}
	}
	return b.String()
}

// graphvizTitler title-cases the graph's Name for use as a Graphviz label,
// grounded on golang.org/x/text/cases. This is the one place this module
// does freeform text rendering, kept deliberately small so the teacher's
// golang.org/x/text dependency stays exercised without reaching into the
// spec-fixed dump() format (spec section 6), which is untouched by it.
var graphvizTitler = cases.Title(language.English)

// graphviz renders the current graph in Graphviz's `dot` language, grounded
// on purpleidea-mgmt/pgraph.Graph.Graphviz. This is purely additive
// observability (spec SPEC_FULL section 4): dump() remains the canonical,
// spec-exact textual format.
func (g *graph) graphviz() string {
	var b strings.Builder
	title := graphvizTitler.String(g.name)
	fmt.Fprintf(&b, "digraph %q {\n", title)
	fmt.Fprintf(&b, "\tlabel=%q;\n", title)
	for i, n := range g.nodes {
		label := n.name
		if label == "" {
			label = fmt.Sprintf("task%d", i)
		}
		fmt.Fprintf(&b, "\tn%d [label=%q];\n", i, label)
	}
	index := make(map[*node]int, len(g.nodes))
	for i, n := range g.nodes {
		index[n] = i
	}
	for i, n := range g.nodes {
		for _, succ := range n.successors {
			fmt.Fprintf(&b, "\tn%d -> n%d;\n", i, index[succ])
		}
	}
	b.WriteString("}\n")
	return b.String()
}
