package phase

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict"
)

// BuildGraph converts an adjacency into an undirected gonum graph. Every key
// and neighbour becomes a node. Self-loops are ignored and repeated edges
// collapse into one.
func BuildGraph(adj *conflict.Adjacency) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, l := range adj.Lanes() {
		g.AddNode(simple.Node(l))
	}
	for _, e := range adj.Edges() {
		g.SetEdge(g.NewEdge(simple.Node(e.A), simple.Node(e.B)))
	}
	return g
}

// Induce returns the subgraph of g on ids. IDs that are not nodes of g are
// ignored.
func Induce(g graph.Undirected, ids []int64) *simple.UndirectedGraph {
	sub := simple.NewUndirectedGraph()
	var kept []int64
	for _, id := range ids {
		if g.Node(id) == nil || sub.Node(id) != nil {
			continue
		}
		sub.AddNode(simple.Node(id))
		kept = append(kept, id)
	}
	for i, a := range kept {
		for _, b := range kept[i+1:] {
			if g.HasEdgeBetween(a, b) {
				sub.SetEdge(sub.NewEdge(simple.Node(a), simple.Node(b)))
			}
		}
	}
	return sub
}

// nodeIDs returns the node IDs of g in ascending order.
func nodeIDs(g graph.Graph) []int64 {
	var ids []int64
	nodes := g.Nodes()
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	slices.Sort(ids)
	return ids
}

// neighbors returns the IDs adjacent to id, excluding id itself.
func neighbors(g graph.Undirected, id int64) map[int64]bool {
	out := make(map[int64]bool)
	from := g.From(id)
	for from.Next() {
		if n := from.Node().ID(); n != id {
			out[n] = true
		}
	}
	return out
}
