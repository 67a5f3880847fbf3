package mis

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Exact finds a maximum independent set as a maximum clique of the
// complement graph. The zero value solves graphs up to
// [DefaultMaxExactNodes] nodes and fails on larger ones.
type Exact struct {
	// MaxNodes is the largest graph solved exactly; ≤ 0 means DefaultMaxExactNodes.
	MaxNodes int

	// Fallback handles graphs above MaxNodes. Nil makes them an error.
	Fallback Strategy
}

// NewExact returns an exact strategy with the given cutoff and a [Greedy]
// fallback.
func NewExact(maxNodes int) Exact {
	return Exact{MaxNodes: maxNodes, Fallback: Greedy{}}
}

// Name returns [NameExact].
func (Exact) Name() string { return NameExact }

// IndependentSet returns a maximum independent set of g, or defers to the
// fallback when g is larger than the cutoff.
func (e Exact) IndependentSet(g graph.Undirected) ([]int64, error) {
	ids := sortedIDs(graph.NodesOf(g.Nodes()))
	if len(ids) == 0 {
		return nil, nil
	}

	limit := e.MaxNodes
	if limit <= 0 {
		limit = DefaultMaxExactNodes
	}
	if len(ids) > limit {
		if e.Fallback == nil {
			return nil, fmt.Errorf("%d nodes exceeds limit of %d: %w", len(ids), limit, ErrGraphTooLarge)
		}
		return e.Fallback.IndependentSet(g)
	}

	var best []int64
	for _, clique := range topo.BronKerbosch(complement(g, ids)) {
		set := sortedIDs(clique)
		if len(set) > len(best) || (len(set) == len(best) && slices.Compare(set, best) < 0) {
			best = set
		}
	}
	return best, nil
}

// complement builds the graph on ids whose edges are exactly the non-edges of g.
func complement(g graph.Undirected, ids []int64) *simple.UndirectedGraph {
	c := simple.NewUndirectedGraph()
	for _, id := range ids {
		c.AddNode(simple.Node(id))
	}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if !g.HasEdgeBetween(a, b) {
				c.SetEdge(c.NewEdge(simple.Node(a), simple.Node(b)))
			}
		}
	}
	return c
}
