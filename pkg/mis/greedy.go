package mis

import (
	"slices"

	"gonum.org/v1/gonum/graph"
)

// Greedy is the minimum-degree greedy heuristic. The set it returns is
// maximal and holds at least n/(Δ+1) nodes, where Δ is the maximum degree.
type Greedy struct{}

// Name returns [NameGreedy].
func (Greedy) Name() string { return NameGreedy }

// IndependentSet selects nodes by ascending residual degree.
func (Greedy) IndependentSet(g graph.Undirected) ([]int64, error) {
	adj := adjacency(g)

	var set []int64
	for len(adj) > 0 {
		pick := minDegree(adj)
		set = append(set, pick)

		drop := []int64{pick}
		for n := range adj[pick] {
			drop = append(drop, n)
		}
		for _, id := range drop {
			for n := range adj[id] {
				delete(adj[n], id)
			}
			delete(adj, id)
		}
	}
	slices.Sort(set)
	return set, nil
}

func minDegree(adj map[int64]map[int64]bool) int64 {
	ids := sortedKeys(adj)
	best := ids[0]
	for _, id := range ids[1:] {
		if len(adj[id]) < len(adj[best]) {
			best = id
		}
	}
	return best
}
