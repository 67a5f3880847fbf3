package conflict

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// Edge is an undirected conflict between two lanes, with A < B.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Adjacency maps each route's entrance lane to the entrance lanes of the
// routes it conflicts with. Keys keep insertion order. Neighbour lists may
// hold duplicates; consumers treat them as a single edge.
type Adjacency struct {
	keys      []int
	neighbors map[int][]int
}

// NewAdjacency creates an empty adjacency.
func NewAdjacency() *Adjacency {
	return &Adjacency{neighbors: make(map[int][]int)}
}

// BuildAdjacency converts resolved entries into an adjacency. For each entry
// the key is the route's entrance; pairs whose entrance equals the key are
// the route's own cell (or a route sharing its entrance) and are dropped.
func BuildAdjacency(entries []Entry) *Adjacency {
	adj := NewAdjacency()
	for _, en := range entries {
		key := en.Route.Entrance
		adj.Set(key, lo.FilterMap(en.Conflicts, func(p lane.Route, _ int) (int, bool) {
			return p.Entrance, p.Entrance != key
		}))
	}
	return adj
}

// Set replaces the neighbours of key. A new key is appended to the key order;
// an existing key keeps its position.
func (a *Adjacency) Set(key int, neighbors []int) {
	if _, ok := a.neighbors[key]; !ok {
		a.keys = append(a.keys, key)
	}
	if neighbors == nil {
		neighbors = []int{}
	}
	a.neighbors[key] = neighbors
}

// Keys returns the keys in insertion order.
func (a *Adjacency) Keys() []int { return slices.Clone(a.keys) }

// Neighbors returns the neighbour list of key and whether key exists.
func (a *Adjacency) Neighbors(key int) ([]int, bool) {
	n, ok := a.neighbors[key]
	return slices.Clone(n), ok
}

// Len returns the number of keys.
func (a *Adjacency) Len() int { return len(a.keys) }

// Lanes returns every lane that appears as a key or a neighbour, ascending.
func (a *Adjacency) Lanes() []int {
	all := slices.Clone(a.keys)
	for _, k := range a.keys {
		all = append(all, a.neighbors[k]...)
	}
	all = lo.Uniq(all)
	slices.Sort(all)
	return all
}

// Edges returns the distinct undirected edges, sorted. Self-loops are skipped.
func (a *Adjacency) Edges() []Edge {
	var edges []Edge
	for _, k := range a.keys {
		for _, n := range a.neighbors[k] {
			if n == k {
				continue
			}
			edges = append(edges, Edge{A: min(k, n), B: max(k, n)})
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return slices.Compact(edges)
}

// Map returns a copy of the adjacency as a plain map.
func (a *Adjacency) Map() map[int][]int {
	out := make(map[int][]int, len(a.neighbors))
	for k, v := range a.neighbors {
		out[k] = slices.Clone(v)
	}
	return out
}
