package mis

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph"
)

// Strategy names accepted by [Lookup].
const (
	NameGreedy = "greedy"
	NameExact  = "exact"

	// DefaultStrategy is used when no strategy is named.
	DefaultStrategy = NameExact

	// DefaultMaxExactNodes bounds the graphs [Exact] solves directly.
	DefaultMaxExactNodes = 24
)

var (
	// ErrGraphTooLarge is returned by [Exact] without a fallback when the
	// graph has more than MaxNodes nodes.
	ErrGraphTooLarge = errors.New("graph too large for exact search")

	// ErrUnknownStrategy is returned by [Lookup] for unrecognised names.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy computes an independent set of g: node IDs no two of which are
// joined by an edge. Implementations document whether the set is maximum,
// maximal, or neither.
type Strategy interface {
	Name() string
	IndependentSet(g graph.Undirected) ([]int64, error)
}

// Names returns the registered strategy names, sorted.
func Names() []string { return []string{NameExact, NameGreedy} }

// Lookup returns the strategy registered under name. An empty name selects
// [DefaultStrategy]. maxExact configures [Exact]; values ≤ 0 use
// [DefaultMaxExactNodes]. The exact strategy falls back to [Greedy].
func Lookup(name string, maxExact int) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", NameExact:
		return NewExact(maxExact), nil
	case NameGreedy:
		return Greedy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
}

// IsIndependent reports whether no two IDs in set share an edge in g and
// every ID is a node of g.
func IsIndependent(g graph.Undirected, set []int64) bool {
	for i, a := range set {
		if g.Node(a) == nil {
			return false
		}
		for _, b := range set[i+1:] {
			if a == b || g.HasEdgeBetween(a, b) {
				return false
			}
		}
	}
	return true
}

// adjacency copies g into a plain neighbour map without self-loops.
func adjacency(g graph.Undirected) map[int64]map[int64]bool {
	adj := make(map[int64]map[int64]bool)
	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		nbrs := make(map[int64]bool)
		from := g.From(id)
		for from.Next() {
			if nid := from.Node().ID(); nid != id {
				nbrs[nid] = true
			}
		}
		adj[id] = nbrs
	}
	return adj
}

func sortedIDs(nodes []graph.Node) []int64 {
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)
	return ids
}

func sortedKeys(m map[int64]map[int64]bool) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
