// Package mis provides independent-set strategies over gonum undirected graphs.
//
// Finding a maximum independent set is NP-hard, so callers pick a [Strategy]
// that states its own quality contract:
//
//   - [Greedy] repeatedly takes the node of smallest remaining degree (lowest
//     ID on ties) and discards its neighbours. It runs in O(n²) over the node
//     count, always returns a maximal independent set, and is deterministic.
//   - [Exact] returns a true maximum independent set by enumerating maximal
//     cliques of the complement graph with Bron–Kerbosch
//     (gonum.org/v1/gonum/graph/topo). It refuses graphs above MaxNodes and
//     hands them to its Fallback strategy, or fails with [ErrGraphTooLarge]
//     when no fallback is set. Equally large sets resolve to the
//     lexicographically smallest ID list, so results are deterministic.
//
// Every strategy returns node IDs sorted ascending and an empty result for an
// empty graph.
//
// Strategies are stateless values and may be shared between goroutines.
package mis
