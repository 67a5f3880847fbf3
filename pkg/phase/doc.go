// Package phase groups routes into sets that can run in the same signal phase.
//
// For every lane in a conflict adjacency (see package conflict), [Finder.Find]
// removes the lane and all lanes it conflicts with, induces the subgraph on
// what remains, and asks a [mis.Strategy] for an independent set of it. That
// set is the lane's compatibility group: routes that conflict neither with the
// lane nor with each other. When nothing remains, or the strategy returns an
// empty set, the group falls back to the lane alone.
//
// Groups are emitted in ascending lane order. The lane itself is never part of
// its own Members except in the fallback case.
//
// Strategy failures, and strategy results that are not independent subsets of
// the candidates, abort Find with an error coded SOLVER_FAILURE.
package phase
