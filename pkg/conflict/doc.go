// Package conflict detects which intersection routes interfere with each other
// and turns the result into an undirected conflict adjacency keyed by lane.
//
// # Pipeline
//
// Detection runs in three steps:
//
//  1. [BuildMatrix] marks every declared route (entrance, exit) in a lanes×lanes
//     occupancy matrix. Routes that fall off the ring are skipped and reported
//     as [Diagnostic] values instead of failing the build.
//  2. [Resolver.Resolve] walks the route's entrance and exit spans (see package
//     lane) in both travel directions and collects every declared route whose
//     entrance lies in the entrance span and whose exit lies in the exit span.
//     The forward and backward results are merged into one sorted, duplicate-free
//     set of pairs.
//  3. [BuildAdjacency] keys each route by its entrance lane and lists the
//     entrance lanes of its conflicting pairs, dropping pairs that share the
//     route's own entrance.
//
// The conflict set of a route always contains the route itself because its own
// matrix cell is set. That self entry is removed only by [BuildAdjacency].
//
// # Route identity
//
// Routes are identified by entrance lane. When two routes share an entrance,
// the adjacency keeps the key at the position of the first route and the
// neighbours of the last one; [Resolver.ResolveAll] reports the collision as a
// [KindDuplicateEntrance] diagnostic.
//
// # Concurrency
//
// A built [Matrix] is read-only and safe for concurrent readers. [Adjacency]
// values are not safe for concurrent mutation.
package conflict
