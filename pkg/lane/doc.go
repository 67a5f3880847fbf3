// Package lane models an intersection as a ring of numbered lanes and computes
// the clockwise spans that bound which movements a route can interfere with.
//
// # Overview
//
// Lanes are numbered 0..n-1 clockwise around the intersection boundary. Lane
// n-1 is followed by lane 0. A [Route] is a movement from an entrance lane to
// an exit lane.
//
// For a route (e, x), the entrance span is the clockwise walk from e to x and
// the exit span is the clockwise walk from x back to e. Both walks include
// their end points:
//
//	r := lane.Ring{Lanes: 4}
//	r.EntranceSpan(lane.Route{Entrance: 0, Exit: 2}) // [0 1 2]
//	r.ExitSpan(lane.Route{Entrance: 0, Exit: 2})     // [2 3 0]
//
// A degenerate route whose entrance equals its exit yields a single-lane span.
// Spans over lanes outside the ring return [ErrLaneOutOfRange] rather than
// walking forever.
//
// # Concurrency
//
// [Ring] and [Route] are plain values and safe for concurrent use.
package lane
