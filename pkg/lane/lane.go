package lane

import (
	"errors"
	"fmt"
)

var (
	// ErrLaneOutOfRange is returned when a lane lies outside [0, Lanes).
	ErrLaneOutOfRange = errors.New("lane out of range")

	// ErrEmptyRing is returned by span operations on a ring without lanes.
	ErrEmptyRing = errors.New("ring has no lanes")
)

// Route is a movement through the intersection from Entrance to Exit.
// A route is identified by its entrance lane when grouping.
type Route struct {
	Entrance int `json:"entrance" toml:"entrance"`
	Exit     int `json:"exit" toml:"exit"`
}

// Reverse returns the route travelled in the opposite direction.
func (r Route) Reverse() Route { return Route{Entrance: r.Exit, Exit: r.Entrance} }

// Degenerate reports whether the route enters and exits on the same lane.
func (r Route) Degenerate() bool { return r.Entrance == r.Exit }

func (r Route) String() string { return fmt.Sprintf("%d->%d", r.Entrance, r.Exit) }

// Ring is a circular arrangement of Lanes lanes numbered clockwise.
type Ring struct {
	Lanes int
}

// Contains reports whether l is a lane on the ring.
func (g Ring) Contains(l int) bool { return l >= 0 && l < g.Lanes }

// ContainsRoute reports whether both ends of r lie on the ring.
func (g Ring) ContainsRoute(r Route) bool { return g.Contains(r.Entrance) && g.Contains(r.Exit) }

// Next returns the clockwise successor of l.
func (g Ring) Next(l int) int { return (l + 1) % g.Lanes }

// Span walks clockwise from one lane to another, inclusive of both ends.
// The result holds at most Lanes entries.
func (g Ring) Span(from, to int) ([]int, error) {
	if g.Lanes <= 0 {
		return nil, ErrEmptyRing
	}
	if !g.Contains(from) {
		return nil, fmt.Errorf("span start %d on %d lanes: %w", from, g.Lanes, ErrLaneOutOfRange)
	}
	if !g.Contains(to) {
		return nil, fmt.Errorf("span end %d on %d lanes: %w", to, g.Lanes, ErrLaneOutOfRange)
	}

	span := []int{from}
	for cur := from; cur != to; {
		cur = g.Next(cur)
		span = append(span, cur)
	}
	return span, nil
}

// EntranceSpan returns the lanes from r.Entrance clockwise to r.Exit.
func (g Ring) EntranceSpan(r Route) ([]int, error) { return g.Span(r.Entrance, r.Exit) }

// ExitSpan returns the lanes from r.Exit clockwise to r.Entrance.
func (g Ring) ExitSpan(r Route) ([]int, error) { return g.Span(r.Exit, r.Entrance) }
