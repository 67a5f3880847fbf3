package conflict

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// Entry is one route together with every declared route it conflicts with.
type Entry struct {
	Route     lane.Route   `json:"route"`
	Conflicts []lane.Route `json:"conflicts"`
}

// Resolver finds conflicting routes by scanning a [Matrix] over the spans of
// a route in both travel directions.
type Resolver struct {
	matrix *Matrix
	ring   lane.Ring
}

// NewResolver creates a resolver reading from m.
func NewResolver(m *Matrix) *Resolver {
	return &Resolver{matrix: m, ring: lane.Ring{Lanes: m.Lanes()}}
}

// Resolve returns the conflict set of r: every declared (e, x) with e in the
// entrance span and x in the exit span of r, unioned with the same scan over
// the reversed route. The result is sorted by entrance then exit and holds no
// duplicates, so repeated calls return equal slices.
func (rs *Resolver) Resolve(r lane.Route) ([]lane.Route, error) {
	forward, err := rs.scan(r)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", r, err)
	}
	backward, err := rs.scan(r.Reverse())
	if err != nil {
		return nil, fmt.Errorf("route %s reversed: %w", r, err)
	}

	pairs := append(forward, backward...)
	slices.SortFunc(pairs, compareRoutes)
	return slices.Compact(pairs), nil
}

// ResolveAll resolves every route in order. Routes that are not on the ring
// are left out; [BuildMatrix] already reports them. Routes reusing an entrance
// lane are kept and reported as [KindDuplicateEntrance]. Any other resolution
// failure stops the scan and is returned.
func (rs *Resolver) ResolveAll(routes []lane.Route) ([]Entry, []Diagnostic, error) {
	var (
		entries []Entry
		diags   []Diagnostic
		seen    = make(map[int]bool, len(routes))
	)
	for i, r := range routes {
		pairs, err := rs.Resolve(r)
		if errors.Is(err, lane.ErrLaneOutOfRange) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve route #%d: %w", i, err)
		}
		if seen[r.Entrance] {
			diags = append(diags, Diagnostic{Kind: KindDuplicateEntrance, Index: i, Route: r, Lanes: rs.ring.Lanes})
		}
		seen[r.Entrance] = true
		entries = append(entries, Entry{Route: r, Conflicts: pairs})
	}
	return entries, diags, nil
}

func (rs *Resolver) scan(r lane.Route) ([]lane.Route, error) {
	entrances, err := rs.ring.EntranceSpan(r)
	if err != nil {
		return nil, err
	}
	exits, err := rs.ring.ExitSpan(r)
	if err != nil {
		return nil, err
	}

	var found []lane.Route
	for _, e := range entrances {
		for _, x := range exits {
			if rs.matrix.Has(e, x) {
				found = append(found, lane.Route{Entrance: e, Exit: x})
			}
		}
	}
	return found, nil
}

func compareRoutes(a, b lane.Route) int {
	if c := cmp.Compare(a.Entrance, b.Entrance); c != 0 {
		return c
	}
	return cmp.Compare(a.Exit, b.Exit)
}
