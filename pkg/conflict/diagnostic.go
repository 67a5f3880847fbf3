package conflict

import (
	"fmt"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// DiagnosticKind classifies a malformed-input report.
type DiagnosticKind string

const (
	// KindOutOfRange marks a route with an entrance or exit outside the ring.
	KindOutOfRange DiagnosticKind = "out_of_range"

	// KindDuplicateEntrance marks a route whose entrance lane was already used
	// by an earlier route.
	KindDuplicateEntrance DiagnosticKind = "duplicate_entrance"
)

// Diagnostic is an advisory report about a route that was skipped or may not
// behave as the caller expects. Diagnostics never stop processing.
type Diagnostic struct {
	Kind  DiagnosticKind `json:"kind"`
	Index int            `json:"index"` // position of the route in the input list
	Route lane.Route     `json:"route"`
	Lanes int            `json:"lanes"`
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case KindOutOfRange:
		return fmt.Sprintf("invalid indices: entrance=%d, exit=%d, lanes=%d (route #%d skipped)",
			d.Route.Entrance, d.Route.Exit, d.Lanes, d.Index)
	case KindDuplicateEntrance:
		return fmt.Sprintf("route #%d (%s) reuses entrance lane %d; it replaces the earlier route's conflicts",
			d.Index, d.Route, d.Route.Entrance)
	default:
		return fmt.Sprintf("%s: route #%d (%s)", d.Kind, d.Index, d.Route)
	}
}
