package conflict

import (
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// Matrix is a lanes×lanes occupancy matrix. Cell [e][x] is set iff a declared
// route runs from entrance e to exit x. It is immutable once built.
type Matrix struct {
	lanes int
	cells []bool // row-major
}

// BuildMatrix marks every route of routes on a ring of the given size.
// Routes with an entrance or exit outside [0, lanes) are skipped and returned
// as diagnostics in input order. A non-positive lane count yields an empty
// matrix that reports every route.
func BuildMatrix(routes []lane.Route, lanes int) (*Matrix, []Diagnostic) {
	if lanes < 0 {
		lanes = 0
	}
	m := &Matrix{lanes: lanes, cells: make([]bool, lanes*lanes)}
	ring := lane.Ring{Lanes: lanes}

	var diags []Diagnostic
	for i, r := range routes {
		if !ring.ContainsRoute(r) {
			diags = append(diags, Diagnostic{Kind: KindOutOfRange, Index: i, Route: r, Lanes: lanes})
			continue
		}
		m.cells[r.Entrance*lanes+r.Exit] = true
	}
	return m, diags
}

// Lanes returns the ring size the matrix was built for.
func (m *Matrix) Lanes() int { return m.lanes }

// Has reports whether a route from e to x was declared.
// Out-of-range queries are a caller bug; they report false and never panic.
func (m *Matrix) Has(e, x int) bool {
	if e < 0 || e >= m.lanes || x < 0 || x >= m.lanes {
		return false
	}
	return m.cells[e*m.lanes+x]
}

// Cells returns the set cells as routes in row-major order.
func (m *Matrix) Cells() []lane.Route {
	var out []lane.Route
	for e := 0; e < m.lanes; e++ {
		for x := 0; x < m.lanes; x++ {
			if m.cells[e*m.lanes+x] {
				out = append(out, lane.Route{Entrance: e, Exit: x})
			}
		}
	}
	return out
}

// Rows returns the matrix as 0/1 rows, the form used in reports.
func (m *Matrix) Rows() [][]int {
	rows := make([][]int, m.lanes)
	for e := range rows {
		rows[e] = make([]int, m.lanes)
		for x := range rows[e] {
			if m.cells[e*m.lanes+x] {
				rows[e][x] = 1
			}
		}
	}
	return rows
}
