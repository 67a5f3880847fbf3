// Package pkg provides the core libraries for trafficmis intersection analysis.
//
// # Overview
//
// trafficmis models a road intersection as a ring of numbered lanes. Each
// route enters on one lane and leaves on another. Two routes conflict when
// their paths cross, and for every route trafficmis computes a maximal group
// of routes that can be given a green light together. The pkg directory is
// organized into three areas:
//
//  1. Domain logic ([lane], [conflict], [mis], [phase])
//  2. Orchestration ([pipeline], [intersection], [report])
//  3. Infrastructure ([cache], [observability], [errors], [render], [buildinfo])
//
// # Architecture
//
// The data flow through trafficmis:
//
//	Intersection file (TOML/JSON)
//	         ↓
//	    [intersection] package (decode and validate)
//	         ↓
//	    [conflict] package (matrix → resolved conflicts → adjacency)
//	         ↓
//	    [phase] package (one independent set per lane, via [mis])
//	         ↓
//	    [report] JSON/text, or [render/nodelink] DOT/SVG/PDF/PNG
//
// # Quick Start
//
// Analyze an intersection file:
//
//	import (
//	    "context"
//	    "github.com/ReFLEX-Lab-York/trafficMISBP/pkg/intersection"
//	    "github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
//	)
//
//	def, _ := intersection.ReadFile("crossroads.toml")
//	res, _ := pipeline.Analyze(context.Background(), pipeline.FromDefinition(def))
//	for _, g := range res.Groups {
//	    fmt.Println(g.Lane, g.Members)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [lane] - Lane rings, routes, and the clockwise spans a route sweeps.
//
// [conflict] - The conflict matrix over declared routes, the resolver that
// finds every crossing pair, and the lane adjacency built from them.
// Malformed routes produce diagnostics instead of errors.
//
// [mis] - Independent-set strategies over gonum graphs: an exact search for
// small graphs with a greedy fallback, and a greedy minimum-degree heuristic.
//
// [phase] - Compatibility groups: for every lane, a maximal set of lanes
// that conflict neither with it nor with each other.
//
// ## Orchestration
//
// [pipeline] - Validate → matrix → resolve → adjacency → groups, with result
// caching, batch execution, and rendering. Used by the CLI and HTTP server.
//
// [intersection] - The on-disk intersection definition format.
//
// [report] - JSON and plain-text result reports.
//
// ## Infrastructure
//
// [cache] - File, Redis, and null caches behind one interface, with
// content-addressed keys.
//
// [observability] - Hooks for pipeline stages, cache access, and HTTP
// requests. No-op by default.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [render/nodelink] - Conflict graphs as Graphviz diagrams.
//
// [render] - SVG to PDF/PNG conversion.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/conflict/...           # Specific package
//	go test -run Example ./pkg/lane      # Examples only
//
// [lane]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane
// [conflict]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict
// [mis]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis
// [phase]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/phase
// [pipeline]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline
// [intersection]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/intersection
// [report]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/report
// [cache]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache
// [observability]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability
// [errors]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors
// [render]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink
// [buildinfo]: https://pkg.go.dev/github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo
package pkg
