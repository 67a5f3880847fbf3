// Package pipeline runs the conflict analysis end to end.
//
// One run takes an intersection (lane count and routes) through five stages:
//
//  1. Validate: reject unusable input (no routes, degenerate routes, bad lane count)
//  2. Matrix: mark the declared routes on the lane × lane conflict matrix
//  3. Resolve: derive each route's conflicting pairs from its clockwise spans
//  4. Adjacency: collapse the pairs into a lane → conflicting-lanes mapping
//  5. Groups: find, for every lane, a compatibility group with an
//     independent-set strategy
//
// Routes that fall off the ring are skipped with a diagnostic; diagnostics
// are logged at warn level and returned in [Result.Diagnostics]. The CLI and
// the HTTP server share this package so both behave identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:   "four-way",
//	    Lanes:  8,
//	    Routes: routes,
//	})
//	for _, g := range result.Groups {
//	    fmt.Println(g.Lane, g.Members)
//	}
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/intersection"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/phase"
)

const (
	// DefaultStrategy is the independent-set strategy used when none is named.
	DefaultStrategy = mis.DefaultStrategy

	// DefaultMaxExactNodes bounds the subgraphs solved exactly.
	DefaultMaxExactNodes = mis.DefaultMaxExactNodes
)

// Options contains the input and configuration of one analysis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Name          string       `json:"name,omitempty"`
	Lanes         int          `json:"lanes"`
	Routes        []lane.Route `json:"routes"`
	Strategy      string       `json:"strategy,omitempty"`
	MaxExactNodes int          `json:"max_exact_nodes,omitempty"`

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Solver overrides Strategy with a caller-supplied implementation. It is
	// shared by every run it is passed to, so it must be safe for concurrent
	// use when given to ExecuteBatch. Runner.Execute does not cache its results.
	Solver mis.Strategy `json:"-"`

	validated bool
}

// FromDefinition builds options from an intersection definition file.
func FromDefinition(d *intersection.Definition) Options {
	return Options{
		Name:          d.Name,
		Lanes:         d.Lanes,
		Routes:        slices.Clone(d.Routes),
		Strategy:      d.Solver.Strategy,
		MaxExactNodes: d.Solver.MaxExactNodes,
	}
}

// ValidateAndSetDefaults checks the input and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateName(o.Name); err != nil {
		return err
	}
	if err := errors.ValidateLaneCount(o.Lanes); err != nil {
		return err
	}
	if err := errors.ValidateRoutes(o.Routes); err != nil {
		return err
	}
	if o.Solver == nil {
		if o.Strategy == "" {
			o.Strategy = DefaultStrategy
		}
		if _, err := mis.Lookup(o.Strategy, o.MaxExactNodes); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStrategy, err, "strategy %q", o.Strategy)
		}
	} else {
		o.Strategy = o.Solver.Name()
	}
	if o.MaxExactNodes <= 0 {
		o.MaxExactNodes = DefaultMaxExactNodes
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// strategy returns a fresh strategy instance for one run.
func (o *Options) strategy() (mis.Strategy, error) {
	if o.Solver != nil {
		return o.Solver, nil
	}
	return mis.Lookup(o.Strategy, o.MaxExactNodes)
}

// ResultKeyOpts returns cache key options for this run.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Strategy: o.Strategy, MaxExactNodes: o.MaxExactNodes}
}

// input is the part of Options that determines the result.
type input struct {
	Lanes  int          `json:"lanes"`
	Routes []lane.Route `json:"routes"`
}

// InputHash returns the content hash of the lane count and route list.
// The name is not part of the hash: two files describing the same
// intersection share cache entries.
func (o *Options) InputHash() string {
	h, _ := cache.HashJSON(input{Lanes: o.Lanes, Routes: o.Routes})
	return h
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run. Cached results get a fresh ID when served.
	ID string `json:"id"`

	Name      string `json:"name,omitempty"`
	InputHash string `json:"input_hash"`
	Lanes     int    `json:"lanes"`
	Strategy  string `json:"strategy"`

	Routes []lane.Route `json:"routes"`

	// Matrix lists the set cells of the conflict matrix, sorted.
	Matrix []lane.Route `json:"matrix"`

	// Conflicts holds each resolved route with its conflicting pairs.
	Conflicts []conflict.Entry `json:"conflicts"`

	// Adjacency is the lane → conflicting lanes mapping in key order.
	Adjacency []AdjacencyEntry `json:"adjacency"`

	// Edges are the distinct undirected conflict edges.
	Edges []conflict.Edge `json:"edges"`

	// Groups holds one compatibility group per graph node, ascending by lane.
	Groups []phase.Group `json:"groups"`

	Diagnostics []conflict.Diagnostic `json:"diagnostics,omitempty"`

	Stats    Stats `json:"stats"`
	CacheHit bool  `json:"cache_hit"`

	CreatedAt time.Time `json:"created_at"`
}

// AdjacencyEntry is one key of the conflict adjacency.
type AdjacencyEntry struct {
	Lane      int   `json:"lane"`
	Conflicts []int `json:"conflicts"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Routes    int `json:"routes"`
	Skipped   int `json:"skipped"`
	Nodes     int `json:"nodes"`
	Edges     int `json:"edges"`
	Fallbacks int `json:"fallbacks"`

	MatrixTime  time.Duration `json:"matrix_ns"`
	ResolveTime time.Duration `json:"resolve_ns"`
	GroupTime   time.Duration `json:"group_ns"`
}

// Graph rebuilds the conflict adjacency from the result.
func (r *Result) Graph() *conflict.Adjacency {
	adj := conflict.NewAdjacency()
	for _, e := range r.Adjacency {
		adj.Set(e.Lane, slices.Clone(e.Conflicts))
	}
	return adj
}

// Group returns the compatibility group of lane l.
func (r *Result) Group(l int) (phase.Group, bool) {
	for _, g := range r.Groups {
		if g.Lane == l {
			return g, true
		}
	}
	return phase.Group{}, false
}

func adjacencyEntries(adj *conflict.Adjacency) []AdjacencyEntry {
	keys := adj.Keys()
	out := make([]AdjacencyEntry, len(keys))
	for i, k := range keys {
		n, _ := adj.Neighbors(k)
		out[i] = AdjacencyEntry{Lane: k, Conflicts: n}
	}
	return out
}
