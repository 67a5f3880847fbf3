package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/phase"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger: multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the pipeline, serving the result from cache when possible.
// Runs with a custom Options.Solver are never cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// A caller-supplied solver is keyed by nothing but its name, which may
	// collide with a built-in strategy.
	if opts.Solver != nil {
		return Analyze(ctx, opts)
	}

	inputHash := opts.InputHash()
	key := r.Keyer.ResultKey(inputHash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.ID = uuid.NewString()
			res.Name = opts.Name
			res.CacheHit = true
			opts.Logger.Debug("result from cache", "name", opts.Name, "key", key)
			return res, nil
		}
	}

	res, err := Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Stale encoding, recompute.
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return &res, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Analyze runs the pipeline stages without caching. Each call builds its own
// strategy instance, so concurrent calls share no state.
func Analyze(ctx context.Context, opts Options) (*Result, error) {
	if _, err := stage(ctx, observability.StageValidate, len(opts.Routes), opts.ValidateAndSetDefaults); err != nil {
		return nil, err
	}
	strategy, err := opts.strategy()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger

	res := &Result{
		ID:        uuid.NewString(),
		Name:      opts.Name,
		InputHash: opts.InputHash(),
		Lanes:     opts.Lanes,
		Strategy:  strategy.Name(),
		Routes:    opts.Routes,
		CreatedAt: time.Now().UTC(),
	}
	res.Stats.Routes = len(opts.Routes)

	var m *conflict.Matrix
	res.Stats.MatrixTime, err = stage(ctx, observability.StageMatrix, len(opts.Routes), func() error {
		var diags []conflict.Diagnostic
		m, diags = conflict.BuildMatrix(opts.Routes, opts.Lanes)
		res.Diagnostics = append(res.Diagnostics, diags...)
		res.Stats.Skipped = len(diags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Matrix = m.Cells()

	res.Stats.ResolveTime, err = stage(ctx, observability.StageResolve, len(opts.Routes), func() error {
		entries, diags, err := conflict.NewResolver(m).ResolveAll(opts.Routes)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "resolve conflicts")
		}
		res.Conflicts = entries
		res.Diagnostics = append(res.Diagnostics, diags...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var adj *conflict.Adjacency
	if _, err = stage(ctx, observability.StageAdjacency, len(res.Conflicts), func() error {
		adj = conflict.BuildAdjacency(res.Conflicts)
		return nil
	}); err != nil {
		return nil, err
	}
	res.Adjacency = adjacencyEntries(adj)
	res.Edges = adj.Edges()
	res.Stats.Nodes = len(adj.Lanes())
	res.Stats.Edges = len(res.Edges)

	for _, d := range res.Diagnostics {
		logger.Warn(d.String(), "kind", d.Kind, "intersection", opts.Name)
		observability.Pipeline().OnDiagnostic(ctx, string(d.Kind))
	}

	res.Stats.GroupTime, err = stage(ctx, observability.StageGroups, res.Stats.Nodes, func() error {
		groups, err := phase.NewFinder(strategy).Find(adj)
		res.Groups = groups
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, g := range res.Groups {
		if g.Fallback {
			res.Stats.Fallbacks++
		}
	}

	logger.Info("analyzed intersection",
		"name", opts.Name,
		"lanes", opts.Lanes,
		"routes", res.Stats.Routes,
		"edges", res.Stats.Edges,
		"strategy", res.Strategy,
		"duration", res.Stats.MatrixTime+res.Stats.ResolveTime+res.Stats.GroupTime)
	return res, nil
}

// stage runs fn between the observability hooks, refusing to start when ctx
// is already done.
func stage(ctx context.Context, name string, size int, fn func() error) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	observability.Pipeline().OnStageStart(ctx, name, size)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	observability.Pipeline().OnStageComplete(ctx, name, d, err)
	if err != nil {
		return d, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
