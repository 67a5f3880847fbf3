package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/graph"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink"
)

func fourWay() Options {
	return Options{
		Name:   "four-way",
		Lanes:  8,
		Routes: routes([2]int{0, 5}, [2]int{2, 7}, [2]int{4, 1}, [2]int{6, 3}),
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("Cache = %T, want *cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("Keyer and Logger should default")
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	first, err := r.Execute(ctx, fourWay())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, fourWay())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.ID == first.ID {
		t.Error("cached result should get a fresh run ID")
	}
	if diff := cmp.Diff(first.Groups, second.Groups); diff != "" {
		t.Errorf("cached groups differ (-first +second):\n%s", diff)
	}

	// different strategy → different key
	opts := fourWay()
	opts.Strategy = "greedy"
	third, _ := r.Execute(ctx, opts)
	if third.CacheHit {
		t.Error("a different strategy should not share the cache entry")
	}

	opts = fourWay()
	opts.Refresh = true
	fourth, _ := r.Execute(ctx, opts)
	if fourth.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecuteValidationError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Lanes: 4})
	if !errors.Is(err, errors.ErrCodeInvalidRoute) {
		t.Errorf("error = %v, want INVALID_ROUTE", err)
	}
}

func TestExecuteBatch(t *testing.T) {
	r := newFileRunner(t)
	bad := Options{Name: "bad", Lanes: 4, Routes: routes([2]int{1, 1})}
	opts := []Options{fourWay(), bad, {Name: "tee", Lanes: 6, Routes: routes([2]int{0, 3}, [2]int{2, 5}, [2]int{4, 1})}}

	items, err := r.ExecuteBatch(context.Background(), opts, 2)
	if err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, name := range []string{"four-way", "bad", "tee"} {
		if items[i].Options.Name != name {
			t.Errorf("item %d is %q, want %q", i, items[i].Options.Name, name)
		}
	}
	if items[0].Err != nil || items[2].Err != nil {
		t.Errorf("valid runs failed: %v, %v", items[0].Err, items[2].Err)
	}
	if !errors.Is(items[1].Err, errors.ErrCodeDegenerateRoute) {
		t.Errorf("bad run error = %v, want DEGENERATE_ROUTE", items[1].Err)
	}
	if failed := Failed(items); len(failed) != 1 || failed[0].Options.Name != "bad" {
		t.Errorf("Failed = %v", failed)
	}
}

func TestExecuteBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).ExecuteBatch(ctx, []Options{fourWay()}, 1)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRenderFormats(t *testing.T) {
	ctx := context.Background()
	res, err := Analyze(ctx, fourWay())
	if err != nil {
		t.Fatal(err)
	}

	dot, err := Render(ctx, res, RenderOptions{Format: FormatDOT, Highlight: nodelink.NoHighlight})
	if err != nil {
		t.Fatalf("Render dot: %v", err)
	}
	if !bytes.HasPrefix(dot, []byte("graph G {")) || !strings.Contains(string(dot), `"0→5"`) {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	data, err := Render(ctx, res, RenderOptions{Format: FormatJSON})
	if err != nil {
		t.Fatalf("Render json: %v", err)
	}
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if decoded.ID != res.ID {
		t.Errorf("decoded ID = %q, want %q", decoded.ID, res.ID)
	}

	svg, err := Render(ctx, res, RenderOptions{Format: FormatSVG, Highlight: 0})
	if err != nil {
		t.Fatalf("Render svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output missing <svg")
	}

	if _, err := Render(ctx, res, RenderOptions{Format: "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerRenderCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	res, _ := r.Execute(ctx, fourWay())

	opts := RenderOptions{Format: FormatDOT, Highlight: 2}
	a, hit, err := r.Render(ctx, res, opts)
	if err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}
	b, hit, err := r.Render(ctx, res, opts)
	if err != nil || !hit {
		t.Fatalf("second render: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(a, b) {
		t.Error("cached render differs")
	}

	_, hit, _ = r.Render(ctx, res, RenderOptions{Format: FormatDOT, Highlight: 4})
	if hit {
		t.Error("a different highlight should not hit the cache")
	}
}

func TestRenderKeyScale(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	res, err := r.Execute(ctx, fourWay())
	if err != nil {
		t.Fatal(err)
	}

	png := func(scale float64) RenderOptions {
		return RenderOptions{Format: FormatPNG, Highlight: nodelink.NoHighlight, Scale: scale}
	}
	if r.renderKey(res, png(2)) == r.renderKey(res, png(4)) {
		t.Error("PNG scales 2 and 4 share a cache key")
	}
	if r.renderKey(res, png(0)) != r.renderKey(res, png(DefaultScale)) {
		t.Error("unset scale should key like the default scale")
	}
	dot := func(scale float64) RenderOptions {
		return RenderOptions{Format: FormatDOT, Highlight: nodelink.NoHighlight, Scale: scale}
	}
	if r.renderKey(res, dot(2)) != r.renderKey(res, dot(4)) {
		t.Error("scale should not affect non-PNG keys")
	}

	// A PNG cached at the default scale is served only to that scale.
	if err := r.Cache.Set(ctx, r.renderKey(res, png(2)), []byte("png@2"), cache.TTLRender); err != nil {
		t.Fatal(err)
	}
	data, hit, err := r.Render(ctx, res, png(0))
	if err != nil || !hit || string(data) != "png@2" {
		t.Fatalf("default scale: data=%q hit=%v err=%v", data, hit, err)
	}
	if _, ok, _ := r.Cache.Get(ctx, r.renderKey(res, png(4))); ok {
		t.Error("scale 4 must not find the scale 2 entry")
	}
}

// impostor reports a built-in name but runs its own algorithm.
type impostor struct {
	mu    sync.Mutex
	calls int
}

func (*impostor) Name() string { return mis.NameExact }

func (s *impostor) IndependentSet(g graph.Undirected) ([]int64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return mis.Greedy{}.IndependentSet(g)
}

func TestExecuteCustomSolverSkipsCache(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	if _, err := r.Execute(ctx, fourWay()); err != nil {
		t.Fatal(err)
	}

	solver := &impostor{}
	opts := fourWay()
	opts.Solver = solver
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("custom solver was served the built-in exact result")
	}
	if solver.calls == 0 {
		t.Error("custom solver was not called")
	}

	res, err = r.Execute(ctx, fourWay())
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit {
		t.Error("built-in run should still hit its own entry")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	stages []string
	diags  []string
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func (h *recordingHooks) OnDiagnostic(_ context.Context, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.diags = append(h.diags, kind)
}

func TestPipelineHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	_, err := Analyze(context.Background(), Options{Lanes: 4, Routes: routes([2]int{0, 2}, [2]int{5, 1})})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		observability.StageValidate,
		observability.StageMatrix,
		observability.StageResolve,
		observability.StageAdjacency,
		observability.StageGroups,
	}
	if diff := cmp.Diff(want, hooks.stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"out_of_range"}, hooks.diags); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}
