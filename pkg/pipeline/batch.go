package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one run in a batch.
type BatchItem struct {
	Options Options
	Result  *Result
	Err     error
}

// ExecuteBatch runs independent intersections concurrently, at most jobs at
// a time (jobs ≤ 0 means GOMAXPROCS). A failing run does not stop the
// others; its error is reported in its item. Items keep the order of opts.
// The returned error is non-nil only when ctx ends before all runs started.
func (r *Runner) ExecuteBatch(ctx context.Context, opts []Options, jobs int) ([]BatchItem, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	items := make([]BatchItem, len(opts))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, o := range opts {
		if err := ctx.Err(); err != nil {
			g.Wait()
			return items, err
		}
		items[i].Options = o
		g.Go(func() error {
			items[i].Result, items[i].Err = r.Execute(ctx, o)
			return nil
		})
	}
	g.Wait()
	return items, nil
}

// Failed returns the items whose run returned an error.
func Failed(items []BatchItem) []BatchItem {
	var out []BatchItem
	for _, it := range items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}
