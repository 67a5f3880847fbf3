package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink"
)

// Format constants for rendered outputs.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg, png, pdf, json)", format)
	}
	return nil
}

// DefaultScale is the PNG scale used when RenderOptions.Scale is unset.
const DefaultScale = 2.0

// RenderOptions configures conflict graph rendering.
type RenderOptions struct {
	Format string

	// Highlight is the lane whose compatibility group is emphasised, or
	// nodelink.NoHighlight.
	Highlight int

	// Scale applies to PNG output only.
	Scale float64
}

func (o RenderOptions) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// Render draws the conflict graph of res.
func Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}
	if opts.Format == FormatJSON {
		return json.MarshalIndent(res, "", "  ")
	}

	dot := nodelink.ToDOT(res.Graph(), nodelink.Options{
		Title:     res.Name,
		Labels:    routeLabels(res),
		Highlight: opts.Highlight,
		Groups:    res.Groups,
	})
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatPNG:
		return render.ToPNG(svg, opts.scale())
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return svg, nil
}

// routeLabels labels each node with the route entering on that lane, e.g.
// "2→7". When several routes share an entrance their exits are listed.
func routeLabels(res *Result) map[int]string {
	exits := make(map[int][]string)
	for _, e := range res.Conflicts {
		exits[e.Route.Entrance] = append(exits[e.Route.Entrance], fmt.Sprint(e.Route.Exit))
	}
	labels := make(map[int]string, len(exits))
	for l, xs := range exits {
		labels[l] = fmt.Sprintf("%d→%s", l, strings.Join(xs, ","))
	}
	return labels
}

// Render draws the conflict graph of res, caching the output by result
// content. It reports whether the output came from the cache.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	key := r.renderKey(res, opts)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := Render(ctx, res, opts)
	if err != nil {
		return nil, false, err
	}
	// JSON embeds the run ID, so it is never served from cache.
	if opts.Format != FormatJSON {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}
	return data, false, nil
}

// renderKey keys a drawing by result content and every option that changes
// its bytes. Scale only affects PNG output.
func (r *Runner) renderKey(res *Result, opts RenderOptions) string {
	ko := cache.RenderKeyOpts{Format: opts.Format, Highlight: opts.Highlight}
	if opts.Format == FormatPNG {
		ko.Scale = opts.scale()
	}
	return r.Keyer.RenderKey(renderHash(res), ko)
}

// renderHash covers everything the drawing depends on.
func renderHash(res *Result) string {
	h, _ := cache.HashJSON(struct {
		Name      string
		Conflicts any
		Adjacency any
		Groups    any
	}{res.Name, res.Conflicts, res.Adjacency, res.Groups})
	return h
}
