package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/phase"
)

// NoHighlight disables highlighting in [Options].
const NoHighlight = -1

const (
	colorFocus    = "#f4a261"
	colorGroup    = "#8ecae6"
	colorConflict = "#e63946"
	colorMuted    = "#c0c0c0"
)

// Options configures diagram generation.
type Options struct {
	// Title is drawn above the graph when non-empty.
	Title string

	// Labels overrides node labels by lane. Lanes without an entry are
	// labelled with their number.
	Labels map[int]string

	// Highlight selects the lane whose group is emphasised, or NoHighlight.
	Highlight int

	// Groups supplies the compatibility groups used for highlighting.
	Groups []phase.Group
}

// ToDOT converts a conflict adjacency to an undirected Graphviz graph. Nodes
// are emitted in ascending lane order and edges in sorted order, so equal
// inputs give byte-identical output.
func ToDOT(adj *conflict.Adjacency, opts Options) string {
	focus, group, conflicts := highlightSets(adj, opts)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.6, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for _, l := range adj.Lanes() {
		attrs := []string{fmt.Sprintf("label=%q", label(l, opts.Labels))}
		switch {
		case focus && l == opts.Highlight:
			attrs = append(attrs, "fillcolor=\""+colorFocus+"\"", "penwidth=2")
		case group[l]:
			attrs = append(attrs, "fillcolor=\""+colorGroup+"\"")
		case conflicts[l]:
			attrs = append(attrs, "color=\""+colorConflict+"\"", "penwidth=2")
		case focus:
			attrs = append(attrs, "fontcolor=\""+colorMuted+"\"", "color=\""+colorMuted+"\"")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", l, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range adj.Edges() {
		if focus && (e.A == opts.Highlight || e.B == opts.Highlight) {
			fmt.Fprintf(&buf, "  %d -- %d [color=\"%s\", penwidth=2];\n", e.A, e.B, colorConflict)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func highlightSets(adj *conflict.Adjacency, opts Options) (bool, map[int]bool, map[int]bool) {
	if opts.Highlight == NoHighlight || !slices.Contains(adj.Lanes(), opts.Highlight) {
		return false, nil, nil
	}
	group := make(map[int]bool)
	for _, g := range opts.Groups {
		if g.Lane != opts.Highlight || g.Fallback {
			continue
		}
		for _, m := range g.Members {
			group[m] = true
		}
	}
	conflicts := make(map[int]bool)
	for _, e := range adj.Edges() {
		switch opts.Highlight {
		case e.A:
			conflicts[e.B] = true
		case e.B:
			conflicts[e.A] = true
		}
	}
	return true, group, conflicts
}

func label(l int, labels map[int]string) string {
	if s, ok := labels[l]; ok {
		return s
	}
	return strconv.Itoa(l)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> header (which carries pt
// units) with a unitless one so the drawing scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
