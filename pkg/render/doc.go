// Package render turns analysis results into pictures.
//
// The [nodelink] subpackage draws the conflict graph with Graphviz: one node
// per entrance lane, one edge per conflicting pair, optionally highlighting a
// lane's compatibility group. This package holds the format conversion shared
// by renderers: [ToPDF] and [ToPNG] convert SVG using the external
// rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink
package render
