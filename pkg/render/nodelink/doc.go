// Package nodelink renders conflict graphs as node-link diagrams.
//
// Each entrance lane becomes a node and each conflicting pair an undirected
// edge. Nodes are placed on a circle (Graphviz circo layout) so the drawing
// resembles the intersection ring. One lane can be highlighted together with
// its compatibility group: the lane is drawn in amber, its group in green and
// the lanes it conflicts with in red.
//
//	dot := nodelink.ToDOT(adj, nodelink.Options{Highlight: 2, Groups: groups})
//	svg, err := nodelink.RenderSVG(dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
