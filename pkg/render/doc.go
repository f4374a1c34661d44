// Package render groups the visual outputs of an imported construction.
//
// Both renderers consume the dependency graph built by
// [intergeo.Construction.Graph]:
//
//   - [nodelink] draws the graph itself: which element is computed from
//     which, layered by dependency depth (DOT and SVG via Graphviz).
//   - [canvas] draws the board: the points, lines and circles at their
//     current positions (PNG via a software rasterizer).
//
//	g, err := construction.Graph()
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
//	png, err := canvas.RenderPNG(g, canvas.DefaultOptions())
//
// [intergeo.Construction.Graph]: github.com/matzehuels/intergeo/pkg/intergeo.Construction.Graph
// [nodelink]: github.com/matzehuels/intergeo/pkg/render/nodelink
// [canvas]: github.com/matzehuels/intergeo/pkg/render/canvas
package render
