// Package nodelink renders construction dependency graphs as node-link
// diagrams.
//
// # Usage
//
// Convert a [dag.DAG] built by the importer to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes are shaped by element kind and outlined in the element's stroke
// color. Hidden helpers (auxiliary nodes) are drawn dashed on grey, and
// traced elements get a double outline. Elements at the same dependency
// depth share a rank, so free elements line up at the top.
//
// # Options
//
//   - Detailed: when true, labels list the row and every metadata entry
//     (kind, coordinates, colors) in key order.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
//
// [dag.DAG]: github.com/matzehuels/intergeo/pkg/dag.DAG
package nodelink
