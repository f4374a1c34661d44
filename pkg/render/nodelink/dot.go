package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/intergeo/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the row and all metadata in node labels.
	// When false, only the element name is shown.
	Detailed bool
}

// ToDOT converts a construction graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Points are drawn as ellipses, circles as circles and lines as boxes.
// Hidden helpers are dashed and grey, and so are the edges leading to them.
// Elements on the same dependency row share a rank.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(*n, opts.Detailed)
		attrs := fmtAttrs(*n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	if ranks := fmtRanks(g); len(ranks) > 0 {
		buf.WriteString("\n")
		for _, r := range ranks {
			fmt.Fprintf(&buf, "  %s\n", r)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if to, ok := g.Node(e.To); ok && to.IsAuxiliary() {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	name := n.ID
	if s := n.Meta.String(dag.MetaName); s != "" {
		name = s
	}
	if !detailed {
		return name
	}

	parts := []string{fmt.Sprintf("row: %d", n.Row)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if shape := shapeOf(n.Meta.String(dag.MetaKind)); shape != "" {
		attrs = append(attrs, "shape="+shape)
	}
	if n.IsAuxiliary() {
		return append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	}
	if c := n.Meta.String(dag.MetaStroke); c != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c))
	}
	if n.Meta.Bool(dag.MetaTrace, false) {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func shapeOf(kind string) string {
	switch kind {
	case "point", "glider", "midpoint", "intersection", "otherintersection":
		return "ellipse"
	case "circle", "circumcircle":
		return "circle"
	}
	return ""
}

// fmtRanks groups the nodes of every row holding more than one node.
func fmtRanks(g *dag.DAG) []string {
	var ranks []string
	for _, row := range g.RowIDs() {
		nodes := g.NodesInRow(row)
		if len(nodes) < 2 {
			continue
		}
		var sb strings.Builder
		sb.WriteString("{ rank=same;")
		for _, n := range nodes {
			fmt.Fprintf(&sb, " %q;", n.ID)
		}
		sb.WriteString(" }")
		ranks = append(ranks, sb.String())
	}
	return ranks
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

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
