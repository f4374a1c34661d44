package intergeo

import (
	"math"

	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/errors"
)

// Graph builds the dependency graph of the construction. Every realized
// element and every engine element it is computed from becomes a node, in
// creation order; each parent relation becomes an edge from the parent.
// Hidden helpers are auxiliary nodes. Node metadata carries the current
// geometry under the dag.Meta* keys.
func (c *Construction) Graph() (*dag.DAG, error) {
	g := dag.New(dag.Metadata{
		dag.MetaElements:    len(c.Realized()),
		dag.MetaApplied:     c.Applied,
		dag.MetaDiagnostics: c.Diagnostics.Len(),
	})

	var visited []board.Element
	seen := make(map[string]bool)
	var visit func(e board.Element)
	visit = func(e board.Element) {
		if e == nil || e.ID() == "" || seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		for _, p := range e.Parents() {
			visit(p)
		}
		visited = append(visited, e)
	}
	for _, e := range c.Realized() {
		visit(e)
	}

	for _, e := range visited {
		if err := g.AddNode(nodeOf(e)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "graph node").About(e.ID())
		}
	}
	for _, e := range visited {
		for _, p := range e.Parents() {
			if p == nil || !seen[p.ID()] {
				continue
			}
			if err := g.AddEdge(dag.Edge{From: p.ID(), To: e.ID()}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "graph edge %s->%s", p.ID(), e.ID())
			}
		}
	}

	g.AssignRows()
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "construction graph")
	}
	return g, nil
}

func nodeOf(e board.Element) dag.Node {
	attrs := e.Attributes()
	visible := attrs.Bool(board.AttrVisible, true)
	meta := dag.Metadata{
		dag.MetaKind:    e.Kind().String(),
		dag.MetaVisible: visible,
	}
	if name := e.Name(); name != "" {
		meta[dag.MetaName] = name
	}
	if s := attrs.String(board.AttrStrokeColor); s != "" {
		meta[dag.MetaStroke] = s
	}
	if s := attrs.String(board.AttrFillColor); s != "" {
		meta[dag.MetaFill] = s
	}
	if attrs.Bool(board.AttrTrace, false) {
		meta[dag.MetaTrace] = true
	}

	switch el := e.(type) {
	case board.Point:
		if x, y, ok := el.Coords().Euclidean(); ok {
			setFinite(meta, dag.MetaX, x)
			setFinite(meta, dag.MetaY, y)
		}
	case board.Line:
		std := el.Stdform()
		setFinite(meta, dag.MetaC, std[0])
		setFinite(meta, dag.MetaA, std[1])
		setFinite(meta, dag.MetaB, std[2])
		if p1, p2 := el.Point1(), el.Point2(); p1 != nil && p2 != nil {
			if x, y, ok := p1.Coords().Euclidean(); ok {
				setFinite(meta, dag.MetaX1, x)
				setFinite(meta, dag.MetaY1, y)
			}
			if x, y, ok := p2.Coords().Euclidean(); ok {
				setFinite(meta, dag.MetaX2, x)
				setFinite(meta, dag.MetaY2, y)
			}
		}
		meta[dag.MetaStraightFirst] = attrs.Bool(board.AttrStraightFirst, true)
		meta[dag.MetaStraightLast] = attrs.Bool(board.AttrStraightLast, true)
	case board.Circle:
		if x, y, ok := el.Center().Coords().Euclidean(); ok {
			setFinite(meta, dag.MetaCX, x)
			setFinite(meta, dag.MetaCY, y)
		}
		setFinite(meta, dag.MetaRadius, el.Radius())
	}

	kind := dag.NodeKindRegular
	if !visible {
		kind = dag.NodeKindAuxiliary
	}
	return dag.Node{ID: e.ID(), Meta: meta, Kind: kind}
}

func setFinite(m dag.Metadata, key string, v float64) {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		m[key] = v
	}
}
