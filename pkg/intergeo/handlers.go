package intergeo

import (
	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/geom"
)

const (
	colorBlack         = "black"
	colorBisector      = "#000000"
	colorBisectorLines = "#ff0000"
)

func (im *importer) lineThroughTwoPoints(l, a, b string) error {
	pa, err := im.realizePoint(a)
	if err != nil {
		return err
	}
	pb, err := im.realizePoint(b)
	if err != nil {
		return err
	}
	_, err = im.register(l, board.KindLine, points(pa, pb), board.Attributes{board.AttrWithLabel: true})
	return err
}

// lineThroughPoint turns the raw line l into the line with l's direction
// through p. The offset is recomputed from p on every evaluation.
func (im *importer) lineThroughPoint(l, p string) error {
	c, err := im.rawLine(l)
	if err != nil {
		return err
	}
	pt, err := im.realizePoint(p)
	if err != nil {
		return err
	}
	a, b, off := c[0], c[1], c[2]
	offset := board.Live(func() float64 {
		return off - a*pt.X() - b*pt.Y() - off*pt.Z()
	}, pt)
	_, err = im.register(l, board.KindLine, []board.Parent{offset, board.Num(a), board.Num(b)},
		board.Attributes{board.AttrStrokeColor: colorBlack, board.AttrWithLabel: true})
	return err
}

func (im *importer) parallel(l, m, p string) error {
	ml, err := im.line(m)
	if err != nil {
		return err
	}
	pt, err := im.realizePoint(p)
	if err != nil {
		return err
	}
	_, err = im.register(l, board.KindParallel, []board.Parent{board.Of(ml), board.Of(pt)},
		board.Attributes{board.AttrWithLabel: true})
	return err
}

// perpendicular creates the perpendicular l and its hidden foot l+"foot".
func (im *importer) perpendicular(l, m, p string) error {
	ml, err := im.line(m)
	if err != nil {
		return err
	}
	pt, err := im.realizePoint(p)
	if err != nil {
		return err
	}
	foot := l + "foot"
	els, err := im.createAll(board.KindPerpendicular, []board.Parent{board.Of(ml), board.Of(pt)}, board.Attributes{
		board.AttrName:      []string{l, foot},
		board.AttrID:        []string{l, foot},
		board.AttrWithLabel: true,
	})
	if err != nil {
		return err
	}
	if len(els) < 2 {
		return errMissingOutputs(board.KindPerpendicular, l)
	}
	if err := im.set(els[0], board.Attributes{board.AttrStraightFirst: true, board.AttrStraightLast: true}); err != nil {
		return err
	}
	if err := im.set(els[1], board.Attributes{board.AttrVisible: false}); err != nil {
		return err
	}
	if err := im.store.MarkRealized(l, els[0]); err != nil {
		return err
	}
	return im.store.MarkRealized(foot, els[1])
}

func (im *importer) segment(s, a, b string) error {
	pa, err := im.realizePoint(a)
	if err != nil {
		return err
	}
	pb, err := im.realizePoint(b)
	if err != nil {
		return err
	}
	_, err = im.register(s, board.KindLine, points(pa, pb), board.Attributes{
		board.AttrStraightFirst: false,
		board.AttrStraightLast:  false,
		board.AttrStrokeColor:   colorBlack,
		board.AttrWithLabel:     true,
	})
	return err
}

// endpoints makes p and q follow the defining points of segment s.
func (im *importer) endpoints(p, q, s string) error {
	seg, err := im.segmentEnds(s)
	if err != nil {
		return err
	}
	pp, err := im.constrain(p, func() geom.Vec3 { return seg.Point1().Coords() }, seg)
	if err != nil {
		return err
	}
	pq, err := im.constrain(q, func() geom.Vec3 { return seg.Point2().Coords() }, seg)
	if err != nil {
		return err
	}
	return im.style(pp, pq)
}

func (im *importer) freeLine(l string) error {
	if e, ok := im.store.Get(l); ok && e.Exists() {
		if _, isLine := e.Handle.(board.Line); isLine {
			return nil
		}
	}
	c, err := im.rawLine(l)
	if err != nil {
		return err
	}
	_, err = im.register(l, board.KindLine, []board.Parent{board.Num(c[2]), board.Num(c[0]), board.Num(c[1])},
		board.Attributes{board.AttrWithLabel: true})
	return err
}

// glider binds p to a line (onLine) or a circle. The start position is p's
// raw position, or the origin when p was never ingested.
func (im *importer) glider(p, curve string, onLine bool) error {
	var c board.Element
	var err error
	if onLine {
		c, err = im.line(curve)
	} else {
		c, err = im.circle(curve)
	}
	if err != nil {
		return err
	}
	x, y := im.startPosition(p)
	pt, err := im.bindPoint(p, board.KindGlider, []board.Parent{board.Num(x), board.Num(y), board.Of(c)},
		board.Project(c, x, y), c)
	if err != nil {
		return err
	}
	return im.set(pt, board.Attributes{board.AttrSlideObject: c.ID()})
}

func (im *importer) startPosition(id string) (x, y float64) {
	e, ok := im.store.Get(id)
	if !ok {
		return 0, 0
	}
	if e.Exists() {
		if p, isPoint := e.Handle.(board.Point); isPoint {
			if x, y, ok := p.Coords().Euclidean(); ok {
				return x, y
			}
		}
		return 0, 0
	}
	switch c := e.Raw.Coords; len(c) {
	case 2:
		return c[0], c[1]
	case 3:
		if x, y, ok := geom.Vec3(c).Euclidean(); ok {
			return x, y
		}
	}
	return 0, 0
}

func (im *importer) midpoint(m, a, b string) error {
	pa, err := im.realizePoint(a)
	if err != nil {
		return err
	}
	pb, err := im.realizePoint(b)
	if err != nil {
		return err
	}
	return im.bindMidpoint(m, pa, pb)
}

func (im *importer) midpointOfSegment(m, s string) error {
	seg, err := im.segmentEnds(s)
	if err != nil {
		return err
	}
	return im.bindMidpoint(m, seg.Point1(), seg.Point2())
}

func (im *importer) bindMidpoint(m string, a, b board.Point) error {
	pt, err := im.bindPoint(m, board.KindMidpoint, points(a, b), board.Midpoint(a, b), a, b)
	if err != nil {
		return err
	}
	return im.style(pt)
}

func (im *importer) lineIntersection(p, l1, l2 string) error {
	a, err := im.line(l1)
	if err != nil {
		return err
	}
	b, err := im.line(l2)
	if err != nil {
		return err
	}
	return im.bindIntersection(p, a, b, 0)
}

// intersectionPoints binds p to branch 0 and q to branch 1. The order of
// the outputs alone decides the branches.
func (im *importer) intersectionPoints(p, q, c1, c2 string) error {
	a, err := im.curve(c1)
	if err != nil {
		return err
	}
	b, err := im.curve(c2)
	if err != nil {
		return err
	}
	if err := im.bindIntersection(p, a, b, 0); err != nil {
		return err
	}
	return im.bindIntersection(q, a, b, 1)
}

func (im *importer) bindIntersection(id string, a, b board.Element, branch int) error {
	pt, err := im.bindPoint(id, board.KindIntersection,
		[]board.Parent{board.Of(a), board.Of(b), board.Num(float64(branch))},
		im.engine.Intersection(a, b, branch), a, b)
	if err != nil {
		return err
	}
	return im.style(pt)
}

func (im *importer) otherIntersection(p, known, c1, c2 string) error {
	a, err := im.curve(c1)
	if err != nil {
		return err
	}
	b, err := im.curve(c2)
	if err != nil {
		return err
	}
	k, err := im.realizePoint(known)
	if err != nil {
		return err
	}
	pt, err := im.bindPoint(p, board.KindOtherIntersection,
		[]board.Parent{board.Of(a), board.Of(b), board.Of(k)},
		im.engine.OtherIntersection(a, b, k), a, b, k)
	if err != nil {
		return err
	}
	return im.style(pt)
}

// circumcircle creates circle c through three points with a hidden center
// c+"c".
func (im *importer) circumcircle(c, a, b, d string) error {
	var ps [3]board.Point
	for i, id := range []string{a, b, d} {
		p, err := im.realizePoint(id)
		if err != nil {
			return err
		}
		ps[i] = p
	}
	center := c + "c"
	els, err := im.createAll(board.KindCircumcircle, points(ps[:]...), board.Attributes{
		board.AttrName:      []string{center, c},
		board.AttrID:        []string{center, c},
		board.AttrWithLabel: true,
	})
	if err != nil {
		return err
	}
	if len(els) < 2 {
		return errMissingOutputs(board.KindCircumcircle, c)
	}
	if err := im.set(els[0], board.Attributes{board.AttrVisible: false}); err != nil {
		return err
	}
	if err := im.store.MarkRealized(center, els[0]); err != nil {
		return err
	}
	return im.store.MarkRealized(c, els[1])
}

func (im *importer) circleByCenterAndPoint(c, m, p string) error {
	center, err := im.realizePoint(m)
	if err != nil {
		return err
	}
	through, err := im.realizePoint(p)
	if err != nil {
		return err
	}
	_, err = im.register(c, board.KindCircle, points(center, through), board.Attributes{board.AttrWithLabel: true})
	return err
}

func (im *importer) centerOfCircle(m, c string) error {
	circ, err := im.circle(c)
	if err != nil {
		return err
	}
	_, err = im.constrain(m, func() geom.Vec3 { return circ.Center().Coords() }, circ)
	return err
}

// bisector creates the ray from the vertex p2 bisecting the angle p1 p2 p3.
func (im *importer) bisector(b, p1, p2, p3 string) error {
	var ps [3]board.Point
	for i, id := range []string{p1, p2, p3} {
		p, err := im.realizePoint(id)
		if err != nil {
			return err
		}
		ps[i] = p
	}
	_, err := im.register(b, board.KindBisector, points(ps[:]...), board.Attributes{
		board.AttrStraightFirst: false,
		board.AttrStraightLast:  true,
		board.AttrStrokeColor:   colorBisector,
		board.AttrWithLabel:     true,
	})
	return err
}

func (im *importer) bisectorLines(b1, b2, l1, l2 string) error {
	a, err := im.line(l1)
	if err != nil {
		return err
	}
	b, err := im.line(l2)
	if err != nil {
		return err
	}
	els, err := im.createAll(board.KindBisectorLines, []board.Parent{board.Of(a), board.Of(b)}, board.Attributes{
		board.AttrName:          []string{b1, b2},
		board.AttrID:            []string{b1, b2},
		board.AttrStraightFirst: true,
		board.AttrStraightLast:  true,
		board.AttrStrokeColor:   colorBisectorLines,
		board.AttrWithLabel:     true,
	})
	if err != nil {
		return err
	}
	if len(els) < 2 {
		return errMissingOutputs(board.KindBisectorLines, b1)
	}
	if err := im.store.MarkRealized(b1, els[0]); err != nil {
		return err
	}
	return im.store.MarkRealized(b2, els[1])
}

// tangents creates the two tangents t1 and t2 from p to circle c. They
// touch c where the polar line of p meets it.
func (im *importer) tangents(t1, t2, c, p string) error {
	circ, err := im.circle(c)
	if err != nil {
		return err
	}
	pt, err := im.realizePoint(p)
	if err != nil {
		return err
	}

	polarTerm := func(i int) board.Parent {
		return board.Live(func() float64 {
			return geom.Polar(circ.QuadraticForm(), pt.Coords())[i]
		}, circ, pt)
	}
	hidden := board.Attributes{board.AttrVisible: false}
	polar, err := im.create(board.KindLine, []board.Parent{polarTerm(0), polarTerm(1), polarTerm(2)}, hidden)
	if err != nil {
		return err
	}

	for branch, id := range []string{t1, t2} {
		touch, err := im.create(board.KindIntersection,
			[]board.Parent{board.Of(circ), board.Of(polar), board.Num(float64(branch))}, hidden)
		if err != nil {
			return err
		}
		if _, err := im.register(id, board.KindTangent, []board.Parent{board.Of(touch), board.Of(circ)},
			board.Attributes{board.AttrWithLabel: true}); err != nil {
			return err
		}
	}
	return nil
}

// locus marks an element for trace recording.
func (im *importer) locus(id string) error {
	el, err := im.resolve(id)
	if err != nil {
		return err
	}
	return im.set(el, im.dependent.Merge(board.Attributes{board.AttrTrace: true}))
}
