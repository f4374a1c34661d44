package board

import (
	"fmt"
	"math"

	"github.com/matzehuels/intergeo/pkg/geom"
)

type constructor func(b *Board, parents []Parent) ([]Element, error)

var constructors = map[Kind]constructor{
	KindPoint:             newPoint,
	KindLine:              newLine,
	KindCircle:            newCircle,
	KindGlider:            newGlider,
	KindMidpoint:          newMidpoint,
	KindIntersection:      newIntersection,
	KindOtherIntersection: newOtherIntersection,
	KindParallel:          newParallel,
	KindPerpendicular:     newPerpendicular,
	KindCircumcircle:      newCircumcircle,
	KindBisector:          newBisector,
	KindBisectorLines:     newBisectorLines,
	KindTangent:           newTangent,
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParents, fmt.Sprintf(format, args...))
}

func arity(parents []Parent, n int) error {
	if len(parents) != n {
		return invalid("want %d parents, got %d", n, len(parents))
	}
	return nil
}

func pointAt(parents []Parent, i int) (Point, error) {
	if p, ok := parents[i].Element.(Point); ok {
		return p, nil
	}
	return nil, invalid("parent %d is not a point", i)
}

func lineAt(parents []Parent, i int) (Line, error) {
	if l, ok := parents[i].Element.(Line); ok {
		return l, nil
	}
	return nil, invalid("parent %d is not a line", i)
}

func circleAt(parents []Parent, i int) (Circle, error) {
	if c, ok := parents[i].Element.(Circle); ok {
		return c, nil
	}
	return nil, invalid("parent %d is not a circle", i)
}

func curveAt(parents []Parent, i int) (Element, error) {
	switch parents[i].Element.(type) {
	case Line, Circle:
		return parents[i].Element, nil
	}
	return nil, invalid("parent %d is not a line or circle", i)
}

func scalars(parents []Parent) ([]Term, error) {
	terms := make([]Term, len(parents))
	for i, p := range parents {
		t, ok := p.scalar()
		if !ok {
			return nil, invalid("parent %d is not a number", i)
		}
		terms[i] = t
	}
	return terms, nil
}

func elems(parents ...Element) []Element { return parents }

func newPoint(_ *Board, parents []Parent) ([]Element, error) {
	terms, err := scalars(parents)
	if err != nil {
		return nil, err
	}
	var fn CoordFunc
	switch len(terms) {
	case 2:
		fn = func() geom.Vec3 { return geom.Vec3{1, terms[0](), terms[1]()} }
	case 3:
		fn = func() geom.Vec3 { return geom.Vec3{terms[0](), terms[1](), terms[2]()} }
	default:
		return nil, invalid("want 2 or 3 coordinates, got %d", len(terms))
	}
	return []Element{&point{coords: fn}}, nil
}

func newLine(_ *Board, parents []Parent) ([]Element, error) {
	switch len(parents) {
	case 2:
		p, err := pointAt(parents, 0)
		if err != nil {
			return nil, err
		}
		q, err := pointAt(parents, 1)
		if err != nil {
			return nil, err
		}
		l := &line{p1: p, p2: q, std: func() geom.Vec3 { return geom.Join(p.Coords(), q.Coords()) }}
		l.parents = elems(p, q)
		return []Element{l}, nil
	case 3:
		terms, err := scalars(parents)
		if err != nil {
			return nil, err
		}
		return []Element{&line{std: func() geom.Vec3 { return geom.Vec3{terms[0](), terms[1](), terms[2]()} }}}, nil
	}
	return nil, invalid("want 2 points or 3 coefficients, got %d parents", len(parents))
}

func newCircle(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	center, err := pointAt(parents, 0)
	if err != nil {
		return nil, err
	}
	if through, ok := parents[1].Element.(Point); ok {
		c := &circle{center: center, radius: func() float64 {
			return distance(center, through)
		}}
		c.parents = elems(center, through)
		return []Element{c}, nil
	}
	r, ok := parents[1].scalar()
	if !ok {
		return nil, invalid("parent 1 is neither a point nor a radius")
	}
	c := &circle{center: center, radius: r}
	c.parents = elems(center)
	return []Element{c}, nil
}

func newGlider(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 3); err != nil {
		return nil, err
	}
	terms, err := scalars(parents[:2])
	if err != nil {
		return nil, err
	}
	curve, err := curveAt(parents, 2)
	if err != nil {
		return nil, err
	}
	x0, y0 := terms[0](), terms[1]()
	g := &point{coords: Project(curve, x0, y0)}
	g.parents = elems(curve)
	g.attrs = Attributes{AttrSlideObject: curve.ID()}
	return []Element{g}, nil
}

func newMidpoint(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	p, err := pointAt(parents, 0)
	if err != nil {
		return nil, err
	}
	q, err := pointAt(parents, 1)
	if err != nil {
		return nil, err
	}
	m := &point{coords: Midpoint(p, q)}
	m.parents = elems(p, q)
	return []Element{m}, nil
}

func newIntersection(b *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 3); err != nil {
		return nil, err
	}
	c1, err := curveAt(parents, 0)
	if err != nil {
		return nil, err
	}
	c2, err := curveAt(parents, 1)
	if err != nil {
		return nil, err
	}
	branch, ok := parents[2].scalar()
	if !ok {
		return nil, invalid("parent 2 is not a branch index")
	}
	p := &point{coords: b.Intersection(c1, c2, int(branch()))}
	p.parents = elems(c1, c2)
	return []Element{p}, nil
}

func newOtherIntersection(b *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 3); err != nil {
		return nil, err
	}
	c1, err := curveAt(parents, 0)
	if err != nil {
		return nil, err
	}
	c2, err := curveAt(parents, 1)
	if err != nil {
		return nil, err
	}
	known, err := pointAt(parents, 2)
	if err != nil {
		return nil, err
	}
	p := &point{coords: b.OtherIntersection(c1, c2, known)}
	p.parents = elems(c1, c2, known)
	return []Element{p}, nil
}

func newParallel(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	l, err := lineAt(parents, 0)
	if err != nil {
		return nil, err
	}
	p, err := pointAt(parents, 1)
	if err != nil {
		return nil, err
	}
	par := &line{p1: p, std: func() geom.Vec3 { return geom.Parallel(l.Stdform(), p.Coords()) }}
	par.parents = elems(l, p)
	return []Element{par}, nil
}

func newPerpendicular(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	l, err := lineAt(parents, 0)
	if err != nil {
		return nil, err
	}
	p, err := pointAt(parents, 1)
	if err != nil {
		return nil, err
	}
	foot := &point{coords: func() geom.Vec3 { return geom.Foot(l.Stdform(), p.Coords()) }}
	foot.parents = elems(l, p)
	perp := &line{p1: foot, p2: p, std: func() geom.Vec3 { return geom.Perpendicular(l.Stdform(), p.Coords()) }}
	perp.parents = elems(l, p)
	return []Element{perp, foot}, nil
}

func newCircumcircle(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 3); err != nil {
		return nil, err
	}
	var pts [3]Point
	for i := range pts {
		p, err := pointAt(parents, i)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	center := &point{coords: func() geom.Vec3 {
		return geom.Circumcenter(pts[0].Coords(), pts[1].Coords(), pts[2].Coords())
	}}
	center.parents = elems(pts[0], pts[1], pts[2])
	c := &circle{center: center, radius: func() float64 { return distance(center, pts[0]) }}
	c.parents = elems(center, pts[0])
	return []Element{center, c}, nil
}

func newBisector(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 3); err != nil {
		return nil, err
	}
	var pts [3]Point
	for i := range pts {
		p, err := pointAt(parents, i)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	vertex := pts[1]
	// The second defining point sits one unit along the bisector so that a
	// ray drawn from Point1 through Point2 opens into the angle.
	helper := &point{coords: func() geom.Vec3 {
		dx, dy, ok := geom.BisectorDirection(pts[0].Coords(), vertex.Coords(), pts[2].Coords())
		if !ok {
			return geom.Undefined()
		}
		return geom.Point(vertex.X()+dx, vertex.Y()+dy)
	}}
	helper.kind = KindBisector
	helper.parents = elems(pts[0], pts[1], pts[2])
	ray := &line{p1: vertex, p2: helper, std: func() geom.Vec3 {
		return geom.Join(vertex.Coords(), helper.Coords())
	}}
	ray.parents = elems(pts[0], pts[1], pts[2])
	return []Element{ray}, nil
}

func newBisectorLines(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	l1, err := lineAt(parents, 0)
	if err != nil {
		return nil, err
	}
	l2, err := lineAt(parents, 1)
	if err != nil {
		return nil, err
	}
	first := &line{std: func() geom.Vec3 {
		b, _ := geom.Bisectors(l1.Stdform(), l2.Stdform())
		return b
	}}
	first.parents = elems(l1, l2)
	second := &line{std: func() geom.Vec3 {
		_, b := geom.Bisectors(l1.Stdform(), l2.Stdform())
		return b
	}}
	second.parents = elems(l1, l2)
	return []Element{first, second}, nil
}

func newTangent(_ *Board, parents []Parent) ([]Element, error) {
	if err := arity(parents, 2); err != nil {
		return nil, err
	}
	p, err := pointAt(parents, 0)
	if err != nil {
		return nil, err
	}
	c, err := circleAt(parents, 1)
	if err != nil {
		return nil, err
	}
	t := &line{p1: p, std: func() geom.Vec3 { return geom.Polar(c.QuadraticForm(), p.Coords()) }}
	t.parents = elems(p, c)
	return []Element{t}, nil
}

func distance(p, q Point) float64 {
	px, py, ok1 := p.Coords().Euclidean()
	qx, qy, ok2 := q.Coords().Euclidean()
	if !ok1 || !ok2 {
		return math.NaN()
	}
	return geom.Dist(px, py, qx, qy)
}

// Project returns a live function placing a point on curve, closest to
// (x, y). It is how gliders follow their curve.
func Project(curve Element, x, y float64) CoordFunc {
	return func() geom.Vec3 {
		switch c := curve.(type) {
		case Line:
			return geom.Foot(c.Stdform(), geom.Point(x, y))
		case Circle:
			cx, cy, ok := c.Center().Coords().Euclidean()
			if !ok {
				return geom.Undefined()
			}
			r := c.Radius()
			d := geom.Dist(cx, cy, x, y)
			if geom.NearZero(d) {
				return geom.Point(cx+r, cy)
			}
			return geom.Point(cx+r*(x-cx)/d, cy+r*(y-cy)/d)
		}
		return geom.Undefined()
	}
}

// Midpoint returns a live function for the midpoint of p and q.
func Midpoint(p, q Point) CoordFunc {
	return func() geom.Vec3 {
		px, py, ok1 := p.Coords().Euclidean()
		qx, qy, ok2 := q.Coords().Euclidean()
		if !ok1 || !ok2 {
			return geom.Undefined()
		}
		return geom.Point((px+qx)/2, (py+qy)/2)
	}
}
