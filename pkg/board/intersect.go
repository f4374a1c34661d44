package board

import (
	"math"

	"github.com/matzehuels/intergeo/pkg/geom"
)

// Intersection implements [Engine]. Line-line intersections ignore the
// branch; line-circle pairs are solved in either order with the same branch
// numbering.
func (b *Board) Intersection(c1, c2 Element, branch int) CoordFunc {
	return func() geom.Vec3 {
		switch x := c1.(type) {
		case Line:
			switch y := c2.(type) {
			case Line:
				return geom.Meet(x.Stdform(), y.Stdform())
			case Circle:
				return lineCircle(x, y, branch)
			}
		case Circle:
			switch y := c2.(type) {
			case Line:
				return lineCircle(y, x, branch)
			case Circle:
				return circleCircle(x, y, branch)
			}
		}
		return geom.Undefined()
	}
}

// OtherIntersection implements [Engine]. Of the two branches it returns the
// one farther away from known.
func (b *Board) OtherIntersection(c1, c2 Element, known Point) CoordFunc {
	first, second := b.Intersection(c1, c2, 0), b.Intersection(c1, c2, 1)
	return func() geom.Vec3 {
		p, q := first(), second()
		kx, ky, ok := known.Coords().Euclidean()
		if !ok {
			return geom.Undefined()
		}
		if dist(p, kx, ky) >= dist(q, kx, ky) {
			return p
		}
		return q
	}
}

func dist(p geom.Vec3, x, y float64) float64 {
	px, py, ok := p.Euclidean()
	if !ok {
		return math.Inf(-1)
	}
	return geom.Dist(px, py, x, y)
}

func lineCircle(l Line, c Circle, branch int) geom.Vec3 {
	cx, cy, ok := c.Center().Coords().Euclidean()
	if !ok {
		return geom.Undefined()
	}
	return geom.IntersectLineCircle(l.Stdform(), cx, cy, c.Radius(), branch)
}

func circleCircle(c1, c2 Circle, branch int) geom.Vec3 {
	x1, y1, ok1 := c1.Center().Coords().Euclidean()
	x2, y2, ok2 := c2.Center().Coords().Euclidean()
	if !ok1 || !ok2 {
		return geom.Undefined()
	}
	return geom.IntersectCircles(x1, y1, c1.Radius(), x2, y2, c2.Radius(), branch)
}
