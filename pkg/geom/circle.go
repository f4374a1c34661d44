package geom

import "math"

// CircleForm returns the quadratic form of the circle with center (cx, cy)
// and radius r, so that p·(M·p) = 0 for every point p on the circle.
func CircleForm(cx, cy, r float64) Mat3 {
	return Mat3{
		{cx*cx + cy*cy - r*r, -cx, -cy},
		{-cx, 1, 0},
		{-cy, 0, 1},
	}
}

// Polar returns the polar line of p with respect to the conic form. For a
// point on the conic this is the tangent line at p.
func Polar(form Mat3, p Vec3) Vec3 { return form.MulVec(p) }

// Foot returns the orthogonal projection of p onto line l.
func Foot(l, p Vec3) Vec3 {
	x, y, ok := p.Euclidean()
	n := math.Hypot(l[1], l[2])
	if !ok || NearZero(n) {
		return Undefined()
	}
	d := (l[0] + l[1]*x + l[2]*y) / (n * n)
	return Point(x-d*l[1], y-d*l[2])
}

// IntersectLineCircle returns one of the two intersections of line l with
// the circle (cx, cy, r). Branch 0 lies in direction (-b, a) from the foot
// of the perpendicular through the center, branch 1 in the opposite one.
// Tangency yields the same point for both branches.
func IntersectLineCircle(l Vec3, cx, cy, r float64, branch int) Vec3 {
	n := math.Hypot(l[1], l[2])
	if NearZero(n) {
		return Undefined()
	}
	d := (l[0] + l[1]*cx + l[2]*cy) / n
	h2 := r*r - d*d
	if h2 < -Eps {
		return Undefined()
	}
	h := math.Sqrt(math.Max(h2, 0))
	fx, fy := cx-d*l[1]/n, cy-d*l[2]/n
	tx, ty := -l[2]/n, l[1]/n
	if branch != 0 {
		h = -h
	}
	return Point(fx+h*tx, fy+h*ty)
}

// IntersectCircles returns one of the two intersections of the circles
// (c1x, c1y, r1) and (c2x, c2y, r2). Branch 0 lies to the left of the
// directed center line from the first to the second circle.
func IntersectCircles(c1x, c1y, r1, c2x, c2y, r2 float64, branch int) Vec3 {
	dx, dy := c2x-c1x, c2y-c1y
	d := math.Hypot(dx, dy)
	if NearZero(d) || d > r1+r2+Eps || d < math.Abs(r1-r2)-Eps {
		return Undefined()
	}
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(r1*r1-a*a, 0))
	bx, by := c1x+a*dx/d, c1y+a*dy/d
	if branch != 0 {
		h = -h
	}
	return Point(bx-h*dy/d, by+h*dx/d)
}

// Circumcenter returns the center of the circle through a, b and c.
// Collinear points have no circumcenter.
func Circumcenter(a, b, c Vec3) Vec3 {
	ax, ay, ok1 := a.Euclidean()
	bx, by, ok2 := b.Euclidean()
	cx, cy, ok3 := c.Euclidean()
	if !ok1 || !ok2 || !ok3 {
		return Undefined()
	}
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if NearZero(d) {
		return Undefined()
	}
	a2, b2, c2 := ax*ax+ay*ay, bx*bx+by*by, cx*cx+cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return Point(ux, uy)
}
