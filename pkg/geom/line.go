package geom

import "math"

// Parallel returns the line parallel to l through p.
func Parallel(l, p Vec3) Vec3 {
	x, y, ok := p.Euclidean()
	if !ok {
		return Undefined()
	}
	return Vec3{-(l[1]*x + l[2]*y), l[1], l[2]}
}

// Perpendicular returns the line perpendicular to l through p.
func Perpendicular(l, p Vec3) Vec3 {
	x, y, ok := p.Euclidean()
	if !ok {
		return Undefined()
	}
	return Vec3{l[2]*x - l[1]*y, -l[2], l[1]}
}

// unitNormal scales a line so that (a, b) has length 1, turning c·z + a·x + b·y
// into a signed distance.
func unitNormal(l Vec3) (Vec3, bool) {
	n := math.Hypot(l[1], l[2])
	if NearZero(n) {
		return l, false
	}
	return Vec3{l[0] / n, l[1] / n, l[2] / n}, true
}

// Bisectors returns the two angle bisectors of lines l and m:
// the difference and the sum of their unit-normal forms.
func Bisectors(l, m Vec3) (Vec3, Vec3) {
	ln, ok1 := unitNormal(l)
	mn, ok2 := unitNormal(m)
	if !ok1 || !ok2 {
		return Undefined(), Undefined()
	}
	return Vec3{ln[0] - mn[0], ln[1] - mn[1], ln[2] - mn[2]},
		Vec3{ln[0] + mn[0], ln[1] + mn[1], ln[2] + mn[2]}
}

// BisectorDirection returns the unit direction of the bisector of the angle
// a-vertex-c, pointing into the angle.
func BisectorDirection(a, vertex, c Vec3) (dx, dy float64, ok bool) {
	ax, ay, ok1 := a.Euclidean()
	vx, vy, ok2 := vertex.Euclidean()
	cx, cy, ok3 := c.Euclidean()
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, false
	}
	la, lc := math.Hypot(ax-vx, ay-vy), math.Hypot(cx-vx, cy-vy)
	if NearZero(la) || NearZero(lc) {
		return 0, 0, false
	}
	dx = (ax-vx)/la + (cx-vx)/lc
	dy = (ay-vy)/la + (cy-vy)/lc
	n := math.Hypot(dx, dy)
	if NearZero(n) {
		// Straight angle: the bisector is the normal of the arms.
		return -(ay - vy) / la, (ax - vx) / la, true
	}
	return dx / n, dy / n, true
}
