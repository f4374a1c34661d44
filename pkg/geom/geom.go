// Package geom provides projective plane primitives shared by the host
// engine and the importer.
//
// All homogeneous quantities use weight-first order: a point is [z, x, y]
// with Euclidean position (x/z, y/z), and a line is [c, a, b] describing
// c·z + a·x + b·y = 0. With this convention the line through two points and
// the meet of two lines are both a cross product, and a circle's polar line
// is a matrix-vector product with its quadratic form.
package geom

import "math"

// Eps is the tolerance below which a quantity is treated as zero.
const Eps = 1e-10

// Vec3 is a homogeneous triple in weight-first order.
type Vec3 [3]float64

// Mat3 is a 3×3 matrix acting on weight-first homogeneous vectors.
type Mat3 [3][3]float64

// Point returns the homogeneous coordinates of the Euclidean point (x, y).
func Point(x, y float64) Vec3 { return Vec3{1, x, y} }

// Undefined returns a vector whose components are all NaN. It marks the
// result of a construction that has no real solution in the current state.
func Undefined() Vec3 { return Vec3{math.NaN(), math.NaN(), math.NaN()} }

// IsUndefined reports whether any component of v is NaN.
func (v Vec3) IsUndefined() bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}

// Normalize scales a point so that its weight is 1. Points at infinity
// (weight near zero) are returned unchanged.
func (v Vec3) Normalize() Vec3 {
	if NearZero(v[0]) {
		return v
	}
	return Vec3{1, v[1] / v[0], v[2] / v[0]}
}

// Euclidean returns the Euclidean position of a homogeneous point.
// ok is false for points at infinity and undefined points.
func (v Vec3) Euclidean() (x, y float64, ok bool) {
	if v.IsUndefined() || NearZero(v[0]) {
		return 0, 0, false
	}
	return v[1] / v[0], v[2] / v[0], true
}

// NearZero reports whether |f| < Eps.
func NearZero(f float64) bool { return math.Abs(f) < Eps }

// Cross returns the cross product a × b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dot returns the scalar product a · b.
func Dot(a, b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// MulVec returns m · v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	var out Vec3
	for i := range 3 {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// Join returns the line through two points.
func Join(p, q Vec3) Vec3 { return Cross(p, q) }

// Meet returns the intersection point of two lines.
func Meet(l, m Vec3) Vec3 { return Cross(l, m) }

// Dist returns the Euclidean distance between (x1, y1) and (x2, y2).
func Dist(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }
