package board

import (
	"fmt"

	"github.com/matzehuels/intergeo/pkg/geom"
)

// Kind selects the construction performed by [Engine.Create].
type Kind int

const (
	// KindPoint is a free point: 2 parents (x, y) or 3 parents (z, x, y).
	KindPoint Kind = iota
	// KindLine is a line through 2 points, or given by 3 coefficients (c, a, b).
	KindLine
	// KindCircle is a circle from a center point and a point on it or a radius.
	KindCircle
	// KindGlider is a point (x, y, curve) bound to a line or circle.
	KindGlider
	// KindMidpoint is the midpoint of 2 points.
	KindMidpoint
	// KindIntersection is an intersection (curve, curve, branch).
	KindIntersection
	// KindOtherIntersection is the intersection (curve, curve, known) that is not known.
	KindOtherIntersection
	// KindParallel is the parallel to a line (line, point) through a point.
	KindParallel
	// KindPerpendicular yields the perpendicular (line, point) and its foot.
	KindPerpendicular
	// KindCircumcircle yields the center and the circle through 3 points.
	KindCircumcircle
	// KindBisector is the bisecting ray of the angle (a, vertex, c).
	KindBisector
	// KindBisectorLines yields both angle bisectors of 2 lines.
	KindBisectorLines
	// KindTangent is the tangent (point, circle) at a point of a circle.
	KindTangent
)

var kindNames = [...]string{
	KindPoint:             "point",
	KindLine:              "line",
	KindCircle:            "circle",
	KindGlider:            "glider",
	KindMidpoint:          "midpoint",
	KindIntersection:      "intersection",
	KindOtherIntersection: "otherintersection",
	KindParallel:          "parallel",
	KindPerpendicular:     "perpendicular",
	KindCircumcircle:      "circumcircle",
	KindBisector:          "bisector",
	KindBisectorLines:     "bisectorlines",
	KindTangent:           "tangent",
}

// String returns the engine name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Term is a live scalar re-evaluated on every access.
type Term func() float64

// CoordFunc is a live homogeneous point re-evaluated on every access.
type CoordFunc func() geom.Vec3

// Parent is one positional argument of [Engine.Create]: an element, a
// constant or a live term. Exactly one of the fields is meaningful; an
// element takes precedence over a term, a term over a constant.
type Parent struct {
	Element Element
	Term    Term
	Value   float64
	// Deps lists the elements a Term reads. They become parents of the
	// created elements.
	Deps []Element
}

// Of wraps an element as a parent.
func Of(e Element) Parent { return Parent{Element: e} }

// Num wraps a constant as a parent.
func Num(v float64) Parent { return Parent{Value: v} }

// Live wraps a live term as a parent. deps are the elements t reads.
func Live(t Term, deps ...Element) Parent { return Parent{Term: t, Deps: deps} }

// scalar returns a term evaluating the parent, or false if it is an element.
func (p Parent) scalar() (Term, bool) {
	switch {
	case p.Element != nil:
		return nil, false
	case p.Term != nil:
		return p.Term, true
	default:
		v := p.Value
		return func() float64 { return v }, true
	}
}
