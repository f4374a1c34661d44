package intergeo

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// ConstraintKind is the kind of a node in the constraints section. Aliases
// of the same construction share a kind.
type ConstraintKind int

const (
	ConstraintUnsupported ConstraintKind = iota
	LineThroughTwoPoints
	LineThroughPoint
	LineParallelToLineThroughPoint
	LinePerpendicularToLineThroughPoint
	LineSegmentByPoints
	EndpointsOfLineSegment
	FreePoint
	FreeLine
	PointOnLine
	PointOnCircle
	MidpointOfTwoPoints
	MidpointOfLineSegment
	PointIntersectionOfTwoLines
	IntersectionPoints
	OtherIntersectionPoint
	CircleByThreePoints
	CircleByCenterAndPoint
	CenterOfCircle
	AngularBisectorOfThreePoints
	AngularBisectorsOfTwoLines
	CircleTangentLinesByPoint
	Locus
)

var constraintTags = map[string]ConstraintKind{
	"line_through_two_points":                     LineThroughTwoPoints,
	"line_through_point":                          LineThroughPoint,
	"line_parallel_to_line_through_point":         LineParallelToLineThroughPoint,
	"line_perpendicular_to_line_through_point":    LinePerpendicularToLineThroughPoint,
	"line_segment_by_points":                      LineSegmentByPoints,
	"endpoints_of_line_segment":                   EndpointsOfLineSegment,
	"free_point":                                  FreePoint,
	"free_line":                                   FreeLine,
	"point_on_line":                               PointOnLine,
	"point_on_line_segment":                       PointOnLine,
	"point_on_circle":                             PointOnCircle,
	"midpoint_of_two_points":                      MidpointOfTwoPoints,
	"midpoint":                                    MidpointOfTwoPoints,
	"midpoint_of_line_segment":                    MidpointOfLineSegment,
	"point_intersection_of_two_lines":             PointIntersectionOfTwoLines,
	"intersection_points_of_two_circles":          IntersectionPoints,
	"intersection_points_of_circle_and_line":      IntersectionPoints,
	"other_intersection_point_of_two_circles":     OtherIntersectionPoint,
	"other_intersection_point_of_circle_and_line": OtherIntersectionPoint,
	"circle_by_three_points":                      CircleByThreePoints,
	"circle_by_center_and_point":                  CircleByCenterAndPoint,
	"center_of_circle":                            CenterOfCircle,
	"angular_bisector_of_three_points":            AngularBisectorOfThreePoints,
	"angular_bisectors_of_two_lines":              AngularBisectorsOfTwoLines,
	"circle_tangent_lines_by_point":               CircleTangentLinesByPoint,
	"locus_defined_by_point":                      Locus,
	"locus_defined_by_point_on_line":              Locus,
	"locus_defined_by_point_on_line_segment":      Locus,
	"locus_defined_by_line_through_point":         Locus,
	"locus_defined_by_point_on_circle":            Locus,
}

// ConstraintKindOf maps a constraint tag to its kind.
func ConstraintKindOf(tag string) ConstraintKind {
	return constraintTags[tag]
}

// SupportedConstraints returns every recognized constraint tag.
func SupportedConstraints() []string {
	tags := make([]string, 0, len(constraintTags))
	for tag := range constraintTags {
		tags = append(tags, tag)
	}
	return tags
}

// arity is the number of parameters each kind reads.
var arity = [...]int{
	LineThroughTwoPoints:                3,
	LineThroughPoint:                    2,
	LineParallelToLineThroughPoint:      3,
	LinePerpendicularToLineThroughPoint: 3,
	LineSegmentByPoints:                 3,
	EndpointsOfLineSegment:              3,
	FreePoint:                           1,
	FreeLine:                            1,
	PointOnLine:                         2,
	PointOnCircle:                       2,
	MidpointOfTwoPoints:                 3,
	MidpointOfLineSegment:               2,
	PointIntersectionOfTwoLines:         3,
	IntersectionPoints:                  4,
	OtherIntersectionPoint:              4,
	CircleByThreePoints:                 4,
	CircleByCenterAndPoint:              3,
	CenterOfCircle:                      2,
	AngularBisectorOfThreePoints:        4,
	AngularBisectorsOfTwoLines:          4,
	CircleTangentLinesByPoint:           4,
	Locus:                               2,
}

// Node is one constraint of the document.
type Node struct {
	Kind ConstraintKind
	Tag  string
	// Params are the identifiers named by the node, outputs first.
	Params []string
}

func newNode(el *etree.Element) Node {
	return Node{Kind: ConstraintKindOf(el.Tag), Tag: el.Tag, Params: readParams(el)}
}

// readParams returns the text of every child element in document order.
func readParams(el *etree.Element) []string {
	children := el.ChildElements()
	params := make([]string, len(children))
	for i, child := range children {
		params[i] = strings.TrimSpace(child.Text())
	}
	return params
}

// first returns params[0], or "" for a node without parameters.
func (n Node) first() string {
	if len(n.Params) == 0 {
		return ""
	}
	return n.Params[0]
}

// dispatch applies every constraint in document order. It stops at the
// first error that is not recoverable.
func (im *importer) dispatch(constraints *etree.Element) error {
	for _, el := range constraints.ChildElements() {
		node := newNode(el)
		if node.Kind == ConstraintUnsupported {
			im.diags.report(errors.New(errors.ErrCodeUnsupportedConstraint,
				"readConstraints: not implemented: %s: %s", node.Tag, node.first()).About(node.Tag))
			continue
		}
		if want := arity[node.Kind]; len(node.Params) < want {
			return errors.New(errors.ErrCodeMalformedDocument,
				"%s needs %d parameters, got %d", node.Tag, want, len(node.Params)).About(node.first())
		}
		if err := im.apply(node); err != nil {
			return err
		}
		im.applied++
		im.logger.Debug("applied constraint", "kind", node.Tag, "id", node.first())
	}
	return nil
}

func (im *importer) apply(n Node) error {
	p := n.Params
	switch n.Kind {
	case LineThroughTwoPoints:
		return im.lineThroughTwoPoints(p[0], p[1], p[2])
	case LineThroughPoint:
		return im.lineThroughPoint(p[0], p[1])
	case LineParallelToLineThroughPoint:
		return im.parallel(p[0], p[1], p[2])
	case LinePerpendicularToLineThroughPoint:
		return im.perpendicular(p[0], p[1], p[2])
	case LineSegmentByPoints:
		return im.segment(p[0], p[1], p[2])
	case EndpointsOfLineSegment:
		return im.endpoints(p[0], p[1], p[2])
	case FreePoint:
		_, err := im.realizePoint(p[0])
		return err
	case FreeLine:
		return im.freeLine(p[0])
	case PointOnLine:
		return im.glider(p[0], p[1], true)
	case PointOnCircle:
		return im.glider(p[0], p[1], false)
	case MidpointOfTwoPoints:
		return im.midpoint(p[0], p[1], p[2])
	case MidpointOfLineSegment:
		return im.midpointOfSegment(p[0], p[1])
	case PointIntersectionOfTwoLines:
		return im.lineIntersection(p[0], p[1], p[2])
	case IntersectionPoints:
		return im.intersectionPoints(p[0], p[1], p[2], p[3])
	case OtherIntersectionPoint:
		return im.otherIntersection(p[0], p[1], p[2], p[3])
	case CircleByThreePoints:
		return im.circumcircle(p[0], p[1], p[2], p[3])
	case CircleByCenterAndPoint:
		return im.circleByCenterAndPoint(p[0], p[1], p[2])
	case CenterOfCircle:
		return im.centerOfCircle(p[0], p[1])
	case AngularBisectorOfThreePoints:
		return im.bisector(p[0], p[1], p[2], p[3])
	case AngularBisectorsOfTwoLines:
		return im.bisectorLines(p[0], p[1], p[2], p[3])
	case CircleTangentLinesByPoint:
		return im.tangents(p[0], p[1], p[2], p[3])
	case Locus:
		return im.locus(p[1])
	case ConstraintUnsupported:
	}
	return errors.New(errors.ErrCodeUnsupportedConstraint, "no handler for %s", n.Tag).About(n.Tag)
}
