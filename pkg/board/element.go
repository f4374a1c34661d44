package board

import (
	"math"

	"github.com/matzehuels/intergeo/pkg/geom"
)

// Element is any object living on a board.
type Element interface {
	ID() string
	Name() string
	Kind() Kind
	Attributes() Attributes
	// Parents returns the elements this one is computed from.
	Parents() []Element
}

// Point is an element with a position.
type Point interface {
	Element
	// Coords returns the normalized homogeneous coordinates [z, x, y].
	Coords() geom.Vec3
	X() float64
	Y() float64
	Z() float64
}

// Line is a line, segment or ray.
type Line interface {
	Element
	// Stdform returns the coefficients [c, a, b] of c·z + a·x + b·y = 0.
	Stdform() geom.Vec3
	// Point1 and Point2 return the defining points, or nil for lines
	// given by coefficients.
	Point1() Point
	Point2() Point
}

// Circle is a circle.
type Circle interface {
	Element
	Center() Point
	Radius() float64
	// QuadraticForm returns the 3×3 form in weight-first order.
	QuadraticForm() geom.Mat3
}

type base struct {
	id      string
	name    string
	kind    Kind
	attrs   Attributes
	parents []Element
}

func (e *base) ID() string             { return e.id }
func (e *base) Name() string           { return e.name }
func (e *base) Kind() Kind             { return e.kind }
func (e *base) Attributes() Attributes { return e.attrs }
func (e *base) Parents() []Element     { return e.parents }

type point struct {
	base
	coords CoordFunc
}

func (p *point) Coords() geom.Vec3 { return p.coords().Normalize() }
func (p *point) X() float64        { return p.Coords()[1] }
func (p *point) Y() float64        { return p.Coords()[2] }
func (p *point) Z() float64        { return p.Coords()[0] }

type line struct {
	base
	std    CoordFunc
	p1, p2 Point
}

func (l *line) Stdform() geom.Vec3 { return l.std() }
func (l *line) Point1() Point      { return l.p1 }
func (l *line) Point2() Point      { return l.p2 }

type circle struct {
	base
	center Point
	radius Term
}

func (c *circle) Center() Point   { return c.center }
func (c *circle) Radius() float64 { return c.radius() }

func (c *circle) QuadraticForm() geom.Mat3 {
	x, y, ok := c.center.Coords().Euclidean()
	if !ok {
		nan := math.NaN()
		return geom.Mat3{{nan, nan, nan}, {nan, nan, nan}, {nan, nan, nan}}
	}
	return geom.CircleForm(x, y, c.Radius())
}

var (
	_ Point  = (*point)(nil)
	_ Line   = (*line)(nil)
	_ Circle = (*circle)(nil)
)
