package board

import (
	"errors"
	"fmt"

	"github.com/matzehuels/intergeo/pkg/geom"
)

var (
	// ErrInvalidParents is returned by [Board.Create] when the parents do
	// not match the arity or element types the kind requires.
	ErrInvalidParents = errors.New("invalid parents")

	// ErrDuplicateID is returned by [Board.Create] when an explicit ID is
	// already taken on the board.
	ErrDuplicateID = errors.New("duplicate element ID")

	// ErrForeignElement is returned when an element passed to the board was
	// not created by it.
	ErrForeignElement = errors.New("element does not belong to this board")

	// ErrUnknownKind is returned by [Board.Create] for kinds outside the
	// [Kind] enumeration.
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrCycle is returned by [Board.Constrain] when the new coordinate
	// function would make a point depend on itself.
	ErrCycle = errors.New("point would depend on itself")
)

// Engine is the host geometry engine contract.
type Engine interface {
	// Create builds the elements of the given kind. Most kinds yield one
	// element; KindPerpendicular, KindCircumcircle and KindBisectorLines
	// yield two.
	Create(kind Kind, parents []Parent, attrs Attributes) ([]Element, error)

	// SetProperty merges attrs into the element's attributes.
	SetProperty(e Element, attrs Attributes) error

	// Constrain replaces a point's coordinate function. deps are recorded
	// as additional parents of the point. It fails with [ErrCycle] when p
	// is reachable from deps.
	Constrain(p Point, fn CoordFunc, deps ...Element) error

	// Intersection returns a live function for one branch of the
	// intersection of two curves.
	Intersection(a, b Element, branch int) CoordFunc

	// OtherIntersection returns a live function for the intersection of two
	// curves that differs from known.
	OtherIntersection(a, b Element, known Point) CoordFunc
}

// GeneratedIDPrefix starts the IDs the board assigns to elements created
// without an explicit [AttrID]. Document identifiers never contain it.
const GeneratedIDPrefix = "#"

// Board is the in-memory reference [Engine].
type Board struct {
	elements []Element
	byID     map[string]Element
	seq      int
	traces   map[string][]geom.Vec3
}

// New creates an empty board.
func New() *Board {
	return &Board{
		byID:   make(map[string]Element),
		traces: make(map[string][]geom.Vec3),
	}
}

// Elements returns every element in creation order, hidden ones included.
func (b *Board) Elements() []Element { return b.elements }

// Element returns the element with the given ID.
func (b *Board) Element(id string) (Element, bool) {
	e, ok := b.byID[id]
	return e, ok
}

// Len returns the number of elements on the board.
func (b *Board) Len() int { return len(b.elements) }

// Create implements [Engine].
func (b *Board) Create(kind Kind, parents []Parent, attrs Attributes) ([]Element, error) {
	var deps []Element
	for _, p := range parents {
		if p.Element != nil && !b.owns(p.Element) {
			return nil, fmt.Errorf("%s: %w: %s", kind, ErrForeignElement, p.Element.ID())
		}
		for _, d := range p.Deps {
			if !b.owns(d) {
				return nil, fmt.Errorf("%s: %w: %s", kind, ErrForeignElement, d.ID())
			}
		}
		deps = append(deps, p.Deps...)
	}
	if attrs == nil {
		attrs = Attributes{}
	}

	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}
	elems, err := ctor(b, parents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	multi := len(elems) > 1
	for i, e := range elems {
		a := attrs
		if multi {
			a = attrs.forOutput(i)
		}
		if err := b.register(e, kind, a); err != nil {
			return nil, err
		}
		bs := baseOf(e)
		bs.parents = append(bs.parents, deps...)
	}
	return elems, nil
}

// SetProperty implements [Engine].
func (b *Board) SetProperty(e Element, attrs Attributes) error {
	if !b.owns(e) {
		return fmt.Errorf("set property: %w: %s", ErrForeignElement, e.ID())
	}
	bs := baseOf(e)
	for k, v := range attrs {
		bs.attrs[k] = v
	}
	return nil
}

// Constrain implements [Engine].
func (b *Board) Constrain(p Point, fn CoordFunc, deps ...Element) error {
	pt, ok := p.(*point)
	if !ok || !b.owns(p) {
		return fmt.Errorf("constrain: %w: %s", ErrForeignElement, p.ID())
	}
	if dependsOn(deps, p) {
		return fmt.Errorf("constrain %s: %w", p.ID(), ErrCycle)
	}
	pt.coords = fn
	pt.parents = append(pt.parents, deps...)
	return nil
}

// Update evaluates every element and appends a trace sample for each
// element whose AttrTrace is set. Point samples are coordinates, line
// samples are standard forms and circle samples are [radius, x, y].
func (b *Board) Update() {
	for _, e := range b.elements {
		if !e.Attributes().Bool(AttrTrace, false) {
			continue
		}
		var sample geom.Vec3
		switch el := e.(type) {
		case Point:
			sample = el.Coords()
		case Line:
			sample = el.Stdform()
		case Circle:
			c := el.Center().Coords()
			sample = geom.Vec3{el.Radius(), c[1], c[2]}
		default:
			continue
		}
		b.traces[e.ID()] = append(b.traces[e.ID()], sample)
	}
}

// Trace returns the samples recorded by [Board.Update] for an element.
func (b *Board) Trace(id string) []geom.Vec3 { return b.traces[id] }

func (b *Board) owns(e Element) bool {
	got, ok := b.byID[e.ID()]
	return ok && got == e
}

// dependsOn reports whether target is one of roots or an ancestor of them.
func dependsOn(roots []Element, target Element) bool {
	seen := make(map[Element]bool)
	stack := append([]Element(nil), roots...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e == nil || seen[e] {
			continue
		}
		if e == target {
			return true
		}
		seen[e] = true
		stack = append(stack, e.Parents()...)
	}
	return false
}

// register assigns identity and attributes and appends e to the board.
func (b *Board) register(e Element, kind Kind, attrs Attributes) error {
	bs := baseOf(e)
	b.seq++
	id := attrs.String(AttrID)
	if id == "" {
		id = fmt.Sprintf("%s%s_%d", GeneratedIDPrefix, kind, b.seq)
	}
	if _, taken := b.byID[id]; taken {
		return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
	}
	bs.id = id
	bs.name = attrs.String(AttrName)
	bs.attrs = bs.attrs.Merge(attrs)
	bs.attrs[AttrID] = id
	bs.kind = kind
	b.byID[id] = e
	b.elements = append(b.elements, e)
	return nil
}

func baseOf(e Element) *base {
	switch el := e.(type) {
	case *point:
		return &el.base
	case *line:
		return &el.base
	case *circle:
		return &el.base
	}
	panic(fmt.Sprintf("board: unexpected element type %T", e))
}
