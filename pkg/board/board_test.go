package board

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/intergeo/pkg/geom"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func mustCreate(t *testing.T, b *Board, kind Kind, parents []Parent, attrs Attributes) []Element {
	t.Helper()
	elems, err := b.Create(kind, parents, attrs)
	if err != nil {
		t.Fatalf("Create(%s): %v", kind, err)
	}
	return elems
}

func mustPoint(t *testing.T, b *Board, id string, x, y float64) Point {
	t.Helper()
	return mustCreate(t, b, KindPoint, []Parent{Num(x), Num(y)}, Attributes{AttrID: id})[0].(Point)
}

func assertAt(t *testing.T, p Point, x, y float64) {
	t.Helper()
	if !near(p.X(), x) || !near(p.Y(), y) {
		t.Errorf("%s at (%v, %v), want (%v, %v)", p.ID(), p.X(), p.Y(), x, y)
	}
}

func TestCreatePointRegisters(t *testing.T) {
	b := New()
	p := mustPoint(t, b, "A", 1, 2)

	if p.ID() != "A" || p.Kind() != KindPoint {
		t.Errorf("got id=%q kind=%s", p.ID(), p.Kind())
	}
	if got, ok := b.Element("A"); !ok || got != p {
		t.Error("Element(A) did not return the created point")
	}
	if p.Z() != 1 {
		t.Errorf("Z = %v, want 1", p.Z())
	}
	assertAt(t, p, 1, 2)
}

func TestCreateHomogeneousPoint(t *testing.T) {
	b := New()
	p := mustCreate(t, b, KindPoint, []Parent{Num(2), Num(4), Num(6)}, nil)[0].(Point)
	assertAt(t, p, 2, 3)
	if !strings.HasPrefix(p.ID(), GeneratedIDPrefix) {
		t.Errorf("generated ID %q lacks prefix %q", p.ID(), GeneratedIDPrefix)
	}
}

func TestCreateErrors(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 0, 0)
	other := New()
	foreign := mustPoint(t, other, "F", 0, 0)

	tests := []struct {
		name    string
		kind    Kind
		parents []Parent
		attrs   Attributes
		want    error
	}{
		{"point arity", KindPoint, []Parent{Num(1)}, nil, ErrInvalidParents},
		{"line from point and number", KindLine, []Parent{Of(a), Num(1)}, nil, ErrInvalidParents},
		{"circle without center", KindCircle, []Parent{Num(1), Num(1)}, nil, ErrInvalidParents},
		{"foreign parent", KindMidpoint, []Parent{Of(a), Of(foreign)}, nil, ErrForeignElement},
		{"duplicate id", KindPoint, []Parent{Num(1), Num(1)}, Attributes{AttrID: "A"}, ErrDuplicateID},
		{"unknown kind", Kind(99), nil, nil, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Create(tt.kind, tt.parents, tt.attrs)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLineThroughPoints(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 0, 0)
	c := mustPoint(t, b, "B", 1, 1)
	l := mustCreate(t, b, KindLine, []Parent{Of(a), Of(c)}, Attributes{AttrName: "l"})[0].(Line)

	if l.Name() != "l" || l.Point1() != a || l.Point2() != c {
		t.Fatalf("unexpected line %q %v %v", l.Name(), l.Point1(), l.Point2())
	}
	s := l.Stdform()
	// x - y = 0 up to scale
	if !near(s[0], 0) || !near(s[1], -s[2]) || near(s[1], 0) {
		t.Errorf("Stdform = %v", s)
	}
}

func TestLazyEvaluationFollowsParents(t *testing.T) {
	b := New()
	x := 0.0
	a := mustCreate(t, b, KindPoint, []Parent{Live(func() float64 { return x }), Num(0)}, nil)[0].(Point)
	c := mustPoint(t, b, "B", 4, 2)
	m := mustCreate(t, b, KindMidpoint, []Parent{Of(a), Of(c)}, nil)[0].(Point)

	assertAt(t, m, 2, 1)
	x = 8
	assertAt(t, m, 6, 1)
}

func TestCircleFromPointAndRadius(t *testing.T) {
	b := New()
	m := mustPoint(t, b, "M", 1, 1)
	p := mustPoint(t, b, "P", 4, 5)

	byPoint := mustCreate(t, b, KindCircle, []Parent{Of(m), Of(p)}, nil)[0].(Circle)
	if !near(byPoint.Radius(), 5) {
		t.Errorf("radius = %v, want 5", byPoint.Radius())
	}
	byRadius := mustCreate(t, b, KindCircle, []Parent{Of(m), Num(2)}, nil)[0].(Circle)
	if !near(byRadius.Radius(), 2) || byRadius.Center() != m {
		t.Errorf("radius = %v center = %v", byRadius.Radius(), byRadius.Center())
	}
	q := byRadius.QuadraticForm()
	if !near(q[0][0], 1+1-4) || !near(q[0][1], -1) || !near(q[1][1], 1) {
		t.Errorf("QuadraticForm = %v", q)
	}
}

func TestGliderProjectsOntoCurve(t *testing.T) {
	b := New()
	m := mustPoint(t, b, "M", 0, 0)
	c := mustCreate(t, b, KindCircle, []Parent{Of(m), Num(2)}, Attributes{AttrID: "C"})[0]
	g := mustCreate(t, b, KindGlider, []Parent{Num(0), Num(5), Of(c)}, nil)[0].(Point)

	assertAt(t, g, 0, 2)
	if g.Kind() != KindGlider || g.Attributes().String(AttrSlideObject) != "C" {
		t.Errorf("kind=%s slideObject=%v", g.Kind(), g.Attributes()[AttrSlideObject])
	}

	axis := mustCreate(t, b, KindLine, []Parent{Num(0), Num(0), Num(1)}, nil)[0]
	h := mustCreate(t, b, KindGlider, []Parent{Num(3), Num(7), Of(axis)}, nil)[0].(Point)
	assertAt(t, h, 3, 0)
}

func TestIntersectionBranches(t *testing.T) {
	b := New()
	m1 := mustPoint(t, b, "M1", 0, 0)
	m2 := mustPoint(t, b, "M2", 2, 0)
	c1 := mustCreate(t, b, KindCircle, []Parent{Of(m1), Num(2)}, nil)[0]
	c2 := mustCreate(t, b, KindCircle, []Parent{Of(m2), Num(2)}, nil)[0]

	p := mustCreate(t, b, KindIntersection, []Parent{Of(c1), Of(c2), Num(0)}, nil)[0].(Point)
	q := mustCreate(t, b, KindIntersection, []Parent{Of(c1), Of(c2), Num(1)}, nil)[0].(Point)
	if near(p.Y(), q.Y()) {
		t.Fatalf("branches coincide: %v %v", p.Coords(), q.Coords())
	}
	for _, pt := range []Point{p, q} {
		if !near(pt.X(), 1) || !near(math.Abs(pt.Y()), math.Sqrt(3)) {
			t.Errorf("%v is not an intersection", pt.Coords())
		}
	}

	o := mustCreate(t, b, KindOtherIntersection, []Parent{Of(c1), Of(c2), Of(p)}, nil)[0].(Point)
	assertAt(t, o, q.X(), q.Y())
}

func TestLineLineIntersection(t *testing.T) {
	b := New()
	xAxis := mustCreate(t, b, KindLine, []Parent{Num(0), Num(0), Num(1)}, nil)[0]
	vert := mustCreate(t, b, KindLine, []Parent{Num(-3), Num(1), Num(0)}, nil)[0]
	p := mustCreate(t, b, KindIntersection, []Parent{Of(xAxis), Of(vert), Num(0)}, nil)[0].(Point)
	assertAt(t, p, 3, 0)
}

func TestPerpendicularYieldsLineAndFoot(t *testing.T) {
	b := New()
	xAxis := mustCreate(t, b, KindLine, []Parent{Num(0), Num(0), Num(1)}, nil)[0]
	p := mustPoint(t, b, "P", 2, 5)
	out := mustCreate(t, b, KindPerpendicular, []Parent{Of(xAxis), Of(p)},
		Attributes{AttrName: "l", AttrID: []string{"l", "lfoot"}})

	if len(out) != 2 {
		t.Fatalf("got %d outputs, want 2", len(out))
	}
	l, foot := out[0].(Line), out[1].(Point)
	if l.ID() != "l" || l.Name() != "l" || foot.ID() != "lfoot" || foot.Name() != "" {
		t.Errorf("ids %q/%q names %q/%q", l.ID(), foot.ID(), l.Name(), foot.Name())
	}
	assertAt(t, foot, 2, 0)
	s := l.Stdform()
	if !near(s[2], 0) || !near(s[0]+2*s[1], 0) {
		t.Errorf("Stdform = %v, want x = 2", s)
	}
}

func TestCircumcircle(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 1, 0)
	c := mustPoint(t, b, "B", -1, 0)
	d := mustPoint(t, b, "D", 0, 1)
	out := mustCreate(t, b, KindCircumcircle, []Parent{Of(a), Of(c), Of(d)}, nil)

	center, circ := out[0].(Point), out[1].(Circle)
	assertAt(t, center, 0, 0)
	if !near(circ.Radius(), 1) || circ.Center() != center {
		t.Errorf("radius = %v", circ.Radius())
	}
}

func TestBisectorRay(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 1, 0)
	v := mustPoint(t, b, "V", 0, 0)
	c := mustPoint(t, b, "C", 0, 1)
	ray := mustCreate(t, b, KindBisector, []Parent{Of(a), Of(v), Of(c)}, nil)[0].(Line)

	if ray.Point1() != v {
		t.Fatal("ray does not start at the vertex")
	}
	dir := ray.Point2()
	if !near(dir.X(), dir.Y()) || dir.X() <= 0 {
		t.Errorf("direction point %v is not on the bisector", dir.Coords())
	}
}

func TestBisectorLines(t *testing.T) {
	b := New()
	xAxis := mustCreate(t, b, KindLine, []Parent{Num(0), Num(0), Num(1)}, nil)[0]
	yAxis := mustCreate(t, b, KindLine, []Parent{Num(0), Num(1), Num(0)}, nil)[0]
	out := mustCreate(t, b, KindBisectorLines, []Parent{Of(xAxis), Of(yAxis)}, nil)
	if len(out) != 2 {
		t.Fatalf("got %d outputs", len(out))
	}
	for _, e := range out {
		s := e.(Line).Stdform()
		if !near(math.Abs(s[1]), math.Abs(s[2])) || near(s[1], 0) {
			t.Errorf("%v is not a diagonal", s)
		}
	}
}

func TestTangentAtPointOfCircle(t *testing.T) {
	b := New()
	m := mustPoint(t, b, "M", 0, 0)
	c := mustCreate(t, b, KindCircle, []Parent{Of(m), Num(1)}, nil)[0]
	p := mustPoint(t, b, "P", 1, 0)
	tan := mustCreate(t, b, KindTangent, []Parent{Of(p), Of(c)}, nil)[0].(Line)

	s := tan.Stdform()
	// x = 1
	if !near(s[2], 0) || !near(s[0], -s[1]) {
		t.Errorf("Stdform = %v", s)
	}
}

func TestConstrainKeepsIdentity(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 0, 0)
	c := mustPoint(t, b, "B", 4, 4)
	p := mustPoint(t, b, "P", 9, 9)
	m := mustCreate(t, b, KindMidpoint, []Parent{Of(a), Of(c)}, nil)[0].(Point)

	if err := b.Constrain(p, m.Coords, m); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Element("P"); got != p {
		t.Error("constrained point was replaced")
	}
	assertAt(t, p, 2, 2)
	if parents := p.Parents(); len(parents) != 1 || parents[0] != m {
		t.Errorf("parents = %v", parents)
	}
}

func TestConstrainRejectsCycles(t *testing.T) {
	b := New()
	a := mustPoint(t, b, "A", 0, 0)
	c := mustPoint(t, b, "B", 4, 0)
	seg := mustCreate(t, b, KindLine, []Parent{Of(a), Of(c)}, Attributes{AttrID: "S"})[0].(Line)
	circ := mustCreate(t, b, KindCircle, []Parent{Of(a), Of(c)}, Attributes{AttrID: "C"})[0].(Circle)

	tests := []struct {
		name string
		p    Point
		fn   CoordFunc
		deps []Element
	}{
		{"endpoint of own segment", a, func() geom.Vec3 { return seg.Point1().Coords() }, []Element{seg}},
		{"center of own circle", a, func() geom.Vec3 { return circ.Center().Coords() }, []Element{circ}},
		{"self", c, c.Coords, []Element{c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.p.Coords()
			err := b.Constrain(tt.p, tt.fn, tt.deps...)
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("err = %v, want ErrCycle", err)
			}
			if got := tt.p.Coords(); got != before {
				t.Errorf("coords changed to %v after rejected constrain", got)
			}
		})
	}
}

func TestSetPropertyAndTrace(t *testing.T) {
	b := New()
	x := 1.0
	p := mustCreate(t, b, KindPoint, []Parent{Live(func() float64 { return x }), Num(0)}, Attributes{AttrID: "P"})[0]

	b.Update()
	if len(b.Trace("P")) != 0 {
		t.Fatal("untraced element recorded samples")
	}
	if err := b.SetProperty(p, Attributes{AttrTrace: true, AttrStrokeColor: "blue"}); err != nil {
		t.Fatal(err)
	}
	b.Update()
	x = 2
	b.Update()

	trace := b.Trace("P")
	if len(trace) != 2 || trace[0][1] != 1 || trace[1][1] != 2 {
		t.Errorf("trace = %v", trace)
	}
	if p.Attributes().String(AttrStrokeColor) != "blue" {
		t.Error("stroke color not merged")
	}
}
