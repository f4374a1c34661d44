package intergeo

import (
	stderrors "errors"

	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/errors"
)

// realizePoint returns the engine point for id, creating it from its raw
// record on first use. Each identifier is created at most once.
func (im *importer) realizePoint(id string) (board.Point, error) {
	e, ok := im.store.Get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "unknown identifier %q", id).About(id)
	}
	if e.Exists() {
		p, ok := e.Handle.(board.Point)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is a %s, not a point", id, e.Handle.Kind()).About(id)
		}
		return p, nil
	}
	if e.Raw.Kind != ElementPoint {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is a raw %s, not a point", id, e.Raw.Kind).About(id)
	}

	parents := make([]board.Parent, len(e.Raw.Coords))
	for i, v := range e.Raw.Coords {
		parents[i] = board.Num(v)
	}
	el, err := im.create(board.KindPoint, parents, named(id))
	if err != nil {
		return nil, err
	}
	if err := im.style(el); err != nil {
		return nil, err
	}
	if err := im.store.MarkRealized(id, el); err != nil {
		return nil, err
	}
	return el.(board.Point), nil
}

// resolve returns the realized element for id, realizing raw points.
func (im *importer) resolve(id string) (board.Element, error) {
	if e, ok := im.store.Get(id); ok && !e.Exists() && e.Raw.Kind == ElementPoint {
		return im.realizePoint(id)
	}
	return im.store.Realized(id)
}

func (im *importer) line(id string) (board.Line, error) {
	el, err := im.store.Realized(id)
	if err != nil {
		return nil, err
	}
	l, ok := el.(board.Line)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is a %s, not a line", id, el.Kind()).About(id)
	}
	return l, nil
}

func (im *importer) circle(id string) (board.Circle, error) {
	el, err := im.store.Realized(id)
	if err != nil {
		return nil, err
	}
	c, ok := el.(board.Circle)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is a %s, not a circle", id, el.Kind()).About(id)
	}
	return c, nil
}

func (im *importer) curve(id string) (board.Element, error) {
	el, err := im.store.Realized(id)
	if err != nil {
		return nil, err
	}
	switch el.(type) {
	case board.Line, board.Circle:
		return el, nil
	}
	return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is a %s, not a curve", id, el.Kind()).About(id)
}

// segmentEnds returns the defining points of a realized line.
func (im *importer) segmentEnds(id string) (board.Line, error) {
	l, err := im.line(id)
	if err != nil {
		return nil, err
	}
	if l.Point1() == nil || l.Point2() == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "%q has no endpoints", id).About(id)
	}
	return l, nil
}

// rawLine returns the coefficients [a, b, c] of a line that is still raw.
func (im *importer) rawLine(id string) ([]float64, error) {
	e, ok := im.store.Get(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "unknown identifier %q", id).About(id)
	}
	if e.Exists() || !e.Raw.Kind.IsLine() {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "%q is not a raw line", id).About(id)
	}
	return e.Raw.Coords, nil
}

// create issues one engine creation and returns its first element.
func (im *importer) create(kind board.Kind, parents []board.Parent, attrs board.Attributes) (board.Element, error) {
	els, err := im.createAll(kind, parents, attrs)
	if err != nil {
		return nil, err
	}
	return els[0], nil
}

func (im *importer) createAll(kind board.Kind, parents []board.Parent, attrs board.Attributes) ([]board.Element, error) {
	els, err := im.engine.Create(kind, parents, attrs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", kind).About(attrs.String(board.AttrID))
	}
	if len(els) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "create %s returned no element", kind)
	}
	return els, nil
}

// register creates an element for id and realizes id with it.
func (im *importer) register(id string, kind board.Kind, parents []board.Parent, attrs board.Attributes) (board.Element, error) {
	el, err := im.create(kind, parents, named(id).Merge(attrs))
	if err != nil {
		return nil, err
	}
	return el, im.store.MarkRealized(id, el)
}

// bindPoint gives the point id the coordinates fn. A realized point keeps
// its identity and is rewired with fn; otherwise a new element of kind is
// created from parents.
func (im *importer) bindPoint(id string, kind board.Kind, parents []board.Parent, fn board.CoordFunc, deps ...board.Element) (board.Point, error) {
	e, ok := im.store.Get(id)
	if ok && !e.Exists() && e.Raw.Kind != ElementPoint {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "%q is a raw %s, not a point", id, e.Raw.Kind).About(id)
	}
	if ok && e.Exists() {
		p, ok := e.Handle.(board.Point)
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedDocument, "%q is a %s, not a point", id, e.Handle.Kind()).About(id)
		}
		if err := im.engine.Constrain(p, fn, deps...); err != nil {
			return nil, constrainError(id, err)
		}
		return p, nil
	}
	el, err := im.register(id, kind, parents, board.Attributes{board.AttrWithLabel: true})
	if err != nil {
		return nil, err
	}
	p, ok := el.(board.Point)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "%s did not create a point", kind).About(id)
	}
	return p, nil
}

// constrain rewires an existing point.
func (im *importer) constrain(id string, fn board.CoordFunc, deps ...board.Element) (board.Point, error) {
	p, err := im.realizePoint(id)
	if err != nil {
		return nil, err
	}
	if err := im.engine.Constrain(p, fn, deps...); err != nil {
		return nil, constrainError(id, err)
	}
	return p, nil
}

// constrainError classifies an engine Constrain failure. A point defined
// in terms of itself is a document error.
func constrainError(id string, err error) error {
	if stderrors.Is(err, board.ErrCycle) {
		return errors.Wrap(errors.ErrCodeMalformedDocument, err, "%q cannot be defined in terms of itself", id).About(id)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "constrain %s", id).About(id)
}

func (im *importer) set(el board.Element, attrs board.Attributes) error {
	if err := im.engine.SetProperty(el, attrs); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "set property").About(el.ID())
	}
	return nil
}

// style applies the dependent style.
func (im *importer) style(els ...board.Element) error {
	for _, el := range els {
		if err := im.set(el, im.dependent); err != nil {
			return err
		}
	}
	return nil
}

func named(id string) board.Attributes {
	return board.Attributes{board.AttrName: id, board.AttrID: id}
}

func points(ps ...board.Point) []board.Parent {
	out := make([]board.Parent, len(ps))
	for i, p := range ps {
		out[i] = board.Of(p)
	}
	return out
}

func errMissingOutputs(kind board.Kind, id string) error {
	return errors.New(errors.ErrCodeInternal, "%s for %q returned too few elements", kind, id).About(id)
}
