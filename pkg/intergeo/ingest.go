package intergeo

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// ElementKind is the kind of a node in the elements section.
type ElementKind int

const (
	ElementUnsupported ElementKind = iota
	ElementPoint
	ElementLine
	ElementLineSegment
	ElementCircle
)

func elementKindOf(tag string) ElementKind {
	switch tag {
	case "point":
		return ElementPoint
	case "line":
		return ElementLine
	case "line_segment":
		return ElementLineSegment
	case "circle":
		return ElementCircle
	}
	return ElementUnsupported
}

func (k ElementKind) String() string {
	switch k {
	case ElementPoint:
		return "point"
	case ElementLine:
		return "line"
	case ElementLineSegment:
		return "line_segment"
	case ElementCircle:
		return "circle"
	}
	return "unsupported"
}

// IsLine reports whether records of this kind hold line coefficients.
func (k ElementKind) IsLine() bool { return k == ElementLine || k == ElementLineSegment }

// ingest parses every child of the elements section into the store. It
// never fails: problems are reported and the element is skipped.
func (im *importer) ingest(elements *etree.Element) {
	for _, node := range elements.ChildElements() {
		id := node.SelectAttrValue("id", "")
		kind := elementKindOf(node.Tag)
		if kind == ElementUnsupported {
			im.diags.report(errors.New(errors.ErrCodeUnsupportedElement,
				"Not implemented: %s %s", node.Tag, id).About(id))
			continue
		}
		if id == "" {
			im.diags.report(errors.New(errors.ErrCodeMalformedDocument,
				"%s element without id", node.Tag).About(node.Tag))
			continue
		}
		if err := errors.ValidateIdentifier(id); err != nil {
			im.diags.report(asError(err))
			continue
		}

		rec, err := parseElement(kind, id, node)
		if err == nil {
			err = im.store.Put(rec)
		}
		if err != nil {
			im.diags.report(asError(err).About(id))
			continue
		}
		im.logger.Debug("ingested element", "id", id, "kind", kind)
	}
}

func parseElement(kind ElementKind, id string, node *etree.Element) (Record, error) {
	rec := Record{ID: id, Kind: kind}
	block := firstChild(node)
	if block == nil {
		return rec, errors.New(errors.ErrCodeMalformedDocument, "%s %s has no coordinates", kind, id)
	}

	var err error
	switch kind {
	case ElementPoint:
		rec.Coords, err = normalizeBlock(block)
	case ElementLine, ElementLineSegment:
		rec.Coords, err = fixedDoubles(block, "homogeneous_coordinates", 3)
	case ElementCircle:
		rec.Coords, err = fixedDoubles(block, "matrix", 9)
	}
	return rec, err
}

// fixedDoubles reads exactly n double children from a block with the given
// tag. Other children are ignored.
func fixedDoubles(block *etree.Element, tag string, n int) ([]float64, error) {
	if block.Tag != tag {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "expected <%s>, got <%s>", tag, block.Tag)
	}
	values, err := doubles(block)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "<%s> has %d numbers, want %d", tag, len(values), n)
	}
	return values, nil
}

func firstChild(el *etree.Element) *etree.Element {
	children := el.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
