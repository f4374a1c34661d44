package intergeo

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// ImaginaryTolerance bounds the imaginary parts of complex homogeneous
// coordinates that are still treated as real.
const ImaginaryTolerance = 1e-10

// CoordForm is the encoding of a point's coordinate block.
type CoordForm int

const (
	FormUnsupported CoordForm = iota
	// FormHomogeneous is [x, y, w], or [x, xi, y, yi, w, wi] for complex
	// coordinates.
	FormHomogeneous
	// FormEuclidean is [x, y].
	FormEuclidean
	// FormPolar is [r, θ] with θ in radians.
	FormPolar
)

var formTags = map[string]CoordForm{
	"homogeneous_coordinates": FormHomogeneous,
	"euclidean_coordinates":   FormEuclidean,
	"polar_coordinates":       FormPolar,
}

func (f CoordForm) String() string {
	for tag, form := range formTags {
		if form == f {
			return tag
		}
	}
	return "unsupported"
}

// Normalize converts a coordinate payload to canonical point coordinates:
// [w, x, y] for homogeneous input and [x, y] otherwise.
func Normalize(form CoordForm, values []float64) ([]float64, error) {
	switch form {
	case FormHomogeneous:
		switch len(values) {
		case 3:
			return []float64{values[2], values[0], values[1]}, nil
		case 6:
			for i := 1; i < 6; i += 2 {
				if math.Abs(values[i]) >= ImaginaryTolerance {
					return nil, errors.New(errors.ErrCodeUnsupportedCoordinates,
						"complex coordinates with imaginary part %g", values[i])
				}
			}
			return []float64{values[4], values[0], values[2]}, nil
		}
	case FormEuclidean:
		if len(values) == 2 {
			return []float64{values[0], values[1]}, nil
		}
	case FormPolar:
		if len(values) == 2 {
			r, theta := values[0], values[1]
			return []float64{r * math.Cos(theta), r * math.Sin(theta)}, nil
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedCoordinates, "unsupported coordinate form")
	}
	return nil, errors.New(errors.ErrCodeUnsupportedCoordinates,
		"%s with %d values", form, len(values))
}

// normalizeBlock reads a point's coordinate block and normalizes it.
func normalizeBlock(block *etree.Element) ([]float64, error) {
	form, ok := formTags[block.Tag]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedCoordinates,
			"this coordinate type is not yet implemented: %s", block.Tag)
	}

	var values []float64
	if form == FormHomogeneous {
		var reals, complexes int
		for _, child := range block.ChildElements() {
			switch child.Tag {
			case "double":
				v, err := parseNumber(child)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
				reals++
			case "complex":
				parts, err := doubles(child)
				if err != nil {
					return nil, err
				}
				if len(parts) != 2 {
					return nil, errors.New(errors.ErrCodeMalformedDocument,
						"complex number has %d parts, want 2", len(parts))
				}
				values = append(values, parts...)
				complexes++
			default:
				return nil, errors.New(errors.ErrCodeUnsupportedCoordinates,
					"not implemented: %s", child.Tag)
			}
		}
		if reals > 0 && complexes > 0 {
			return nil, errors.New(errors.ErrCodeUnsupportedCoordinates,
				"mixed real and complex homogeneous coordinates")
		}
	} else {
		for _, child := range block.ChildElements() {
			v, err := parseNumber(child)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return Normalize(form, values)
}

// doubles returns the numbers of the double children of el, skipping any
// other child.
func doubles(el *etree.Element) ([]float64, error) {
	var out []float64
	for _, child := range el.SelectElements("double") {
		v, err := parseNumber(child)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseNumber(el *etree.Element) (float64, error) {
	text := strings.TrimSpace(el.Text())
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedDocument, err, "bad number %q in <%s>", text, el.Tag)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeMalformedDocument, "non-finite number %q in <%s>", text, el.Tag)
	}
	return v, nil
}
