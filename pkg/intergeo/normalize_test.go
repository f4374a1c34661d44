package intergeo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/intergeo/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		form   CoordForm
		values []float64
		want   []float64
	}{
		{"homogeneous", FormHomogeneous, []float64{3, 4, 2}, []float64{2, 3, 4}},
		{"homogeneous at infinity", FormHomogeneous, []float64{1, 1, 0}, []float64{0, 1, 1}},
		{"euclidean", FormEuclidean, []float64{-1.5, 7}, []float64{-1.5, 7}},
		{"polar", FormPolar, []float64{2, math.Pi / 2}, []float64{0, 2}},
		{"polar zero angle", FormPolar, []float64{5, 0}, []float64{5, 0}},
		{"complex but real", FormHomogeneous, []float64{3, 0, 4, 0, 2, 0}, []float64{2, 3, 4}},
		{"complex within tolerance", FormHomogeneous, []float64{3, 1e-12, 4, -1e-11, 2, 0}, []float64{2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.form, tt.values)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name   string
		form   CoordForm
		values []float64
	}{
		{"imaginary part", FormHomogeneous, []float64{3, 1e-5, 4, 0, 2, 0}},
		{"imaginary weight", FormHomogeneous, []float64{3, 0, 4, 0, 2, 1e-10}},
		{"homogeneous arity", FormHomogeneous, []float64{1, 2}},
		{"euclidean arity", FormEuclidean, []float64{1, 2, 3}},
		{"polar arity", FormPolar, []float64{1}},
		{"unsupported form", FormUnsupported, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.form, tt.values)
			assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedCoordinates), "got %v", err)
		})
	}
}

func TestNormalizeBlock(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want []float64
		code errors.Code
	}{
		{
			name: "homogeneous doubles",
			xml:  `<homogeneous_coordinates><double>6</double><double>3</double><double>3</double></homogeneous_coordinates>`,
			want: []float64{3, 6, 3},
		},
		{
			name: "complex children",
			xml: `<homogeneous_coordinates>
				<complex><double>1</double><double>0</double></complex>
				<complex><double>2</double><double>0</double></complex>
				<complex><double>1</double><double>0</double></complex>
			</homogeneous_coordinates>`,
			want: []float64{1, 1, 2},
		},
		{
			name: "complex with imaginary part",
			xml: `<homogeneous_coordinates>
				<complex><double>1</double><double>0.5</double></complex>
				<complex><double>2</double><double>0</double></complex>
				<complex><double>1</double><double>0</double></complex>
			</homogeneous_coordinates>`,
			code: errors.ErrCodeUnsupportedCoordinates,
		},
		{
			name: "mixed real and complex",
			xml: `<homogeneous_coordinates>
				<double>1</double><double>0</double>
				<complex><double>1</double><double>0</double></complex>
			</homogeneous_coordinates>`,
			code: errors.ErrCodeUnsupportedCoordinates,
		},
		{
			name: "unknown child",
			xml:  `<homogeneous_coordinates><int>1</int><double>0</double><double>1</double></homogeneous_coordinates>`,
			code: errors.ErrCodeUnsupportedCoordinates,
		},
		{
			name: "unknown block",
			xml:  `<spherical_coordinates><double>1</double></spherical_coordinates>`,
			code: errors.ErrCodeUnsupportedCoordinates,
		},
		{
			name: "bad number",
			xml:  `<euclidean_coordinates><double>one</double><double>1</double></euclidean_coordinates>`,
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "NaN",
			xml:  `<euclidean_coordinates><double>NaN</double><double>1</double></euclidean_coordinates>`,
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "infinite homogeneous weight",
			xml:  `<homogeneous_coordinates><double>1</double><double>2</double><double>+Inf</double></homogeneous_coordinates>`,
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "complex parts unevenly split",
			xml: `<homogeneous_coordinates>
				<complex><double>1</double></complex>
				<complex><double>2</double><double>0</double><double>1</double></complex>
				<complex><double>0</double><double>0</double></complex>
			</homogeneous_coordinates>`,
			code: errors.ErrCodeMalformedDocument,
		},
		{
			name: "polar",
			xml:  `<polar_coordinates><double>2</double><double>0</double></polar_coordinates>`,
			want: []float64{2, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte("<construction><elements><point id=\"P\">" + tt.xml + "</point></elements></construction>"))
			require.NoError(t, err)
			block := firstChild(doc.Elements.ChildElements()[0])

			got, err := normalizeBlock(block)
			if tt.code != "" {
				assert.Equal(t, tt.code, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
