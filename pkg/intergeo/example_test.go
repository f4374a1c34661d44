package intergeo_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/intergeo"
)

func Example() {
	doc, err := intergeo.Load(strings.NewReader(`
<construction>
  <elements>
    <point id="A"><euclidean_coordinates><double>0</double><double>0</double></euclidean_coordinates></point>
    <point id="B"><euclidean_coordinates><double>4</double><double>2</double></euclidean_coordinates></point>
  </elements>
  <constraints>
    <line_through_two_points><line>L</line><point>A</point><point>B</point></line_through_two_points>
    <midpoint_of_two_points><point>M</point><point>A</point><point>B</point></midpoint_of_two_points>
  </constraints>
</construction>`))
	if err != nil {
		panic(err)
	}

	b := board.New()
	c, err := intergeo.NewReader(b, intergeo.Options{Logger: log.New(io.Discard)}).Read(doc)
	if err != nil {
		panic(err)
	}

	for _, el := range c.Realized() {
		fmt.Println(el.ID(), el.Kind())
	}
	m, _ := b.Element("M")
	fmt.Printf("M = (%g, %g)\n", m.(board.Point).X(), m.(board.Point).Y())
	// Output:
	// A point
	// B point
	// L line
	// M midpoint
	// M = (2, 1)
}

func ExampleNormalize() {
	coords, _ := intergeo.Normalize(intergeo.FormHomogeneous, []float64{6, 3, 3})
	fmt.Println(coords)
	// Output: [3 6 3]
}
