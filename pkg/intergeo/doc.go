// Package intergeo imports Intergeo construction documents into a host
// geometry engine.
//
// An import runs in two sequential walks over the document. The element
// walk parses every point, line and circle of the elements section into a
// raw record kept in a [Store]. The constraint walk then applies each node
// of the constraints section in document order, materializing raw points
// on first use and registering every engine element it creates under the
// document identifier it was built for.
//
// # Usage
//
//	doc, err := intergeo.LoadFile("triangle.i2g")
//	if err != nil {
//		return err
//	}
//	b := board.New()
//	c, err := intergeo.NewReader(b, intergeo.Options{}).Read(doc)
//	for _, d := range c.Diagnostics.Entries() {
//		fmt.Println(d)
//	}
//
// # Failure model
//
// Unsupported element kinds, coordinate forms and constraint kinds are
// recorded as diagnostics and skipped. An unresolved identifier or a
// malformed node stops the constraint walk: Read returns the error along
// with the partial [Construction]. Elements already created stay in the
// engine and no placeholder is ever created for a missing identifier.
//
// Constraints referencing the output of a later constraint are not
// supported; documents are expected to list constraints in dependency
// order.
package intergeo
