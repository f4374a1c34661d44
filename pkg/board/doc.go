// Package board defines the host geometry engine contract consumed by the
// importer and provides Board, an in-memory reference implementation.
//
// # Contract
//
// [Engine] is the only surface the importer talks to. Elements are created
// with [Engine.Create] from a [Kind] and positional [Parent] arguments,
// restyled with [Engine.SetProperty], and existing points can be rewired to
// a new coordinate function with [Engine.Constrain]. Multi-valued
// constructions expose their branches through [Engine.Intersection] and
// [Engine.OtherIntersection].
//
// # Evaluation
//
// Board never caches coordinates. Every accessor ([Point.Coords],
// [Line.Stdform], [Circle.Radius], ...) evaluates the element's closure
// against the current state of its parents, so moving a free point is
// immediately visible through every dependent element. Constructions with
// no real solution evaluate to [geom.Undefined].
//
// # Concurrency
//
// Board is not safe for concurrent use. The importer drives it from a single
// goroutine and renderers only read from it after the import completes.
package board
