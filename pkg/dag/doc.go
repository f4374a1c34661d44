// Package dag provides the directed acyclic graph that records which
// elements of a geometric construction are computed from which.
//
// # Overview
//
// Every realized element of a construction becomes a [Node]; every parent
// relation reported by the board becomes an [Edge] pointing from the parent
// to the element computed from it. Free points have no incoming edges and
// are the [DAG.Sources] of the graph.
//
// Nodes are grouped into rows by dependency depth. [DAG.AssignRows] places
// free elements at row 0 and every other element one row below its deepest
// parent, which is the layering the node-link renderer draws:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "A"})
//	g.AddNode(dag.Node{ID: "B"})
//	g.AddNode(dag.Node{ID: "L"})
//	g.AddEdge(dag.Edge{From: "A", To: "L"})
//	g.AddEdge(dag.Edge{From: "B", To: "L"})
//	g.AssignRows()
//
// Use [DAG.Validate] after assigning rows to verify that the graph is
// acyclic and every edge points to a deeper row.
//
// # Node Types
//
//   - [NodeKindRegular]: elements named by the imported document
//   - [NodeKindAuxiliary]: hidden helpers created by constructions, such as
//     the foot of a perpendicular or the center of a circumcircle
//
// # Ordering
//
// Unlike a plain adjacency map, the graph keeps nodes and edges in insertion
// order. Builders add elements in the order the board created them, so
// exports and renderings of the same document are byte-identical.
//
// # Metadata
//
// Both nodes and the graph itself carry [Metadata] maps. The construction
// builder stores the element kind, its name, visibility and coordinates
// there. Metadata maps are never nil after creation.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
