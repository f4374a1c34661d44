// Package io provides JSON import and export for construction graphs.
//
// # JSON Format
//
// A construction graph is exported as its elements (nodes), the parent
// relations between them (edges) and a few counters about the import:
//
//	{
//	  "meta": {"applied": 2, "diagnostics": 0, "elements": 4},
//	  "nodes": [
//	    {"id": "A", "meta": {"kind": "point", "visible": true, "x": 0, "y": 0}},
//	    {"id": "L", "row": 1, "meta": {"kind": "line", "c": 0, "a": 2, "b": -4}},
//	    {"id": "Lfoot", "row": 2, "kind": "auxiliary", "meta": {"kind": "point"}}
//	  ],
//	  "edges": [
//	    {"from": "A", "to": "L"}
//	  ]
//	}
//
// # Metadata Keys
//
// Node metadata uses the dag.Meta* keys: kind, name, visible, stroke, fill
// and trace describe the element; x/y, c/a/b with x1/y1/x2/y2, and cx/cy/r
// hold the geometry of points, lines and circles. Coordinates that are not
// finite (points at infinity, undefined intersections) are omitted.
//
// # Import and Export
//
// Use [WriteJSON] / [ReadJSON] with any io.Writer / io.Reader, or
// [ExportJSON] / [ImportJSON] for files. A graph read back renders exactly
// like the graph that was written, so exported snapshots can be re-rendered
// without the original document.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the
// same DAG, but not with concurrent modifications to it.
package io
