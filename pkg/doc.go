// Package pkg provides the libraries behind the intergeo importer.
//
// # Overview
//
// Intergeo reads geometric constructions written in the Intergeo
// interchange format and replays them on a geometry board. The pkg
// directory is organized into these areas:
//
//  1. [intergeo] - Document loading, element ingestion and constraint replay
//  2. [board] and [geom] - The geometry engine the construction is replayed on
//  3. [dag] - The construction's dependency graph
//  4. [render] - Node-link diagrams and board snapshots of that graph
//  5. [pipeline] - Orchestration (import → render) with caching
//
// # Architecture
//
// The data flow through intergeo:
//
//	Intergeo document (.xml or .i2g)
//	         ↓
//	    [intergeo] package (parse, ingest elements, dispatch constraints)
//	         ↓
//	    [board] package (realized points, lines and circles)
//	         ↓
//	    [dag] package (element → dependents, depth rows)
//	         ↓
//	    [render] package (SVG, DOT, PNG) and [io] (JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/intergeo/pkg/board"
//	    "github.com/matzehuels/intergeo/pkg/intergeo"
//	    "github.com/matzehuels/intergeo/pkg/render/canvas"
//	)
//
//	// 1. Load the document
//	doc, _ := intergeo.LoadFile("triangle.i2g")
//
//	// 2. Replay it on a board
//	c, _ := intergeo.NewReader(board.New(), intergeo.Options{}).Read(doc)
//
//	// 3. Build the dependency graph
//	g, _ := c.Graph()
//
//	// 4. Snapshot the board
//	png, _ := canvas.RenderPNG(g, canvas.DefaultOptions())
//
// # Main Packages
//
// [intergeo] - The importer. Elements are parsed into a primitive store;
// points are created on the board lazily, the first time a constraint needs
// them. Unsupported elements and constraints are reported as diagnostics
// and skipped; an unresolved reference stops the import.
//
// [board] - A minimal geometry board: free and dependent points, lines,
// segments, circles and the constructions the importer issues (midpoints,
// intersections, perpendiculars, tangents, gliders). Dependent elements are
// recomputed on [board.Board.Update].
//
// [geom] - Homogeneous-coordinate helpers shared by the importer and board.
//
// [dag] - Directed acyclic graph organized into depth rows. Nodes carry
// element geometry under the Meta* keys.
//
// [render/nodelink] - Dependency diagrams using Graphviz.
//
// [render/canvas] - PNG snapshots of the board drawn with gogpu/gg.
//
// [io] - JSON import and export of construction graphs.
//
// ## Infrastructure
//
// [pipeline] - The import → render pipeline used by the CLI and the HTTP API.
//
// [cache] - File, Redis and null caches for graphs and artifacts.
//
// [config] - TOML configuration.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [httputil] - JSON responses and middleware for the HTTP API.
//
// [errors] - Coded errors shared across packages.
package pkg
