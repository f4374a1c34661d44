package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/intergeo/pkg/dag"
)

var kindFromString = map[string]dag.NodeKind{
	"auxiliary": dag.NodeKindAuxiliary,
}

// ReadJSON decodes a JSON construction graph from r into a DAG.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "A"}, {"id": "L", "row": 1}],
//	  "edges": [{"from": "A", "to": "L"}]
//	}
//
// Each node must have an "id" field. Optional fields:
//   - row: dependency depth (defaults to 0)
//   - kind: "auxiliary" for hidden helpers (defaults to a document element)
//   - meta: object with arbitrary key-value pairs
//
// ReadJSON returns an error if the JSON is malformed, a node ID is empty or
// duplicated, or an edge references an unknown node. Errors are wrapped with
// the offending node or edge; use errors.Is to check for dag sentinel errors.
//
// Numbers in metadata decode as float64; read them with [dag.Metadata.Float].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		nd := dag.Node{ID: n.ID, Meta: n.Meta}
		if n.Row != nil {
			nd.Row = *n.Row
		}
		if k, ok := kindFromString[n.Kind]; ok {
			nd.Kind = k
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded DAG.
// It returns the same errors as [ReadJSON], wrapped with the file path.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
