package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "A", Meta: dag.Metadata{dag.MetaKind: "point"}})
	_ = g.AddNode(dag.Node{ID: "L", Meta: dag.Metadata{dag.MetaKind: "line"}})
	_ = g.AddEdge(dag.Edge{From: "A", To: "L"})
	g.AssignRows()

	for _, line := range strings.Split(nodelink.ToDOT(g, nodelink.Options{}), "\n") {
		if strings.Contains(line, "label=") || strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "A" [label="A", shape=ellipse];
	// "L" [label="L"];
	// "A" -> "L";
}
