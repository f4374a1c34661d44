package nodelink

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/matzehuels/intergeo/pkg/dag"
)

func construction(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	nodes := []dag.Node{
		{ID: "A", Meta: dag.Metadata{dag.MetaKind: "point", dag.MetaStroke: "red"}},
		{ID: "B", Meta: dag.Metadata{dag.MetaKind: "point", dag.MetaStroke: "red"}},
		{ID: "L", Meta: dag.Metadata{dag.MetaKind: "line", dag.MetaStroke: "black"}},
		{ID: "k", Meta: dag.Metadata{dag.MetaKind: "circle", dag.MetaTrace: true}},
		{ID: "Lfoot", Kind: dag.NodeKindAuxiliary, Meta: dag.Metadata{dag.MetaKind: "point", dag.MetaStroke: "blue"}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{{"A", "L"}, {"B", "L"}, {"A", "k"}, {"L", "Lfoot"}, {"B", "Lfoot"}} {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	g.AssignRows()
	return g
}

func TestToDOT_Golden(t *testing.T) {
	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "construction", []byte(ToDOT(construction(t), Options{})))
}

func TestToDOT_Detailed(t *testing.T) {
	g := dag.New(nil)
	g.AddNode(dag.Node{
		ID:   "P",
		Row:  1,
		Meta: dag.Metadata{dag.MetaKind: "glider", dag.MetaX: 1.5},
	})

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "row: 1") {
		t.Error("ToDOT() detailed output missing row info")
	}
	if !strings.Contains(dot, "x: 1.5") {
		t.Error("ToDOT() detailed output missing metadata")
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name     string
		node     dag.Node
		detailed bool
		want     string
	}{
		{"id", dag.Node{ID: "A"}, false, "A"},
		{"name wins", dag.Node{ID: "A", Meta: dag.Metadata{dag.MetaName: "Apex"}}, false, "Apex"},
		{"detailed", dag.Node{ID: "A", Row: 2, Meta: dag.Metadata{dag.MetaKind: "point"}}, true, "A\nrow: 2\nkind: point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtAttrs_Auxiliary(t *testing.T) {
	n := dag.Node{ID: "kc", Kind: dag.NodeKindAuxiliary, Meta: dag.Metadata{dag.MetaStroke: "blue"}}
	joined := strings.Join(fmtAttrs(n, "kc"), " ")

	if !strings.Contains(joined, "dashed") || !strings.Contains(joined, "lightgrey") {
		t.Errorf("fmtAttrs() auxiliary missing dashed grey style: %s", joined)
	}
	if strings.Contains(joined, "color=\"blue\"") {
		t.Errorf("fmtAttrs() auxiliary should not carry the stroke color: %s", joined)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.svg))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}
