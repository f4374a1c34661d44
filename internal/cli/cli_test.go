package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/intergeo/pkg/cache"
	"github.com/matzehuels/intergeo/pkg/config"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/observability"
)

const fixture = "../../pkg/intergeo/testdata/triangle.xml"

// newTestCLI returns a CLI whose config disables caching.
func newTestCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	t.Cleanup(observability.Reset)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(io.Discard, log.InfoLevel), cfg
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"import", "render", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"dot, json", []string{"dot", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		multiple              bool
		want                  string
	}{
		{"", "dir/tri.xml", "svg", false, "dir/tri.svg"},
		{"out.png", "tri.xml", "png", false, "out.png"},
		{"out.svg", "tri.xml", "dot", true, "out.dot"},
		{"out", "tri.xml", "json", true, "out.json"},
		{"", "tri.i2g", "png", true, "tri.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.input, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	c.Config.Cache.Backend = config.BackendNone
	got, err := c.newCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T", got)
	}

	c.Config.Cache.Backend = config.BackendFile
	c.Config.Cache.Dir = t.TempDir()
	got, err = c.newCache(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := got.(*cache.FileCache); !ok || fc.Dir() != c.Config.Cache.Dir {
		t.Errorf("file backend = %T", got)
	}

	got, _ = c.newCache(context.Background(), true)
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("--no-cache = %T", got)
	}

	c.Config.Cache.Backend = config.BackendRedis
	c.Config.Cache.RedisURL = "not a url"
	if _, err := c.newCache(context.Background(), false); err == nil {
		t.Error("bad redis url should fail")
	}
}

func TestImportCommand(t *testing.T) {
	c, cfg := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "triangle.json")

	if err := run(t, c, "--config", cfg, "import", fixture, "-o", out); err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"Mab"`)) {
		t.Error("exported graph missing Mab")
	}
}

func TestImportCommandMissingFile(t *testing.T) {
	c, cfg := newTestCLI(t)
	err := run(t, c, "--config", cfg, "import", "does-not-exist.xml")
	if err == nil || !strings.Contains(err.Error(), "does-not-exist.xml") {
		t.Errorf("err = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	c, cfg := newTestCLI(t)
	base := filepath.Join(t.TempDir(), "triangle")

	if err := run(t, c, "--config", cfg, "render", fixture, "-f", "dot,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot = %.30q", dot)
	}

	// The exported graph renders without the document.
	png := base + ".png"
	if err := run(t, c, "--config", cfg, "render", base+".json", "-f", "png", "-o", png, "--width", "200", "--height", "100"); err != nil {
		t.Fatalf("render json: %v", err)
	}
	data, err := os.ReadFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("png missing signature")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	c, cfg := newTestCLI(t)
	if err := run(t, c, "--config", cfg, "render", fixture, "-f", "pdf"); err == nil {
		t.Error("expected invalid format error")
	}
}

func TestBadConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	t.Cleanup(observability.Reset)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, c, "--config", cfg, "cache", "path"); err == nil {
		t.Error("expected config error")
	}
}

func testGraph(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	nodes := []dag.Node{
		{ID: "A", Meta: dag.Metadata{dag.MetaKind: "point", dag.MetaX: 1.0, dag.MetaY: 2.0}},
		{ID: "B", Meta: dag.Metadata{dag.MetaKind: "point", dag.MetaX: 3.0, dag.MetaY: 4.0}},
		{ID: "L", Meta: dag.Metadata{dag.MetaKind: "line", dag.MetaC: 0.0, dag.MetaA: 1.0, dag.MetaB: -1.0}},
		{ID: "Lfoot", Kind: dag.NodeKindAuxiliary, Meta: dag.Metadata{dag.MetaKind: "perpendicular"}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{{"A", "L"}, {"B", "L"}, {"L", "Lfoot"}} {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	g.AssignRows()
	return g
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestElementListModel(t *testing.T) {
	m := NewElementListModel(testGraph(t), false)
	if len(m.Nodes) != 3 {
		t.Fatalf("visible nodes = %d, want 3", len(m.Nodes))
	}

	next, _ := m.Update(key("j"))
	next, _ = next.Update(key("j"))
	next, _ = next.Update(key("j")) // clamps at the last row
	m = next.(ElementListModel)
	if n, _ := m.Selected(); n.ID != "L" {
		t.Errorf("selected = %q, want L", n.ID)
	}

	view := m.View()
	for _, want := range []string{"Construction Elements", "(1, 2)", "depends on", "A, B"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ = m.Update(key("h"))
	m = next.(ElementListModel)
	if !m.ShowHidden || len(m.Nodes) != 4 {
		t.Errorf("after toggle: hidden=%v nodes=%d", m.ShowHidden, len(m.Nodes))
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		meta dag.Metadata
		want string
	}{
		{dag.Metadata{dag.MetaX: 0.5, dag.MetaY: -2.0}, "(0.5, -2)"},
		{dag.Metadata{dag.MetaCX: 0.0, dag.MetaCY: 0.0, dag.MetaRadius: 3.0}, "center (0, 0) r 3"},
		{dag.Metadata{dag.MetaC: 1.0, dag.MetaA: 0.0, dag.MetaB: 1.0}, "[1, 0, 1]"},
		{dag.Metadata{}, "—"},
	}
	for _, tt := range tests {
		if got := geometry(tt.meta); got != tt.want {
			t.Errorf("geometry(%v) = %q, want %q", tt.meta, got, tt.want)
		}
	}
}
