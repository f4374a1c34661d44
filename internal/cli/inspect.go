package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/intergeo/pkg/dag"
	graphio "github.com/matzehuels/intergeo/pkg/io"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var list, hidden bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the elements of a construction",
		Long: `Inspect imports a construction (or loads an exported graph) and opens an
interactive browser over its elements, showing each element's geometry and
the elements it depends on. Use --list to print a table instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if list {
				printElements(g, hidden)
				return nil
			}
			_, err = tea.NewProgram(NewElementListModel(g, hidden), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the elements instead of opening the browser")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden helpers")

	return cmd
}

// loadGraph returns the construction graph of a document or exported graph.
func (c *CLI) loadGraph(ctx context.Context, path string) (*dag.DAG, error) {
	if isGraphJSON(path) {
		return graphio.ImportJSON(path)
	}
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts := c.baseOptions()
	opts.Source = filepath.Base(path)
	opts.Document = data
	im, _, err := runner.ImportWithCacheInfo(ctx, opts)
	if err != nil {
		if im != nil {
			printDiagnostics(im.Diagnostics)
		}
		return nil, err
	}
	if len(im.Diagnostics) > 0 {
		printWarning("%d constructs skipped", len(im.Diagnostics))
	}
	return im.Graph, nil
}

func printElements(g *dag.DAG, hidden bool) {
	var nodes []dag.Node
	for _, n := range g.Nodes() {
		if hidden || !n.IsAuxiliary() {
			nodes = append(nodes, *n)
		}
	}
	fmt.Println(elementTable(nodes, 0, len(nodes), -1).Render())
}
