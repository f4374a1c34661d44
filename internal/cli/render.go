package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/intergeo/pkg/dag"
	graphio "github.com/matzehuels/intergeo/pkg/io"
	"github.com/matzehuels/intergeo/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // svg, dot, png, json
	detailed bool     // detailed node labels in diagrams
	hidden   bool     // draw hidden helpers in the board snapshot
	width    int
	height   int
	unit     float64
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a construction's dependency graph or board snapshot",
		Long: `Render imports a construction and writes the requested outputs:

  svg   dependency graph rendered with Graphviz
  dot   dependency graph as Graphviz source
  png   snapshot of the board
  json  construction graph

The input is an Intergeo document (.xml, .i2g) or a graph written by
"import --output" (.json).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	canvas := c.Config.Canvas
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show geometry in graph labels")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "draw hidden helpers in the board snapshot")
	cmd.Flags().IntVar(&opts.width, "width", canvas.Width, "snapshot width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", canvas.Height, "snapshot height in pixels")
	cmd.Flags().Float64Var(&opts.unit, "unit", canvas.Unit, "snapshot pixels per unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached graphs")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts renderOpts) error {
	popts := c.baseOptions()
	popts.Source = filepath.Base(input)
	popts.Formats = opts.formats
	popts.Detailed = opts.detailed
	popts.Refresh = opts.refresh

	// Flags override the configured canvas only when given.
	flags := cmd.Flags()
	if flags.Changed("width") {
		popts.Canvas.Width = opts.width
	}
	if flags.Changed("height") {
		popts.Canvas.Height = opts.height
	}
	if flags.Changed("unit") {
		popts.Canvas.Unit = opts.unit
	}
	if flags.Changed("width") || flags.Changed("height") {
		popts.Canvas.OriginX, popts.Canvas.OriginY = 0, 0
	}
	popts.Canvas.ShowHidden = opts.hidden

	spinner := newSpinnerWithContext(ctx, "Importing "+popts.Source)
	spinner.Start()
	artifacts, err := c.renderArtifacts(ctx, input, popts, spinner)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", StyleHighlight.Render(popts.Source)))

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if path == input {
			return fmt.Errorf("refusing to overwrite input %s; use --output", input)
		}
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// renderArtifacts runs the pipeline on a document, or renders an exported
// graph directly.
func (c *CLI) renderArtifacts(ctx context.Context, input string, popts pipeline.Options, spinner *Spinner) (map[string][]byte, error) {
	if isGraphJSON(input) {
		g, err := graphio.ImportJSON(input)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
		spinner.SetMessage("Rendering " + popts.Source)
		return renderGraph(ctx, g, popts)
	}

	data, err := readDocument(input)
	if err != nil {
		return nil, err
	}
	popts.Document = data

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, popts)
	if result != nil && len(result.Diagnostics) > 0 {
		spinner.Stop()
		printWarning("%d constructs skipped", len(result.Diagnostics))
		printDiagnostics(result.Diagnostics)
	}
	if err != nil {
		return nil, err
	}
	return result.Artifacts, nil
}

func renderGraph(ctx context.Context, g *dag.DAG, popts pipeline.Options) (map[string][]byte, error) {
	if err := popts.ValidateForRender(); err != nil {
		return nil, err
	}
	return pipeline.Render(ctx, g, popts)
}

// outputPath derives the file name for one format. With a single format an
// explicit output is used as is; otherwise the format becomes the extension
// of the base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath strips a known format extension from output, or the extension
// of input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.FormatNames(), strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
