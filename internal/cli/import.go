package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/intergeo/pkg/errors"
	graphio "github.com/matzehuels/intergeo/pkg/io"
	"github.com/matzehuels/intergeo/pkg/pipeline"
)

// importOpts holds the flags of the import command.
type importOpts struct {
	output  string // write the construction graph as JSON
	noCache bool
	refresh bool
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a construction and report what was built",
		Long: `Import replays an Intergeo construction (.xml or .i2g) on a fresh board.

It prints the size of the resulting dependency graph and every element or
constraint that was skipped. With --output the graph is written as JSON,
which the render command accepts in place of a document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the construction graph as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached graphs")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, path string, opts importOpts) error {
	data, err := readDocument(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.baseOptions()
	popts.Source = filepath.Base(path)
	popts.Document = data
	popts.Refresh = opts.refresh

	prog := newProgress(c.Logger)
	im, cached, err := runner.ImportWithCacheInfo(ctx, popts)
	if err != nil {
		printError("Import of %s failed", path)
		if im != nil {
			printDiagnostics(im.Diagnostics)
		}
		return err
	}
	prog.done("Imported "+popts.Source, "cached", cached)

	printSuccess("Imported %s", StyleHighlight.Render(popts.Source))
	printStats(im.Graph.NodeCount(), im.Graph.EdgeCount(), len(im.Diagnostics), cached)
	if im.Construction != nil {
		printKeyValue("Applied", fmt.Sprintf("%d constraints", im.Construction.Applied))
		printKeyValue("Elements", fmt.Sprintf("%d realized", len(im.Construction.Realized())))
	}
	printDiagnostics(im.Diagnostics)

	if opts.output != "" {
		if err := graphio.ExportJSON(im.Graph, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		printNextStep("Render it", fmt.Sprintf("%s render %s --format png", appName, opts.output))
	}
	return nil
}

// readDocument reads an .xml or .i2g input file, mapping a missing file to
// FILE_NOT_FOUND.
func readDocument(path string) ([]byte, error) {
	if err := errors.ValidateDocumentFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path).About(path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path).About(path)
	}
	return data, nil
}

// isGraphJSON reports whether path holds an exported construction graph
// rather than a document.
func isGraphJSON(path string) bool {
	return filepath.Ext(path) == "."+pipeline.FormatJSON
}
