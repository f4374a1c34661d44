package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/intergeo/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the import and render API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.NewServer(runner, api.Config{
				Dependent: c.Config.Style.Dependent,
				Canvas:    c.Config.Canvas,
				TTL:       c.Config.Cache.TTL.Duration,
			}, c.Logger)

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printNextStep("Try", "curl --data-binary @construction.xml http://localhost"+addr+"/v1/import")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
