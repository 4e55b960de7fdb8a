package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/leapfrag/internal/server"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var mappingPath string
	var save bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Start an HTTP server exposing fragment rendering.

Endpoints:
  POST /render      {"fragment": "...", "dialect": "...", "types": [...]}
  POST /columns     {"rendered": "..."}
  POST /transform   {"fragment": "...", "columns": [...]}
  GET  /dialects
  GET  /healthz

With --mapping the file is rendered on start and on every change. The
latest rendering is served at GET /mapping and GET /events streams a
notification each time it changes.`,
		Example: `  leapfrag serve --addr :8787
  leapfrag serve --mapping mapping.yaml --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			var store core.Store
			if save {
				s, cleanup, err := cmdCtx.OpenStore()
				if err != nil {
					return err
				}
				defer cleanup()
				store = s
			}

			srv := server.New(server.Config{
				Addr:    cmdCtx.Cfg.Serve.Addr,
				Dialect: cmdCtx.Cfg.Dialect,
				Types:   cmdCtx.Cfg.Types,
				Store:   store,
				Mapping: mappingPath,
				Workers: cmdCtx.Cfg.Batch.Workers,
				Logger:  cmdCtx.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmdCtx.Renderer.Muted(fmt.Sprintf("Listening on http://%s (Ctrl+C to stop)", cmdCtx.Cfg.Serve.Addr))
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from serve.addr)")
	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "Mapping file to render and watch")
	cmd.Flags().BoolVar(&save, "save", false, "Save every render to history")

	return cmd
}
