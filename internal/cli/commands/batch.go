package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/internal/mapping"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Watch   bool
	Workers int
	Save    bool
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <mapping.yaml>",
		Short: "Render every fragment of a mapping file",
		Long: `Render the where, order_by, formula and read fragments of every entity
in a mapping file. Fragments are rendered concurrently and printed in the
order they are declared.

With --watch the file is rendered again each time it changes.`,
		Example: `  leapfrag batch mapping.yaml
  leapfrag batch mapping.yaml --watch
  leapfrag batch mapping.yaml --output json --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when the file changes")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent renders (default from batch.workers)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save every render to history")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cmdCtx := NewCommandContext(cmd)

	workers := opts.Workers
	if workers == 0 {
		workers = cmdCtx.Cfg.Batch.Workers
	}
	renderer := &mapping.Renderer{
		Dialect: cmdCtx.Cfg.Dialect,
		Types:   cmdCtx.Cfg.Types,
		Workers: workers,
		Logger:  cmdCtx.Logger,
	}

	if !opts.Watch {
		doc, err := mapping.Load(path)
		return renderBatch(cmd.Context(), cmdCtx, renderer, doc, err, opts.Save)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s (Ctrl+C to stop)", path))
	return mapping.Watch(ctx, path, cmdCtx.Logger, func(doc *mapping.Document, err error) {
		if err := renderBatch(ctx, cmdCtx, renderer, doc, err, opts.Save); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	})
}

func renderBatch(ctx context.Context, cmdCtx *CommandContext, renderer *mapping.Renderer, doc *mapping.Document, loadErr error, save bool) error {
	if loadErr != nil {
		return loadErr
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid mapping %s:\n%w", doc.Path, err)
	}

	results, err := renderer.RenderAll(ctx, doc)
	if err != nil {
		return err
	}

	if save {
		if err := saveBatch(ctx, cmdCtx, doc, renderer.Dialect, results); err != nil {
			return err
		}
	}

	printBatch(cmdCtx.Renderer, doc, results)
	if save && cmdCtx.Renderer.EffectiveMode() != output.ModeJSON {
		cmdCtx.Renderer.Muted(fmt.Sprintf("Saved %d renders to %s", len(results), cmdCtx.Cfg.StatePath))
	}
	return nil
}

func saveBatch(ctx context.Context, cmdCtx *CommandContext, doc *mapping.Document, fallback string, results []mapping.Result) error {
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	dialectName := doc.Dialect
	if dialectName == "" {
		dialectName = fallback
	}
	for _, res := range results {
		if err := store.SaveRender(ctx, &core.Render{
			Dialect: dialectName,
			Input:   res.Input,
			Output:  res.Output,
			Columns: res.Columns,
			Source:  sourceBatch,
		}); err != nil {
			return err
		}
	}
	return nil
}

func printBatch(r *output.Renderer, doc *mapping.Document, results []mapping.Result) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(results)
		return
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Mapping: "+doc.Path))
		r.Println("")
	} else {
		r.Header(1, doc.Path)
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{res.Entity, string(res.Kind), res.Name, res.Output})
	}
	r.Table([]string{"entity", "kind", "name", "rendered"}, rows)
}
