package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	var stats bool

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show saved renders",
		Long: `Show renders saved with --save, newest first. Pass an ID to show a single
render in full, or --stats for a summary per dialect.`,
		Example: `  leapfrag history --limit 5
  leapfrag history --stats
  leapfrag history 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			r := cmdCtx.Renderer
			ctx := cmd.Context()

			switch {
			case len(args) == 1:
				rec, err := store.GetRender(ctx, args[0])
				if err != nil {
					return err
				}
				printRender(r, "Render "+rec.ID, output.RenderOutput{
					Dialect: rec.Dialect,
					Input:   rec.Input,
					Output:  rec.Output,
					Columns: rec.Columns,
					ID:      rec.ID,
				}, true)
				return nil

			case stats:
				s, err := store.Stats(ctx)
				if err != nil {
					return err
				}
				return printStats(r, s)
			}

			renders, err := store.ListRenders(ctx, limit)
			if err != nil {
				return err
			}
			entries := make([]output.HistoryEntry, 0, len(renders))
			for _, rec := range renders {
				entries = append(entries, output.HistoryEntry{
					ID:        rec.ID,
					Dialect:   rec.Dialect,
					Source:    rec.Source,
					Input:     rec.Input,
					Output:    rec.Output,
					CreatedAt: rec.CreatedAt,
				})
			}
			return printHistory(r, entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum renders to show (0 for all)")
	cmd.Flags().BoolVar(&stats, "stats", false, "Summarize history per dialect")

	return cmd
}

var errNoHistory = errors.New("no saved renders\nHint: run render or batch with --save")

func printHistory(r *output.Renderer, entries []output.HistoryEntry) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(entries)
	}
	if len(entries) == 0 {
		return errNoHistory
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "History"))
		r.Println("")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.ID),
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Dialect,
			e.Source,
			truncate(e.Output, 60),
		})
	}
	r.Table([]string{"id", "created", "dialect", "source", "rendered"}, rows)
	return nil
}

func printStats(r *output.Renderer, s *state.Stats) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(s)
	}
	if s.Renders == 0 {
		return errNoHistory
	}

	r.Header(1, "History")
	r.Println(output.FormatKeyValue("Renders", fmt.Sprintf("%d", s.Renders)))
	if s.FirstSeen != nil && s.LastSeen != nil {
		r.Println(output.FormatKeyValue("First", s.FirstSeen.Local().Format("2006-01-02 15:04")))
		r.Println(output.FormatKeyValue("Last", s.LastSeen.Local().Format("2006-01-02 15:04")))
	}
	r.Println("")

	names := make([]string, 0, len(s.Dialects))
	for name := range s.Dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", s.Dialects[name])})
	}
	r.Table([]string{"dialect", "renders"}, rows)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to n runes on one line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
