package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	File    string
	Columns bool
	Save    bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [fragment]",
		Short: "Qualify the column references of a SQL fragment",
		Long: `Rewrite a SQL fragment so every unqualified column reference is
prefixed with the {@}. placeholder. Keywords, functions, literals, type names
and aliases are left alone.

The fragment is taken from the arguments, from --file, or from stdin.

Output adapts to environment:
  - Terminal: the rendered fragment, placeholders highlighted
  - Piped/Scripted: Markdown with code block`,
		Example: `  # Render a where clause
  leapfrag render "active = true and age > 18"

  # Render for MySQL, listing the referenced columns
  leapfrag render -d mysql --columns "upper(name) || ` + "`order`" + `"

  # Render from a file and keep the result in history
  leapfrag render --file where.sql --save

  # Render as JSON
  echo "a + b" | leapfrag render --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the fragment from a file (- for stdin)")
	cmd.Flags().BoolVar(&opts.Columns, "columns", false, "Also list the referenced column names")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the render to history")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)

	fragment, err := readFragment(cmd, args, opts.File)
	if err != nil {
		return err
	}

	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}

	rendered := template.Render(fragment, d, cmdCtx.Types(d))
	result := output.RenderOutput{
		Dialect: d.Name,
		Input:   fragment,
		Output:  rendered,
		Columns: columnsOf(rendered),
	}
	cmdCtx.Logger.Debug("fragment rendered",
		"dialect", d.Name,
		"columns", len(result.Columns))

	if opts.Save {
		id, err := saveRender(cmd, cmdCtx, &result, sourceCLI)
		if err != nil {
			return err
		}
		result.ID = id
	}

	printRender(cmdCtx.Renderer, "Rendered fragment", result, opts.Columns)
	if result.ID != "" && cmdCtx.Renderer.EffectiveMode() != output.ModeJSON {
		cmdCtx.Renderer.Muted(fmt.Sprintf("Saved as %s", result.ID))
	}
	return nil
}

// saveRender stores result and returns the new render ID.
func saveRender(cmd *cobra.Command, cmdCtx *CommandContext, result *output.RenderOutput, source string) (string, error) {
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return "", err
	}
	defer cleanup()

	rec := &core.Render{
		Dialect: result.Dialect,
		Input:   result.Input,
		Output:  result.Output,
		Columns: result.Columns,
		Source:  source,
	}
	if err := store.SaveRender(cmd.Context(), rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// columnsOf collects column names, never returning nil.
func columnsOf(rendered string) []string {
	if cols := template.CollectColumnNames(rendered); cols != nil {
		return cols
	}
	return []string{}
}

func printRender(r *output.Renderer, title string, result output.RenderOutput, withColumns bool) {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		_ = r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, title))
		r.Println("")
		r.Println(output.FormatKeyValue("Dialect", result.Dialect))
		r.Println("")
		r.Println(output.FormatCodeBlock("sql", result.Output))
		if withColumns {
			r.Println("")
			r.Println(output.FormatHeader(2, "Columns"))
			r.Println("")
			r.Println(output.FormatList(result.Columns))
		}
	default:
		r.Fragment(result.Output)
		if withColumns && len(result.Columns) > 0 {
			r.Println(r.Styles().Muted.Render("columns: " + strings.Join(result.Columns, ", ")))
		}
	}
}
