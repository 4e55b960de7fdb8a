package commands

import (
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/spf13/cobra"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var file string
	var raw bool

	cmd := &cobra.Command{
		Use:   "columns [rendered]",
		Short: "List the column names referenced by a rendered fragment",
		Long: `List the column names that follow a {@}. placeholder in a rendered
fragment, in order of appearance and including duplicates.

With --raw the input is rendered first using the configured dialect.`,
		Example: `  leapfrag columns "{@}.a = 1 and {@}.b = 2"
  leapfrag columns --raw "first_name || last_name"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			input, err := readFragment(cmd, args, file)
			if err != nil {
				return err
			}

			rendered := input
			if raw {
				d, err := cmdCtx.Dialect()
				if err != nil {
					return err
				}
				rendered = template.Render(input, d, cmdCtx.Types(d))
			}

			printColumns(cmdCtx.Renderer, output.ColumnsOutput{
				Rendered: rendered,
				Columns:  columnsOf(rendered),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the input from a file (- for stdin)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Render the input before collecting")

	return cmd
}

func printColumns(r *output.Renderer, result output.ColumnsOutput) {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		_ = r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Columns"))
		r.Println("")
		r.Println(output.FormatList(result.Columns))
	default:
		for _, c := range result.Columns {
			r.Println(c)
		}
	}
}
