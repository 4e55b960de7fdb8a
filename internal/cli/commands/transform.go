package commands

import (
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/spf13/cobra"
)

// NewTransformCommand creates the transform command.
func NewTransformCommand() *cobra.Command {
	var file string
	var columns []string

	cmd := &cobra.Command{
		Use:   "transform [fragment] --columns a,b",
		Short: "Qualify only the listed columns of a read fragment",
		Long: `Prefix each whole-word, case-sensitive occurrence of the given column
names with {@}. and leave everything else alone. Names after a dot or
inside string literals are not touched.`,
		Example: `  leapfrag transform "col1 + col2 * 2" --columns col1,col2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			fragment, err := readFragment(cmd, args, file)
			if err != nil {
				return err
			}

			rendered := template.RenderTransformerReadFragment(fragment, columns...)
			printRender(cmdCtx.Renderer, "Transformed fragment", output.RenderOutput{
				Dialect: cmdCtx.Cfg.Dialect,
				Input:   fragment,
				Output:  rendered,
				Columns: columnsOf(rendered),
			}, false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the fragment from a file (- for stdin)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Column names to qualify")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}
