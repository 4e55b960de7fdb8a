package commands

import (
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Long: `List every registered dialect with the quote characters it uses for
identifiers and the literals it renders for booleans.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			infos := dialectInfos()

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(infos)
			}

			if r.EffectiveMode() == output.ModeMarkdown {
				r.Println(output.FormatHeader(1, "Dialects"))
				r.Println("")
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				name := info.Name
				if info.Default {
					name += " (default)"
				}
				rows = append(rows, []string{name, info.OpenQuote + "name" + info.CloseQuote, info.True, info.False})
			}
			r.Table([]string{"dialect", "identifier", "true", "false"}, rows)
			return nil
		},
	}
}

func dialectInfos() []output.DialectInfo {
	def := dialect.Default()
	names := dialect.List()
	infos := make([]output.DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, output.DialectInfo{
			Name:       d.Name,
			OpenQuote:  string(d.OpenQuote()),
			CloseQuote: string(d.CloseQuote()),
			True:       d.ToBooleanValueString(true),
			False:      d.ToBooleanValueString(false),
			Default:    d == def,
		})
	}
	return infos
}
