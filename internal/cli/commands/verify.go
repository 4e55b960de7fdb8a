package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapfrag/internal/cli/config"
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/internal/mapping"
	"github.com/leapstack-labs/leapfrag/pkg/adapter"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/spf13/cobra"

	// Register the adapters verify.type can name.
	_ "github.com/leapstack-labs/leapfrag/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapfrag/pkg/adapters/postgres"
)

// VerifyOptions holds options for the verify command.
type VerifyOptions struct {
	File    string
	Kind    string
	Mapping string
}

// ErrVerifyFailed is returned when at least one fragment was rejected.
var ErrVerifyFailed = errors.New("verification failed")

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	opts := &VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [fragment]",
		Short: "Check rendered fragments against a database engine",
		Long: `Render a fragment, expand the {@} placeholder with a table alias and ask a
database engine to plan a statement that uses it. Referenced columns the
table does not have are reported separately.

The engine is configured under verify in leapfrag.yaml or with flags.
DuckDB runs in memory by default; --seed loads a CSV into the table first.

With --mapping every fragment of a mapping file is checked, each against
its entity's table when one is set.`,
		Example: `  # Check a where clause against a seeded in-memory DuckDB table
  leapfrag verify "age > 21 and active" --table users --seed users.csv

  # Check a formula against Postgres
  leapfrag verify --type postgres --dsn "$DATABASE_URL" --table public.orders \
    --kind formula "price * qty"

  # Check a whole mapping file
  leapfrag verify --mapping mapping.yaml --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the fragment from a file (- for stdin)")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", string(core.KindWhere), "Fragment kind (where|formula|order_by|read)")
	cmd.Flags().StringVarP(&opts.Mapping, "mapping", "m", "", "Verify every fragment of a mapping file")
	cmd.Flags().String("type", "", "Adapter type (duckdb|postgres)")
	cmd.Flags().String("path", "", "DuckDB database file (in-memory when empty)")
	cmd.Flags().String("dsn", "", "Connection string")
	cmd.Flags().String("table", "", "Table fragments are verified against")
	cmd.Flags().String("alias", "", "Alias the placeholder expands to")
	cmd.Flags().String("seed", "", "CSV file loaded into the table first")

	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"where", "formula", "order_by", "read"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return adapter.ListAdapters(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// fragmentCheck is one fragment waiting to be verified.
type fragmentCheck struct {
	entity   string
	name     string
	table    string
	kind     core.FragmentKind
	rendered string
}

func runVerify(cmd *cobra.Command, args []string, opts *VerifyOptions) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()
	vcfg := cmdCtx.Cfg.Verify

	if vcfg.Table == "" {
		return fmt.Errorf("verify: table is required\nHint: set verify.table in leapfrag.yaml or pass --table")
	}

	a, err := adapter.NewAdapter(vcfg.AdapterConfig, cmdCtx.Logger)
	if err != nil {
		return err
	}
	if err := a.Connect(ctx, vcfg.AdapterConfig); err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if vcfg.Seed != "" {
		if err := a.LoadCSV(ctx, vcfg.Table, vcfg.Seed); err != nil {
			return err
		}
		cmdCtx.Logger.Debug("seeded verify table", "table", vcfg.Table, "seed", vcfg.Seed)
	}

	checks, err := collectChecks(cmd, cmdCtx, args, opts, a.DialectName())
	if err != nil {
		return err
	}

	result := verifyChecks(ctx, cmdCtx, a, checks)
	printVerify(cmdCtx.Renderer, result)
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d fragments rejected", ErrVerifyFailed, result.Failed, len(result.Results))
	}
	return nil
}

// renderDialect picks the dialect fragments are rendered in. An explicitly
// configured dialect wins; otherwise the engine's own dialect is used.
func renderDialect(cfg *config.Config, engine string) string {
	if cfg.Dialect != "" && cfg.Dialect != config.DefaultDialect {
		return cfg.Dialect
	}
	return engine
}

func collectChecks(cmd *cobra.Command, cmdCtx *CommandContext, args []string, opts *VerifyOptions, engine string) ([]fragmentCheck, error) {
	dialectName := renderDialect(cmdCtx.Cfg, engine)

	if opts.Mapping != "" {
		doc, err := mapping.Load(opts.Mapping)
		if err != nil {
			return nil, err
		}
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("invalid mapping %s:\n%w", doc.Path, err)
		}
		renderer := &mapping.Renderer{
			Dialect: dialectName,
			Types:   cmdCtx.Cfg.Types,
			Workers: cmdCtx.Cfg.Batch.Workers,
			Logger:  cmdCtx.Logger,
		}
		results, err := renderer.RenderAll(cmd.Context(), doc)
		if err != nil {
			return nil, err
		}
		checks := make([]fragmentCheck, 0, len(results))
		for _, res := range results {
			checks = append(checks, fragmentCheck{
				entity:   res.Entity,
				name:     res.Name,
				table:    res.Table,
				kind:     res.Kind,
				rendered: res.Output,
			})
		}
		return checks, nil
	}

	kind := core.FragmentKind(strings.ToLower(opts.Kind))
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown fragment kind %q (where, formula, order_by, read)", opts.Kind)
	}
	fragment, err := readFragment(cmd, args, opts.File)
	if err != nil {
		return nil, err
	}
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return nil, err
	}
	return []fragmentCheck{{
		kind:     kind,
		rendered: template.Render(fragment, d, cmdCtx.Types(d)),
	}}, nil
}

func verifyChecks(ctx context.Context, cmdCtx *CommandContext, a adapter.Adapter, checks []fragmentCheck) output.VerifyOutput {
	vcfg := cmdCtx.Cfg.Verify
	result := output.VerifyOutput{
		Adapter: vcfg.Type,
		Table:   vcfg.Table,
		Results: make([]output.VerifyResult, 0, len(checks)),
	}

	metadata := make(map[string]*core.TableMetadata)
	for _, c := range checks {
		table := c.table
		if table == "" {
			table = vcfg.Table
		}

		meta, seen := metadata[table]
		if !seen {
			var err error
			if meta, err = a.GetTableMetadata(ctx, table); err != nil {
				cmdCtx.Logger.Debug("no table metadata", "table", table, "error", err)
			}
			metadata[table] = meta
		}

		vr := output.VerifyResult{
			Entity:  c.entity,
			Kind:    string(c.kind),
			Name:    c.name,
			Output:  c.rendered,
			Missing: adapter.MissingColumns(meta, c.rendered),
		}
		if err := a.VerifyTable(ctx, table, c.rendered, c.kind); err != nil {
			vr.Error = err.Error()
		}
		vr.OK = vr.Error == "" && len(vr.Missing) == 0

		if vr.OK {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, vr)
	}
	return result
}

func printVerify(r *output.Renderer, result output.VerifyOutput) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(result)
		return
	}

	r.Header(1, fmt.Sprintf("Verify (%s, %s)", result.Adapter, result.Table))
	r.Println("")

	rows := make([][]string, 0, len(result.Results))
	for _, vr := range result.Results {
		status := "ok"
		switch {
		case vr.Error != "":
			status = "rejected"
		case len(vr.Missing) > 0:
			status = "missing: " + strings.Join(vr.Missing, ", ")
		}
		label := string(vr.Kind)
		if vr.Entity != "" {
			label = vr.Entity + " " + label
		}
		if vr.Name != "" {
			label += " " + vr.Name
		}
		rows = append(rows, []string{label, vr.Output, status})
	}
	r.Table([]string{"fragment", "rendered", "status"}, rows)

	for _, vr := range result.Results {
		if vr.Error != "" {
			r.Error(vr.Error)
		}
	}
	summary := fmt.Sprintf("%d passed, %d failed", result.Passed, result.Failed)
	if result.Failed > 0 {
		r.Warning(summary)
	} else {
		r.Success(summary)
	}
}
