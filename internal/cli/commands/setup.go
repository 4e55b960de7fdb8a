package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapfrag/internal/cli/config"
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/internal/state"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/spf13/cobra"
)

// Render sources recorded in the store.
const (
	sourceCLI   = "cli"
	sourceBatch = "batch"
	sourceREPL  = "repl"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect:      config.DefaultDialect,
		StatePath:    config.DefaultStateFile,
		OutputFormat: config.DefaultOutput,
		Serve:        config.ServeConfig{Addr: config.DefaultAddr},
		Batch:        config.BatchConfig{Workers: config.DefaultWorkers},
	}
}

// Dialect resolves the configured dialect.
func (c *CommandContext) Dialect() (*dialect.Dialect, error) {
	return dialect.Lookup(c.Cfg.Dialect)
}

// Types returns the type names recognised for d, including configured extras.
func (c *CommandContext) Types(d *dialect.Dialect, extra ...string) core.TypeRegistry {
	return dialect.TypesFor(d, slices.Concat(c.Cfg.Types, extra)...)
}

// OpenStore opens and migrates the render store, creating its directory.
// The returned cleanup closes the store.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, func(), error) {
	if dir := filepath.Dir(c.Cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// readFragment returns the fragment from args, the named file, or stdin.
func readFragment(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file == "-":
		return readAll(cmd.InOrStdin())
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read fragment: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no fragment given\nHint: pass it as an argument, with --file, or on stdin")
		}
	}
	return readAll(cmd.InOrStdin())
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
