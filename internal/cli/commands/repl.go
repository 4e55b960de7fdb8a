package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/spf13/cobra"
)

const replPrompt = "leapfrag> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Render fragments interactively",
		Long: `Start an interactive session that renders every line you type.

Dot-commands switch the dialect, the rendering mode and whether renders
are saved. Type .help inside the session for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	session, err := newREPLSession(cmdCtx)
	if err != nil {
		return err
	}
	defer session.close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "repl_history"),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Printf("LeapFrag REPL (dialect: %s)\n", session.dialect.Name)
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if session.handle(cmd.Context(), line) {
			return nil
		}
	}
}

type replMode string

const (
	replRender    replMode = "render"
	replColumns   replMode = "columns"
	replTransform replMode = "transform"
)

// replSession holds the state of one interactive session.
type replSession struct {
	cmdCtx  *CommandContext
	r       *output.Renderer
	dialect *dialect.Dialect
	types   core.TypeRegistry
	extra   []string
	mode    replMode
	columns []string
	save    bool
	store   core.Store
	cleanup func()
}

func newREPLSession(cmdCtx *CommandContext) (*replSession, error) {
	d, err := cmdCtx.Dialect()
	if err != nil {
		return nil, err
	}
	return &replSession{
		cmdCtx:  cmdCtx,
		r:       cmdCtx.Renderer,
		dialect: d,
		types:   cmdCtx.Types(d),
		mode:    replRender,
	}, nil
}

func (s *replSession) close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// handle processes one input line and reports whether the session should end.
func (s *replSession) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	var rendered string
	switch s.mode {
	case replColumns:
		printColumns(s.r, output.ColumnsOutput{Rendered: line, Columns: columnsOf(line)})
		return false
	case replTransform:
		rendered = template.RenderTransformerReadFragment(line, s.columns...)
	default:
		rendered = template.Render(line, s.dialect, s.types)
	}
	s.r.Fragment(rendered)

	if s.save {
		if err := s.persist(ctx, line, rendered); err != nil {
			s.r.Error(err.Error())
		}
	}
	return false
}

func (s *replSession) persist(ctx context.Context, input, rendered string) error {
	if s.store == nil {
		store, cleanup, err := s.cmdCtx.OpenStore()
		if err != nil {
			return err
		}
		s.store, s.cleanup = store, cleanup
	}
	return s.store.SaveRender(ctx, &core.Render{
		Dialect: s.dialect.Name,
		Input:   input,
		Output:  rendered,
		Columns: columnsOf(rendered),
		Source:  sourceREPL,
	})
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		s.r.Println(replHelp)

	case ".dialect":
		if len(args) == 0 {
			s.r.Println(s.dialect.Name)
			return false
		}
		d, err := dialect.Lookup(args[0])
		if err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.dialect = d
		s.types = s.cmdCtx.Types(d, s.extra...)
		s.r.Muted("dialect: " + d.Name)

	case ".types":
		s.extra = splitList(args)
		s.types = s.cmdCtx.Types(s.dialect, s.extra...)
		s.r.Muted("extra types: " + strings.Join(s.extra, ", "))

	case ".mode":
		if len(args) == 0 {
			s.r.Println(string(s.mode))
			return false
		}
		switch m := replMode(strings.ToLower(args[0])); m {
		case replRender, replColumns, replTransform:
			s.mode = m
			s.r.Muted("mode: " + string(m))
		default:
			s.r.Error(fmt.Sprintf("unknown mode %q (render, columns, transform)", args[0]))
		}

	case ".columns":
		s.columns = splitList(args)
		s.r.Muted("transform columns: " + strings.Join(s.columns, ", "))

	case ".save":
		s.save = len(args) == 0 || strings.EqualFold(args[0], "on")
		s.r.Muted(fmt.Sprintf("save: %v", s.save))

	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

// splitList accepts "a,b c" style arguments.
func splitList(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, item := range strings.Split(arg, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

const replHelp = `Commands:
  .help                 Show this help message
  .dialect [name]       Show or switch the dialect
  .types a,b            Treat extra names as type names
  .mode [render|columns|transform]
                        Show or switch what a line does
  .columns a,b          Columns qualified in transform mode
  .save [on|off]        Save renders to history
  .quit / .exit         Exit the REPL`

func newREPLCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".types"),
		readline.PcItem(".mode",
			readline.PcItem(string(replRender)),
			readline.PcItem(string(replColumns)),
			readline.PcItem(string(replTransform)),
		),
		readline.PcItem(".columns"),
		readline.PcItem(".save", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
