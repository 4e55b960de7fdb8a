package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapfrag/internal/cli"
	"github.com/leapstack-labs/leapfrag/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configKeys are the keys leapfrag.yaml accepts.
var configKeys = map[string]bool{
	"dialect": true, "types": true, "state_path": true, "verbose": true, "output": true,
	"serve.addr": true, "batch.workers": true,
	"verify.type": true, "verify.path": true, "verify.dsn": true, "verify.table": true,
	"verify.alias": true, "verify.seed": true,
}

// generateCLIDocs writes index.md plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range visibleCommands(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, data := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for LeapFrag")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("LeapFrag qualifies the column references of SQL fragments with the `{@}.` placeholder, renders mapping files, and checks fragments against a database engine.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapfrag/cmd/leapfrag@latest\nleapfrag render \"first_name || ' ' || last_name\"")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from leapfrag.yaml (searched upward from the working directory), then LEAPFRAG_ environment variables, then flags. Later sources win. Nested keys use a double underscore in variable names.")
	w.Table([]string{"Key", "Variable", "Flag"}, configRows(root))

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, or verify rejected at least one fragment"},
	})
	return w.Bytes()
}

// configRows lists every config key with its environment variable and
// the flag that overrides it, if any.
func configRows(root *cobra.Command) [][]string {
	flagFor := make(map[string]string)
	record := func(f *pflag.Flag) {
		if key := config.FlagKey(f.Name); configKeys[key] {
			flagFor[key] = "--" + f.Name
		}
	}
	root.PersistentFlags().VisitAll(record)
	for _, cmd := range visibleCommands(root) {
		cmd.LocalFlags().VisitAll(record)
	}

	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		env := "LEAPFRAG_" + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
		flag := ""
		if f, ok := flagFor[key]; ok {
			flag = InlineCode(f)
		}
		rows = append(rows, []string{InlineCode(key), InlineCode(env), flag})
	}
	return rows
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if !strings.HasPrefix(use, "leapfrag") {
		use = "leapfrag " + use
	}
	w.CodeBlock("bash", use)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w.Bytes()
}

// writeFlagsTable writes a table of flags with the config key each one sets.
// Flags that only steer a single invocation have no key.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		switch {
		case def == "[]":
			def = ""
		case def != "" && f.Value.Type() == "string":
			def = InlineCode(def)
		}
		key := ""
		if k := config.FlagKey(f.Name); configKeys[k] {
			key = InlineCode(k)
		}

		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, key, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Config key", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
