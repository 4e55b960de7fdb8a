package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapfrag/internal/cli/config"
	"github.com/leapstack-labs/leapfrag/internal/cli/output"
	"github.com/leapstack-labs/leapfrag/internal/cli/testutil"
	"github.com/leapstack-labs/leapfrag/internal/mapping"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/all"
)

// useProject loads configuration from a temporary project directory.
func useProject(t *testing.T, cfgYAML string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leapfrag.yaml"), []byte(cfgYAML), 0o600))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewRenderCommand(), "render [fragment]", []string{"file", "columns", "save"}},
		{NewColumnsCommand(), "columns [rendered]", []string{"file", "raw"}},
		{NewTransformCommand(), "transform [fragment] --columns a,b", []string{"file", "columns"}},
		{NewDialectsCommand(), "dialects", nil},
		{NewBatchCommand(), "batch <mapping.yaml>", []string{"watch", "workers", "save"}},
		{NewHistoryCommand(), "history [id]", []string{"limit", "stats"}},
		{NewREPLCommand(), "repl", nil},
		{NewServeCommand(), "serve", []string{"addr", "mapping", "save"}},
		{NewVerifyCommand(), "verify [fragment]", []string{"kind", "mapping", "type", "dsn", "table", "alias", "seed", "path"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	useProject(t, "dialect: generic\n", nil)

	out, _, err := execute(t, NewRenderCommand(), "", "active = true and age > 18")
	require.NoError(t, err)
	assert.Contains(t, out, "# Rendered fragment")
	assert.Contains(t, out, "```sql\n{@}.active = true and {@}.age > 18\n```")
	assert.NotContains(t, out, "## Columns")

	out, _, err = execute(t, NewRenderCommand(), "", "--columns", "upper(name) || city")
	require.NoError(t, err)
	assert.Contains(t, out, "## Columns")
	assert.Contains(t, out, "- `name`\n- `city`")
}

func TestRenderCommand_StdinAndFile(t *testing.T) {
	dir := useProject(t, "output: text\n", map[string]string{"where.sql": "a = 1\n"})

	out, _, err := execute(t, NewRenderCommand(), "b < 2\n")
	require.NoError(t, err)
	assert.Equal(t, "{@}.b < 2\n", out)

	out, _, err = execute(t, NewRenderCommand(), "", "--file", filepath.Join(dir, "where.sql"))
	require.NoError(t, err)
	assert.Equal(t, "{@}.a = 1\n", out)

	_, _, err = execute(t, NewRenderCommand(), "", "--file", filepath.Join(dir, "missing.sql"))
	assert.ErrorContains(t, err, "failed to read fragment")
}

func TestRenderCommand_JSONWithDialect(t *testing.T) {
	useProject(t, "dialect: mysql\noutput: json\ntypes: [geometry]\n", nil)

	out, _, err := execute(t, NewRenderCommand(), "", "cast(`order` as geometry) = 1")
	require.NoError(t, err)

	var got output.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mysql", got.Dialect)
	assert.Equal(t, "cast({@}.`order` as geometry) = 1", got.Output)
	assert.Equal(t, []string{"`order`"}, got.Columns)
	assert.Empty(t, got.ID)
}

func TestRenderSaveAndHistory(t *testing.T) {
	dir := useProject(t, "output: json\nstate_path: state/renders.db\n", nil)

	out, _, err := execute(t, NewRenderCommand(), "", "--save", "a = 1")
	require.NoError(t, err)
	var saved output.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.ID)
	assert.FileExists(t, filepath.Join(dir, "state", "renders.db"))

	out, _, err = execute(t, NewHistoryCommand(), "")
	require.NoError(t, err)
	var entries []output.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, saved.ID, entries[0].ID)
	assert.Equal(t, sourceCLI, entries[0].Source)
	assert.Equal(t, "{@}.a = 1", entries[0].Output)

	out, _, err = execute(t, NewHistoryCommand(), "", saved.ID)
	require.NoError(t, err)
	var one output.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &one))
	assert.Equal(t, "a = 1", one.Input)

	out, _, err = execute(t, NewHistoryCommand(), "", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"generic": 1`)

	_, _, err = execute(t, NewHistoryCommand(), "", "no-such-id")
	assert.ErrorContains(t, err, "render not found")
}

func TestHistoryCommand_Empty(t *testing.T) {
	useProject(t, "output: markdown\n", nil)

	_, _, err := execute(t, NewHistoryCommand(), "")
	assert.ErrorIs(t, err, errNoHistory)
}

func TestColumnsCommand(t *testing.T) {
	useProject(t, "output: text\n", nil)

	out, _, err := execute(t, NewColumnsCommand(), "", `{@}.a = 1 and {@}."b c" = {@}.a`)
	require.NoError(t, err)
	assert.Equal(t, "a\n\"b c\"\na\n", out)

	out, _, err = execute(t, NewColumnsCommand(), "", "--raw", "x + upper(y)")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", out)
}

func TestTransformCommand(t *testing.T) {
	useProject(t, "output: json\n", nil)

	out, _, err := execute(t, NewTransformCommand(), "", "--columns", "col1,col2", "col1 + col10 * col2")
	require.NoError(t, err)

	var got output.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "{@}.col1 + col10 * {@}.col2", got.Output)
	assert.Equal(t, []string{"col1", "col2"}, got.Columns)

	_, _, err = execute(t, NewTransformCommand(), "", "col1")
	assert.ErrorContains(t, err, `required flag(s) "columns" not set`)
}

func TestDialectsCommand(t *testing.T) {
	useProject(t, "output: json\n", nil)

	out, _, err := execute(t, NewDialectsCommand(), "")
	require.NoError(t, err)

	var infos []output.DialectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	byName := make(map[string]output.DialectInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, "`", byName["mysql"].OpenQuote)
	assert.Equal(t, "[", byName["sqlserver"].OpenQuote)
	assert.Equal(t, "]", byName["sqlserver"].CloseQuote)
	assert.True(t, byName["generic"].Default)

	useProject(t, "output: markdown\n", nil)
	out, _, err = execute(t, NewDialectsCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "# Dialects")
	assert.Contains(t, out, "| Dialect |")
}

const testMapping = `dialect: postgres
entities:
  - name: Customer
    table: customers
    columns: [first_name, last_name]
    formulas:
      full_name: "first_name || ' ' || last_name"
    where: "active = true"
    read_fragments:
      shout: "upper(first_name)"
`

func TestBatchCommand(t *testing.T) {
	dir := useProject(t, "output: json\n", map[string]string{"mapping.yaml": testMapping})

	out, _, err := execute(t, NewBatchCommand(), "", filepath.Join(dir, "mapping.yaml"), "--save")
	require.NoError(t, err)

	var results []mapping.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "{@}.active = true", results[0].Output)
	assert.Equal(t, "{@}.first_name || ' ' || {@}.last_name", results[1].Output)
	assert.Equal(t, "upper({@}.first_name)", results[2].Output)

	out, _, err = execute(t, NewHistoryCommand(), "", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"postgres": 3`)
}

func TestBatchCommand_Invalid(t *testing.T) {
	dir := useProject(t, "output: json\n", map[string]string{
		"bad.yaml": "entities:\n  - table: t\n",
	})

	_, _, err := execute(t, NewBatchCommand(), "", filepath.Join(dir, "bad.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, _, err = execute(t, NewBatchCommand(), "", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	useProject(t, `output: json
verify:
  type: duckdb
  table: users
  seed: users.csv
`, map[string]string{"users.csv": "id,name,age\n1,Ann,30\n2,Bob,17\n"})

	out, _, err := execute(t, NewVerifyCommand(), "", "age > 21 and name is not null")
	require.NoError(t, err)

	var got output.VerifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "duckdb", got.Adapter)
	assert.Equal(t, 1, got.Passed)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "{@}.age > 21 and {@}.name is not null", got.Results[0].Output)

	out, _, err = execute(t, NewVerifyCommand(), "", "--kind", "formula", "zip || name")
	assert.ErrorIs(t, err, ErrVerifyFailed)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, []string{"zip"}, got.Results[0].Missing)
	assert.NotEmpty(t, got.Results[0].Error)

	_, _, err = execute(t, NewVerifyCommand(), "", "--kind", "having", "a")
	assert.ErrorContains(t, err, `unknown fragment kind "having"`)
}

func TestVerifyCommand_Mapping(t *testing.T) {
	dir := useProject(t, `output: json
verify:
  type: duckdb
  table: customers
  seed: customers.csv
`, map[string]string{
		"customers.csv": "first_name,last_name,active\nAnn,Lee,true\n",
		"mapping.yaml":  testMapping,
	})

	out, _, err := execute(t, NewVerifyCommand(), "", "--mapping", filepath.Join(dir, "mapping.yaml"))
	require.NoError(t, err)

	var got output.VerifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Passed)
	assert.Equal(t, "Customer", got.Results[0].Entity)
}

func TestVerifyCommand_RequiresTable(t *testing.T) {
	useProject(t, "output: json\n", nil)

	_, _, err := execute(t, NewVerifyCommand(), "", "a = 1")
	assert.ErrorContains(t, err, "table is required")
}

func TestRenderDialect(t *testing.T) {
	assert.Equal(t, "duckdb", renderDialect(&config.Config{Dialect: "generic"}, "duckdb"))
	assert.Equal(t, "postgres", renderDialect(&config.Config{}, "postgres"))
	assert.Equal(t, "mysql", renderDialect(&config.Config{Dialect: "mysql"}, "duckdb"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "12345678", shortID("1234567890"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestPrintRender_Modes(t *testing.T) {
	result := output.RenderOutput{Dialect: "generic", Output: "{@}.a = {@}.b", Columns: []string{"a", "b"}}

	md := testutil.NewTestRendererMarkdown()
	printRender(md.Renderer, "Rendered fragment", result, true)
	testutil.AssertValidMarkdown(t, md.Output())
	testutil.AssertNoANSI(t, md.Output())
	assert.Contains(t, md.Output(), "- `b`")

	text := testutil.NewTestRendererText()
	printRender(text.Renderer, "Rendered fragment", result, true)
	assert.Contains(t, text.Output(), "columns: a, b")
	assert.Empty(t, text.ErrorOutput())
}

func TestREPLSession(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	s, err := newREPLSession(&CommandContext{
		Cfg:      &config.Config{Dialect: "generic"},
		Renderer: tr.Renderer,
	})
	require.NoError(t, err)
	defer s.close()

	ctx := context.Background()
	assert.False(t, s.handle(ctx, ".help"))
	assert.True(t, strings.HasPrefix(tr.Output(), "Commands:\n"))
	assert.True(t, strings.HasSuffix(tr.Output(), "Exit the REPL\n"), "help ends with a single newline")

	assert.False(t, s.handle(ctx, "a is distinct from b"))
	assert.Contains(t, tr.Output(), "{@}.a is distinct from {@}.b\n")

	assert.False(t, s.handle(ctx, ".mode transform"))
	assert.False(t, s.handle(ctx, ".columns col1"))
	assert.False(t, s.handle(ctx, `"col1" + col1`))
	assert.Contains(t, tr.Output(), `"col1" + {@}.col1`+"\n")

	assert.False(t, s.handle(ctx, ".mode nope"))
	assert.Contains(t, tr.ErrorOutput(), `unknown mode "nope"`)

	assert.True(t, s.handle(ctx, ".quit"))
}
