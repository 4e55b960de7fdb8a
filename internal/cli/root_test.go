package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapfrag/internal/cli/config"
	"github.com/leapstack-labs/leapfrag/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"render", "columns", "transform", "dialects", "batch", "history", "repl", "serve", "verify", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "dialect", "types", "state", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_DialectFlag(t *testing.T) {
	out, _, err := runRoot(t, "render", "-d", "sqlserver", "-o", "text", "[order] = 1")
	require.NoError(t, err)
	assert.Equal(t, "{@}.[order] = 1\n", out)
}

func TestRootCmd_TypesFlag(t *testing.T) {
	out, _, err := runRoot(t, "render", "-o", "text", "--types", "ltree", "ltree = path")
	require.NoError(t, err)
	assert.Equal(t, "ltree = {@}.path\n", out)

	out, _, err = runRoot(t, "render", "-o", "text", "ltree = path")
	require.NoError(t, err)
	assert.Equal(t, "{@}.ltree = {@}.path\n", out)
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	_, _, err := runRoot(t, "render", "-d", "klingon", "a")
	assert.ErrorContains(t, err, "unknown dialect")

	_, _, err = runRoot(t, "render", "--config", filepath.Join(os.TempDir(), "no-such-leapfrag.yaml"), "a")
	assert.ErrorContains(t, err, "error reading config file")
}

func TestRootCmd_VerboseLogs(t *testing.T) {
	_, errOut, err := runRoot(t, "render", "-v", "-o", "text", "a = 1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "fragment rendered")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leapfrag")

	_, _, err = runRoot(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestRootCmd_Project(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"batch", "mapping.yaml", "-o", "markdown"})
	require.NoError(t, cmd.Execute())

	testutil.AssertValidMarkdown(t, out.String())
	testutil.AssertNoANSI(t, out.String())
	assert.Contains(t, out.String(), "{@}.last_name, {@}.first_name")

	cmd = NewRootCmd()
	out.Reset()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"verify", "--mapping", "mapping.yaml", "-o", "json"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"failed": 0`)
}
