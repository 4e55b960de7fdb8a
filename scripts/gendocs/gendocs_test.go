package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# CLI Reference")
	assert.Contains(t, string(index), "[`render`](/cli/render)")
	assert.Contains(t, string(index), "`state_path`")
	assert.Contains(t, string(index), "| `verify.dsn` | `LEAPFRAG_VERIFY__DSN` | `--dsn` |")

	verify, err := os.ReadFile(filepath.Join(dir, "verify.md"))
	require.NoError(t, err)
	assert.Contains(t, string(verify), "`--dsn`")
	assert.Contains(t, string(verify), "`verify.dsn`")
	assert.Contains(t, string(verify), "leapfrag verify [fragment]")
}

func TestGenerateDialectDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateDialectDocs(dir))

	page, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# Dialects")
	assert.Contains(t, string(page), "`sqlserver`")
	assert.Contains(t, string(page), "{@}.quantity")
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Usage")
	w.BulletList([]string{"a", "b"})
	assert.Equal(t, "## Usage\n\n- a\n- b\n\n", string(w.Bytes()))

	assert.Equal(t, "`x`", InlineCode("x"))
	assert.Equal(t, "`` `x` ``", InlineCode("`x`"))
	assert.Equal(t, "one two", cleanDescription("one\n  two"))
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "leapfrag render a\n  leapfrag render b", cleanExample("  leapfrag render a\n    leapfrag render b"))
}
