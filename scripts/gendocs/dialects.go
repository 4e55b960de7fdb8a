package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"

	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/all"
)

// sampleFragments are rendered in every dialect to show how each one differs.
var sampleFragments = []string{
	"status = 'active' and created_at > date '2024-01-01'",
	`upper("first name") || ' ' || last_name`,
	"cast(price as decimal(10, 2)) * quantity",
	"flag = true order by rank fetch first 10 rows only",
}

// generateDialectDocs writes one reference page covering every registered dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "How each SQL dialect quotes identifiers and renders fragments")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("A dialect decides which identifier quotes are recognised, how booleans are written, and which words are keywords or type names. Words a dialect reserves are never qualified.")

	var rows [][]string
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			InlineCode(d.Name),
			InlineCode(string(d.OpenQuote()) + "name" + string(d.CloseQuote())),
			InlineCode(d.ToBooleanValueString(true)) + " / " + InlineCode(d.ToBooleanValueString(false)),
			fmt.Sprintf("%d", len(d.DataTypes())),
			fmt.Sprintf("%d", len(d.ReservedWords())),
		})
	}
	w.Table([]string{"Dialect", "Quoted identifier", "Booleans", "Types", "Reserved words"}, rows)

	w.Header(2, "Examples")
	for _, fragment := range sampleFragments {
		w.CodeBlock("sql", fragment)

		var examples [][]string
		for _, name := range dialect.List() {
			d, ok := dialect.Get(name)
			if !ok {
				continue
			}
			examples = append(examples, []string{InlineCode(d.Name), InlineCode(template.Render(fragment, d, d))})
		}
		w.Table([]string{"Dialect", "Rendered"}, examples)
	}

	filename := filepath.Join(outDir, "index.md")
	log.Printf("  Generated index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
