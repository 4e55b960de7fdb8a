// Package main provides a generator that extracts DuckDB keyword and type
// metadata and generates the word lists of the duckdb dialect.
//
// Usage:
//
//	go run ./scripts/gendialect -out=pkg/dialects/duckdb/words_gen.go
package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"sort"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	outFlag     = flag.String("out", "", "output file path (required)")
	packageFlag = flag.String("package", "duckdb", "package name of the generated file")
)

func main() {
	flag.Parse()

	if *outFlag == "" {
		log.Fatal("--out flag is required")
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		log.Fatalf("failed to open duckdb: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	var version string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("failed to get version: %v", err)
	}
	log.Printf("Connected to DuckDB %s", version)

	keywords, err := queryNames(ctx, db, `
		SELECT keyword_name FROM duckdb_keywords()
		WHERE keyword_category = 'reserved'`)
	if err != nil {
		log.Fatalf("failed to extract keywords: %v", err)
	}
	log.Printf("Extracted %d reserved keywords", len(keywords))

	dataTypes, err := queryNames(ctx, db, `
		SELECT DISTINCT type_name FROM duckdb_types()
		WHERE type_category IS NOT NULL AND NOT internal`)
	if err != nil {
		log.Fatalf("failed to extract data types: %v", err)
	}
	log.Printf("Extracted %d data types", len(dataTypes))

	code, err := generateCode(*packageFlag, keywords, dataTypes)
	if err != nil {
		log.Fatalf("failed to format generated code: %v", err)
	}

	if err := os.WriteFile(*outFlag, code, 0o600); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	log.Printf("Generated %s", *outFlag)
}

// queryNames returns the lowercased, deduplicated and sorted first column of query.
func queryNames(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return normalize(names), nil
}

// normalize lowercases, drops names that are not plain words, and sorts.
func normalize(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] || strings.ContainsAny(name, " ()[]") {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// generateCode renders the gofmt-ed source of the generated file. The
// DuckDB version is left out so regenerating on another release only
// changes the lists.
func generateCode(pkg string, keywords, dataTypes []string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by scripts/gendialect. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("// duckDBTypes lists the type names of duckdb_types().\n")
	buf.WriteString("var duckDBTypes = []string{\n")
	writeStringSlice(&buf, dataTypes)
	buf.WriteString("}\n\n")

	buf.WriteString("// duckDBReservedWords mirrors the reserved category of duckdb_keywords().\n")
	buf.WriteString("var duckDBReservedWords = []string{\n")
	writeStringSlice(&buf, keywords)
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func writeStringSlice(buf *bytes.Buffer, items []string) {
	const itemsPerLine = 6
	for i, item := range items {
		if i%itemsPerLine == 0 {
			buf.WriteString("\t")
		}
		fmt.Fprintf(buf, "%q, ", item)
		if (i+1)%itemsPerLine == 0 {
			buf.WriteString("\n")
		}
	}
	if len(items)%itemsPerLine != 0 {
		buf.WriteString("\n")
	}
}
