// Package duckdb provides the DuckDB SQL dialect definition.
package duckdb

import "github.com/leapstack-labs/leapfrag/pkg/core"

// Config is the DuckDB dialect configuration.
var Config = &core.DialectConfig{
	Name: "duckdb",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	Booleans:      core.BooleanKeywords,
	DataTypes:     duckDBTypes,
	ReservedWords: duckDBReservedWords,
}
