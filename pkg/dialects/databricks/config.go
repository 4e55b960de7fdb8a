// Package databricks provides the Databricks SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package databricks

import "github.com/leapstack-labs/leapfrag/pkg/core"

// Config is the Databricks SQL dialect configuration.
var Config = &core.DialectConfig{
	Name: "databricks",
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseInsensitive,
	},
	Booleans:      core.BooleanKeywords,
	DataTypes:     databricksTypes,
	ReservedWords: databricksReservedWords,
}

var databricksTypes = []string{
	"array", "bigint", "binary", "boolean", "byte", "date", "decimal",
	"double", "float", "int", "integer", "interval", "long", "map",
	"short", "smallint", "string", "struct", "timestamp", "timestamp_ntz",
	"tinyint", "variant", "void",
}

// databricksReservedWords are the ANSI-mode reserved words of Databricks SQL.
var databricksReservedWords = []string{
	"all", "alter", "and", "any", "array", "as", "at", "authorization",
	"between", "both", "by", "case", "cast", "check", "collate", "column",
	"commit", "constraint", "create", "cross", "cube", "current",
	"current_date", "current_time", "current_timestamp", "current_user",
	"delete", "describe", "distinct", "drop", "else", "end", "escape",
	"except", "exists", "external", "false", "fetch", "filter", "for",
	"foreign", "from", "full", "function", "global", "grant", "group",
	"grouping", "having", "in", "inner", "insert", "intersect", "interval",
	"into", "is", "join", "lateral", "leading", "left", "like", "local",
	"natural", "no", "not", "null", "of", "on", "only", "or", "order",
	"out", "outer", "overlaps", "partition", "primary", "range", "reads",
	"references", "revoke", "right", "rollback", "rollup", "row", "rows",
	"select", "session_user", "set", "some", "start", "table",
	"tablesample", "then", "to", "trailing", "true", "union", "unique",
	"unknown", "update", "user", "using", "values", "when", "where",
	"window", "with",
}
