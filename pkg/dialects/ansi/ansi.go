// Package ansi provides the base ANSI SQL dialect.
//
// This dialect serves as the reference for the others: double-quoted
// identifiers, TRUE/FALSE boolean keywords and the SQL:2016 reserved words.
package ansi

import (
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// Config is the ANSI dialect configuration.
var Config = &core.DialectConfig{
	Name: "ansi",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	Booleans:      core.BooleanKeywords,
	DataTypes:     DataTypes,
	ReservedWords: ReservedWords,
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.New(Config).Build()

// DataTypes are the standard SQL type names.
var DataTypes = []string{
	"array", "bigint", "binary", "blob", "boolean", "char", "character",
	"clob", "date", "decimal", "double", "float", "int", "integer",
	"interval", "multiset", "nchar", "nclob", "numeric", "real", "row",
	"smallint", "time", "timestamp", "varbinary", "varchar",
}

// ReservedWords is the subset of SQL:2016 reserved words that cannot name a
// column without quoting. Datetime field names (year, hour, ...) are left out
// because they are common column names.
var ReservedWords = []string{
	"all", "allocate", "alter", "and", "any", "are", "as", "asymmetric",
	"at", "authorization", "begin", "between", "both", "by", "call",
	"called", "cascaded", "case", "cast", "check", "close", "collate",
	"column", "commit", "condition", "connect", "constraint", "create",
	"cross", "cube", "current", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "cursor", "deallocate", "declare", "default", "delete",
	"deref", "describe", "deterministic", "disconnect", "distinct", "drop",
	"dynamic", "each", "else", "end", "escape", "except", "exec", "execute",
	"exists", "external", "false", "fetch", "for", "foreign", "free",
	"from", "full", "function", "get", "global", "grant", "group",
	"grouping", "having", "hold", "identity", "in", "indicator", "inner",
	"inout", "insensitive", "insert", "intersect", "into", "is", "join",
	"lateral", "leading", "left", "like", "local", "localtime",
	"localtimestamp", "match", "merge", "method", "modifies", "natural",
	"new", "no", "none", "not", "null", "of", "offset", "old", "on", "only",
	"open", "or", "order", "out", "outer", "over", "overlaps", "parameter",
	"partition", "precision", "prepare", "primary", "procedure", "range",
	"reads", "recursive", "ref", "references", "referencing", "release",
	"return", "returns", "revoke", "right", "rollback", "rollup", "rows",
	"savepoint", "scope", "scroll", "search", "select", "sensitive",
	"session_user", "set", "similar", "some", "specific", "specifictype",
	"sql", "sqlexception", "sqlstate", "sqlwarning", "start", "static",
	"submultiset", "symmetric", "system", "system_user", "table",
	"tablesample", "then", "timezone_hour", "timezone_minute", "to",
	"trailing", "translation", "treat", "trigger", "true", "union",
	"unique", "unknown", "unnest", "update", "user", "using", "values",
	"when", "whenever", "where", "window", "with", "within", "without",
}
