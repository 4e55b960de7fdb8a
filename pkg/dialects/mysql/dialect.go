// Package mysql provides the MySQL dialect definition.
package mysql

import (
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect. It quotes with backticks and has no boolean
// type, so TRUE and FALSE render as 1 and 0.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``", dialect.NormCaseInsensitive).
	Booleans(core.BooleanNumeric).
	// Non-reserved type keywords that double as column names (year, text,
	// json, enum, bit, bool) are left out so they still qualify.
	WithDataTypes(
		"bigint", "binary", "blob", "boolean", "char", "date",
		"datetime", "decimal", "double", "float", "int", "integer",
		"longblob", "longtext", "mediumblob", "mediumint",
		"mediumtext", "numeric", "real", "set", "signed", "smallint",
		"time", "timestamp", "tinyblob", "tinyint", "tinytext", "unsigned",
		"varbinary", "varchar",
	).
	WithReservedWords(
		"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
		"before", "between", "both", "by", "call", "cascade", "case",
		"change", "check", "collate", "column", "condition", "constraint",
		"continue", "convert", "create", "cross", "cube", "current_date",
		"current_time", "current_timestamp", "current_user", "cursor",
		"database", "databases", "default", "delayed", "delete", "desc",
		"describe", "distinct", "distinctrow", "div", "drop", "dual", "each",
		"else", "elseif", "escaped", "exists", "exit", "explain", "false",
		"fetch", "for", "force", "foreign", "from", "fulltext", "grant",
		"group", "having", "if", "ignore", "in", "index", "inner", "insert",
		"interval", "into", "is", "join", "key", "keys", "kill", "leading",
		"leave", "left", "like", "limit", "lines", "load", "localtime",
		"localtimestamp", "lock", "loop", "match", "mod", "natural", "not",
		"null", "on", "optimize", "option", "or", "order", "out", "outer",
		"outfile", "partition", "primary", "procedure", "range", "read",
		"references", "regexp", "release", "rename", "repeat", "replace",
		"require", "restrict", "return", "revoke", "right", "rlike", "row",
		"rows", "schema", "select", "separator", "set", "show", "spatial",
		"sql", "ssl", "starting", "table", "terminated", "then", "to",
		"trailing", "trigger", "true", "union", "unique", "unlock", "update",
		"usage", "use", "using", "values", "when", "where", "while", "with",
		"write", "xor", "zerofill",
	).
	Build()
