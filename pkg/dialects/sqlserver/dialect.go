// Package sqlserver provides the Microsoft SQL Server (T-SQL) dialect definition.
package sqlserver

import (
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
)

func init() {
	dialect.Register(SQLServer)
}

// SQLServer is the T-SQL dialect. Identifiers are bracket-quoted and a
// closing bracket inside a name is doubled.
var SQLServer = dialect.NewDialect("sqlserver").
	Identifiers("[", "]", "]]", dialect.NormCaseInsensitive).
	Booleans(core.BooleanNumeric).
	WithDataTypes(
		"bigint", "binary", "bit", "char", "date", "datetime", "datetime2",
		"datetimeoffset", "decimal", "float", "geography", "geometry",
		"hierarchyid", "image", "int", "money", "nchar", "ntext", "numeric",
		"nvarchar", "real", "rowversion", "smalldatetime", "smallint",
		"smallmoney", "sql_variant", "text", "time", "tinyint",
		"uniqueidentifier", "varbinary", "varchar", "xml",
	).
	WithReservedWords(
		"add", "all", "alter", "and", "any", "as", "asc", "authorization",
		"backup", "begin", "between", "break", "browse", "bulk", "by",
		"cascade", "case", "check", "checkpoint", "close", "clustered",
		"coalesce", "collate", "column", "commit", "compute", "constraint",
		"contains", "containstable", "continue", "convert", "create",
		"cross", "current", "current_date", "current_time",
		"current_timestamp", "current_user", "cursor", "database", "dbcc",
		"deallocate", "declare", "default", "delete", "deny", "desc", "disk",
		"distinct", "distributed", "double", "drop", "dump", "else", "end",
		"errlvl", "escape", "except", "exec", "execute", "exists", "exit",
		"external", "fetch", "file", "fillfactor", "for", "foreign",
		"freetext", "freetexttable", "from", "full", "function", "goto",
		"grant", "group", "having", "holdlock", "identity", "identitycol",
		"identity_insert", "if", "in", "index", "inner", "insert",
		"intersect", "into", "is", "join", "key", "kill", "left", "like",
		"lineno", "load", "merge", "national", "nocheck", "nonclustered",
		"not", "null", "nullif", "of", "off", "offsets", "on", "open",
		"opendatasource", "openquery", "openrowset", "openxml", "option",
		"or", "order", "outer", "over", "percent", "pivot", "plan",
		"precision", "primary", "print", "proc", "procedure", "public",
		"raiserror", "read", "readtext", "reconfigure", "references",
		"replication", "restore", "restrict", "return", "revert", "revoke",
		"right", "rollback", "rowcount", "rowguidcol", "rule", "save",
		"schema", "securityaudit", "select", "semantickeyphrasetable",
		"session_user", "set", "setuser", "shutdown", "some", "statistics",
		"system_user", "table", "tablesample", "textsize", "then", "to",
		"top", "tran", "transaction", "trigger", "truncate", "try_convert",
		"tsequal", "union", "unique", "unpivot", "update", "updatetext",
		"use", "user", "values", "varying", "view", "waitfor", "when",
		"where", "while", "with", "writetext",
	).
	Build()
