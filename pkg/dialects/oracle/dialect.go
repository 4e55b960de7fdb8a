// Package oracle provides the Oracle Database dialect definition.
package oracle

import (
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
)

func init() {
	dialect.Register(Oracle)
}

// Oracle is the Oracle dialect. Before 23c Oracle has no SQL boolean type,
// so boolean literals render as 1 and 0.
var Oracle = dialect.NewDialect("oracle").
	Identifiers(`"`, `"`, `""`, dialect.NormUppercase).
	Booleans(core.BooleanNumeric).
	WithDataTypes(
		"binary_double", "binary_float", "blob", "char", "clob", "date",
		"float", "integer", "interval", "long", "nchar", "nclob", "number",
		"nvarchar2", "raw", "rowid", "timestamp", "urowid", "varchar",
		"varchar2", "xmltype",
	).
	WithReservedWords(
		"access", "add", "all", "alter", "and", "any", "as", "asc", "audit",
		"between", "by", "char", "check", "cluster", "column", "comment",
		"compress", "connect", "create", "current", "decimal", "default",
		"delete", "desc", "distinct", "drop", "else", "exclusive", "exists",
		"file", "float", "for", "from", "grant", "group", "having",
		"identified", "immediate", "in", "increment", "index", "initial",
		"insert", "integer", "intersect", "into", "is", "level", "like",
		"lock", "long", "maxextents", "minus", "mlslabel", "mode", "modify",
		"noaudit", "nocompress", "not", "nowait", "null", "number", "of",
		"offline", "on", "online", "option", "or", "order", "pctfree",
		"prior", "public", "raw", "rename", "resource", "revoke", "row",
		"rowid", "rownum", "rows", "select", "session", "set", "share",
		"size", "smallint", "start", "successful", "synonym", "sysdate",
		"table", "then", "to", "trigger", "uid", "union", "unique", "update",
		"user", "validate", "values", "varchar", "varchar2", "view",
		"whenever", "where", "with",
	).
	Build()
