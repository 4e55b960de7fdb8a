// Package token defines the lexical vocabulary used when qualifying SQL fragments.
//
// Token kinds are small enumerated tags; the keyword, type-name and typed-literal
// tables are plain lowercase sets so they stay visible and testable.
package token

import "fmt"

// Kind represents the lexical kind of a scanned token.
type Kind int32

//nolint:revive // ALL_CAPS kind names follow SQL token conventions
const (
	// Special kinds
	NONE Kind = iota
	EOF

	WHITESPACE
	COMMENT
	PUNCT // , ; ( ) . and operators

	// Literals
	NUMBER      // 123, 45.67, 1e-5
	STRING      // 'hello', N'x', X'0f', BX'01'
	TYPED       // date '2000-01-01', timestamp with time zone '...'
	NAMED_PARAM // :name
	PARAM       // ? or ?1

	// Words
	KEYWORD
	IDENT        // unqualified identifier
	QUOTED_IDENT // `name` or dialect-quoted name
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

var kindNames = map[Kind]string{
	NONE:         "NONE",
	EOF:          "EOF",
	WHITESPACE:   "WHITESPACE",
	COMMENT:      "COMMENT",
	PUNCT:        "PUNCT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	TYPED:        "TYPED",
	NAMED_PARAM:  "NAMED_PARAM",
	PARAM:        "PARAM",
	KEYWORD:      "KEYWORD",
	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
}

// IsWord returns true for kinds produced by an identifier-like run.
func (k Kind) IsWord() bool {
	return k == KEYWORD || k == IDENT || k == QUOTED_IDENT
}

// IsLiteral returns true for literal kinds.
func (k Kind) IsLiteral() bool {
	return k >= NUMBER && k <= PARAM
}

// keywords holds the words that are never qualified.
//
// first, next, row, rows and only are deliberately absent: they are recognised
// only by the fetch/offset clause machine, so a column named "first" still gets
// qualified outside that clause.
var keywords = map[string]struct{}{
	"all":       {},
	"and":       {},
	"any":       {},
	"as":        {},
	"asc":       {},
	"between":   {},
	"by":        {},
	"case":      {},
	"cast":      {},
	"collate":   {},
	"cross":     {},
	"desc":      {},
	"distinct":  {},
	"else":      {},
	"end":       {},
	"escape":    {},
	"except":    {},
	"exists":    {},
	"false":     {},
	"fetch":     {},
	"for":       {},
	"from":      {},
	"full":      {},
	"group":     {},
	"having":    {},
	"ilike":     {},
	"in":        {},
	"inner":     {},
	"intersect": {},
	"is":        {},
	"join":      {},
	"lateral":   {},
	"left":      {},
	"like":      {},
	"limit":     {},
	"natural":   {},
	"not":       {},
	"null":      {},
	"nulls":     {},
	"offset":    {},
	"on":        {},
	"or":        {},
	"order":     {},
	"outer":     {},
	"over":      {},
	"partition": {},
	"right":     {},
	"select":    {},
	"some":      {},
	"then":      {},
	"true":      {},
	"union":     {},
	"using":     {},
	"when":      {},
	"where":     {},
	"window":    {},
	"with":      {},

	// niladic functions that are written without parentheses
	"current_date":      {},
	"current_time":      {},
	"current_timestamp": {},
	"current_user":      {},
	"localtime":         {},
	"localtimestamp":    {},
	"session_user":      {},
	"sysdate":           {},
}

// typeNames is the built-in set of type names that are never qualified.
// A typed-literal prefix that is not followed by its literal is a plain column
// name even when it also appears here (bytea, varbyte) or in a type registry.
var typeNames = map[string]struct{}{
	"bigint":    {},
	"binary":    {},
	"blob":      {},
	"boolean":   {},
	"bytea":     {},
	"char":      {},
	"character": {},
	"clob":      {},
	"decimal":   {},
	"double":    {},
	"float":     {},
	"int":       {},
	"integer":   {},
	"nchar":     {},
	"numeric":   {},
	"nvarchar":  {},
	"precision": {},
	"real":      {},
	"signed":    {},
	"smallint":  {},
	"tinyint":   {},
	"unsigned":  {},
	"varbinary": {},
	"varbyte":   {},
	"varchar":   {},
	"varying":   {},
}

// literalPrefixes are the words that, followed by a string literal, form a typed literal.
var literalPrefixes = map[string]struct{}{
	"bytea":     {},
	"date":      {},
	"interval":  {},
	"time":      {},
	"timestamp": {},
	"varbyte":   {},
	"zone":      {},
}

// zonedPrefixes may be followed by one of ZoneContinuations before the literal.
var zonedPrefixes = map[string]struct{}{
	"time":      {},
	"timestamp": {},
}

// ZoneContinuations are the word sequences allowed between time/timestamp and
// the string literal of a typed literal.
var ZoneContinuations = [][]string{
	{"with", "time", "zone"},
	{"without", "time", "zone"},
	{"zone"},
}

// intervalUnits may follow the string of an interval literal, alone or as
// "unit to unit".
var intervalUnits = map[string]struct{}{
	"year":   {},
	"month":  {},
	"day":    {},
	"hour":   {},
	"minute": {},
	"second": {},
}

// stringPrefixes are the national/hex/binary string prefixes that must touch the quote.
var stringPrefixes = map[string]struct{}{
	"n":  {},
	"x":  {},
	"bx": {},
}

// trimSpecs are the trim() specification words.
var trimSpecs = map[string]struct{}{
	"both":     {},
	"leading":  {},
	"trailing": {},
}

// Keywords returns the built-in keyword set as a slice.
func Keywords() []string {
	return setKeys(keywords)
}

// TypeNames returns the built-in type-name set as a slice.
func TypeNames() []string {
	return setKeys(typeNames)
}

// LiteralPrefixes returns the typed-literal prefix set as a slice.
func LiteralPrefixes() []string {
	return setKeys(literalPrefixes)
}

func setKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
