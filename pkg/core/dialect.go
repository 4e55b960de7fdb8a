package core

// Dialect is the capability a fragment renderer needs from a SQL engine:
// its quoted-identifier characters and its boolean literal spelling.
type Dialect interface {
	// OpenQuote returns the character that opens a dialect-native quoted identifier.
	OpenQuote() rune
	// CloseQuote returns the matching close character.
	CloseQuote() rune
	// Quote converts a backtick-quoted name (`name`) to the dialect-native quoted form.
	// Names that are not backtick-quoted are returned unchanged.
	Quote(name string) string
	// ToBooleanValueString returns the SQL literal for a boolean value.
	ToBooleanValueString(b bool) string
}

// TypeRegistry answers whether a lowercased word is a known SQL type name.
type TypeRegistry interface {
	IsKnownTypeName(name string) bool
}

// KeywordDialect is implemented by dialects that contribute their own reserved
// words; those words are never qualified.
type KeywordDialect interface {
	IsReservedWord(word string) bool
}

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "duckdb", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// Booleans defines how boolean literals are written
	Booleans BooleanStyle

	// DataTypes are type names reported by the dialect's type registry
	DataTypes []string

	// ReservedWords are dialect keywords that must never be qualified
	ReservedWords []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// BooleanStyle holds the literal spellings of true and false.
type BooleanStyle struct {
	True  string
	False string
}

// Standard boolean styles.
var (
	BooleanKeywords = BooleanStyle{True: "true", False: "false"}
	BooleanNumeric  = BooleanStyle{True: "1", False: "0"}
	BooleanChar     = BooleanStyle{True: "'T'", False: "'F'"}
)

// TypeNames is a set of lowercased type names that implements TypeRegistry.
type TypeNames map[string]struct{}

// NewTypeNames builds a TypeNames set; names are stored lowercased.
func NewTypeNames(names ...string) TypeNames {
	set := make(TypeNames, len(names))
	for _, n := range names {
		set[lower(n)] = struct{}{}
	}
	return set
}

// IsKnownTypeName implements TypeRegistry.
func (t TypeNames) IsKnownTypeName(name string) bool {
	_, ok := t[name]
	return ok
}

// lower is an ASCII-only lowercase so core stays free of extra imports.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// TypeRegistries consults each registry in turn.
type TypeRegistries []TypeRegistry

// IsKnownTypeName implements TypeRegistry.
func (r TypeRegistries) IsKnownTypeName(name string) bool {
	for _, reg := range r {
		if reg != nil && reg.IsKnownTypeName(name) {
			return true
		}
	}
	return false
}
