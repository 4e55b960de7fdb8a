// Package dialect provides SQL dialect definitions for fragment rendering.
//
// A Dialect knows how its engine quotes identifiers and spells boolean literals,
// which data types it recognises, and which words it reserves. It satisfies the
// core.Dialect, core.TypeRegistry and core.KeywordDialect capabilities consumed by
// pkg/template. Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapfrag/pkg/core"
)

// Re-exported normalization strategies so dialect packages need only this import.
const (
	NormLowercase       = core.NormLowercase
	NormUppercase       = core.NormUppercase
	NormCaseSensitive   = core.NormCaseSensitive
	NormCaseInsensitive = core.NormCaseInsensitive
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig
	Booleans    core.BooleanStyle

	dataTypes     map[string]struct{} // lowercased
	reservedWords map[string]struct{} // lowercased
}

var (
	_ core.Dialect        = (*Dialect)(nil)
	_ core.TypeRegistry   = (*Dialect)(nil)
	_ core.KeywordDialect = (*Dialect)(nil)
)

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:          d.Name,
		Identifiers:   d.Identifiers,
		Booleans:      d.Booleans,
		DataTypes:     d.DataTypes(),
		ReservedWords: d.ReservedWords(),
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// OpenQuote returns the character that opens a quoted identifier.
func (d *Dialect) OpenQuote() rune {
	return firstRune(d.Identifiers.Quote, '"')
}

// CloseQuote returns the character that closes a quoted identifier.
func (d *Dialect) CloseQuote() rune {
	if d.Identifiers.QuoteEnd == "" {
		return d.OpenQuote()
	}
	return firstRune(d.Identifiers.QuoteEnd, '"')
}

// Quote converts a backtick-quoted name to this dialect's quoted form.
// Anything that is not backtick-quoted is returned unchanged.
func (d *Dialect) Quote(name string) string {
	if len(name) < 2 || name[0] != '`' || name[len(name)-1] != '`' {
		return name
	}
	return d.QuoteIdentifier(name[1 : len(name)-1])
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	quote, quoteEnd := d.Identifiers.Quote, d.Identifiers.QuoteEnd
	if quote == "" {
		quote = `"`
	}
	if quoteEnd == "" {
		quoteEnd = quote
	}
	escaped := name
	if d.Identifiers.Escape != "" {
		// Escape any existing quote end characters in the name (e.g., ] -> ]])
		escaped = strings.ReplaceAll(name, quoteEnd, d.Identifiers.Escape)
	}
	return quote + escaped + quoteEnd
}

// ToBooleanValueString returns the SQL literal for b.
func (d *Dialect) ToBooleanValueString(b bool) string {
	style := d.Booleans
	if style.True == "" || style.False == "" {
		style = core.BooleanKeywords
	}
	if b {
		return style.True
	}
	return style.False
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsKnownTypeName returns true if the lowercased name is one of the dialect's data types.
func (d *Dialect) IsKnownTypeName(name string) bool {
	_, ok := d.dataTypes[strings.ToLower(name)]
	return ok
}

// IsReservedWord returns true if the word is reserved by this dialect.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// DataTypes returns all supported data types (sorted, lowercased).
func (d *Dialect) DataTypes() []string {
	return sortedKeys(d.dataTypes)
}

// ReservedWords returns all reserved words (sorted, lowercased).
func (d *Dialect) ReservedWords() []string {
	return sortedKeys(d.reservedWords)
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI defaults.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			Booleans:      core.BooleanKeywords,
			dataTypes:     make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name)
	if cfg.Identifiers.Quote != "" {
		b.dialect.Identifiers = cfg.Identifiers
	}
	if cfg.Booleans.True != "" {
		b.dialect.Booleans = cfg.Booleans
	}
	return b.WithDataTypes(cfg.DataTypes...).WithReservedWords(cfg.ReservedWords...)
}

// Identifiers sets the identifier quoting configuration.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// Booleans sets the boolean literal style.
func (b *Builder) Booleans(style core.BooleanStyle) *Builder {
	b.dialect.Booleans = style
	return b
}

// WithDataTypes adds data type names.
func (b *Builder) WithDataTypes(types ...string) *Builder {
	for _, t := range types {
		b.dialect.dataTypes[strings.ToLower(t)] = struct{}{}
	}
	return b
}

// WithReservedWords adds reserved words.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}

func firstRune(s string, fallback rune) rune {
	if s == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
