package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeRegistry answers whether a lowercased word is a known SQL type name.
// It mirrors core.TypeRegistry so this package stays dependency free.
type TypeRegistry interface {
	IsKnownTypeName(name string) bool
}

// IsKeyword returns true if the lowercased word is a keyword.
func IsKeyword(lc string) bool {
	_, ok := keywords[lc]
	return ok
}

// IsTypeName returns true if the lowercased word is a built-in type name or
// is known to the registry. A nil registry means built-ins only.
func IsTypeName(lc string, registry TypeRegistry) bool {
	if _, ok := typeNames[lc]; ok {
		return true
	}
	return registry != nil && registry.IsKnownTypeName(lc)
}

// IsTypedLiteralPrefix returns true if the lowercased word can introduce a typed literal.
func IsTypedLiteralPrefix(lc string) bool {
	_, ok := literalPrefixes[lc]
	return ok
}

// AllowsZoneContinuation returns true if the prefix may be followed by
// "with time zone", "without time zone" or "zone".
func AllowsZoneContinuation(lc string) bool {
	_, ok := zonedPrefixes[lc]
	return ok
}

// IsIntervalUnit returns true for the datetime fields of an interval
// qualifier (year through second).
func IsIntervalUnit(lc string) bool {
	_, ok := intervalUnits[lc]
	return ok
}

// IsStringPrefix returns true for N, X and BX (any case).
func IsStringPrefix(lc string) bool {
	_, ok := stringPrefixes[lc]
	return ok
}

// IsBooleanLiteral returns true for true and false.
func IsBooleanLiteral(lc string) bool {
	return lc == "true" || lc == "false"
}

// IsTrimSpec returns true for leading, trailing and both.
func IsTrimSpec(lc string) bool {
	_, ok := trimSpecs[lc]
	return ok
}

// IsFetchFirstOrNext returns true for the word after FETCH.
func IsFetchFirstOrNext(lc string) bool {
	return lc == "first" || lc == "next"
}

// IsFetchRow returns true for ROW or ROWS.
func IsFetchRow(lc string) bool {
	return lc == "row" || lc == "rows"
}

// IsFetchOnly returns true for ONLY.
func IsFetchOnly(lc string) bool {
	return lc == "only"
}

// IsIdentifierStart returns true if r can start an unquoted identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentifierPart returns true if r can continue an unquoted identifier.
func IsIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsWhitespace returns true for any Unicode white space, newlines included.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// IsDigit returns true for ASCII digits.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// StringLiteralStart reports whether a string literal starts at offset i of s
// and returns the length of its prefix (0 for a bare quote, 1 for N'/X', 2 for BX').
func StringLiteralStart(s string, i int) (prefixLen int, ok bool) {
	if i >= len(s) {
		return 0, false
	}
	if s[i] == '\'' {
		return 0, true
	}
	for _, n := range []int{1, 2} {
		if i+n < len(s) && s[i+n] == '\'' && IsStringPrefix(strings.ToLower(s[i:i+n])) {
			// the prefix must not be the tail of a longer identifier
			if i > 0 {
				r, _ := utf8.DecodeLastRuneInString(s[:i])
				if IsIdentifierPart(r) {
					return 0, false
				}
			}
			return n, true
		}
	}
	return 0, false
}

// IsStringLiteralStart reports whether a string literal (bare or prefixed) starts at offset i.
func IsStringLiteralStart(s string, i int) bool {
	_, ok := StringLiteralStart(s, i)
	return ok
}
