package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRegistry map[string]bool

func (f fakeRegistry) IsKnownTypeName(name string) bool { return f[name] }

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, "QUOTED_IDENT", QUOTED_IDENT.String())
	assert.Equal(t, "KIND(99)", Kind(99).String())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KEYWORD.IsWord())
	assert.True(t, QUOTED_IDENT.IsWord())
	assert.False(t, NUMBER.IsWord())
	assert.True(t, STRING.IsLiteral())
	assert.True(t, PARAM.IsLiteral())
	assert.False(t, IDENT.IsLiteral())
}

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"select", true},
		{"fetch", true},
		{"between", true},
		{"current_timestamp", true},
		{"first", false},
		{"next", false},
		{"rows", false},
		{"only", false},
		{"hello", false},
		{"date", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKeyword(tt.word))
		})
	}
}

func TestIsTypeName(t *testing.T) {
	reg := fakeRegistry{"geometry": true}

	assert.True(t, IsTypeName("varchar", nil))
	assert.True(t, IsTypeName("unsigned", nil))
	assert.True(t, IsTypeName("signed", nil))
	assert.False(t, IsTypeName("geometry", nil))
	assert.True(t, IsTypeName("geometry", reg))
	assert.False(t, IsTypeName("foo", reg))
}

func TestTypedLiteralVocabulary(t *testing.T) {
	for _, w := range []string{"date", "time", "timestamp", "bytea", "varbyte", "zone"} {
		assert.True(t, IsTypedLiteralPrefix(w), w)
	}
	assert.False(t, IsTypedLiteralPrefix("varchar"))

	for _, w := range []string{"year", "month", "day", "hour", "minute", "second"} {
		assert.True(t, IsIntervalUnit(w), w)
	}
	assert.False(t, IsIntervalUnit("days"))
	assert.False(t, IsIntervalUnit("zone"))

	assert.True(t, AllowsZoneContinuation("time"))
	assert.True(t, AllowsZoneContinuation("timestamp"))
	assert.False(t, AllowsZoneContinuation("date"))
}

func TestFetchVocabulary(t *testing.T) {
	assert.True(t, IsFetchFirstOrNext("first"))
	assert.True(t, IsFetchFirstOrNext("next"))
	assert.False(t, IsFetchFirstOrNext("last"))
	assert.True(t, IsFetchRow("row"))
	assert.True(t, IsFetchRow("rows"))
	assert.True(t, IsFetchOnly("only"))
	assert.True(t, IsBooleanLiteral("true"))
	assert.False(t, IsBooleanLiteral("truest"))
}

func TestIdentifierRunes(t *testing.T) {
	assert.True(t, IsIdentifierStart('a'))
	assert.True(t, IsIdentifierStart('_'))
	assert.True(t, IsIdentifierStart('é'))
	assert.False(t, IsIdentifierStart('1'))
	assert.True(t, IsIdentifierPart('1'))
	assert.False(t, IsIdentifierPart('.'))
	assert.True(t, IsWhitespace('\n'))
	assert.True(t, IsWhitespace('\t'))
}

func TestStringLiteralStart(t *testing.T) {
	tests := []struct {
		input   string
		offset  int
		wantLen int
		wantOK  bool
	}{
		{"'a'", 0, 0, true},
		{"N'a'", 0, 1, true},
		{"x'0f'", 0, 1, true},
		{"BX'01'", 0, 2, true},
		{"bx'01'", 0, 2, true},
		{"N 'a'", 0, 0, false},
		{"abc", 0, 0, false},
		{"foon'a'", 3, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := StringLiteralStart(tt.input, tt.offset)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLen, n)
			assert.Equal(t, tt.wantOK, IsStringLiteralStart(tt.input, tt.offset))
		})
	}
}

func TestSetsExported(t *testing.T) {
	assert.Contains(t, Keywords(), "where")
	assert.Contains(t, TypeNames(), "varchar")
	assert.Contains(t, LiteralPrefixes(), "timestamp")
}
