package all

import (
	"testing"

	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllDialectsRegistered(t *testing.T) {
	for _, name := range []string{
		"ansi", "databricks", "duckdb", "generic", "mysql", "oracle", "postgres", "snowflake", "sqlserver",
	} {
		t.Run(name, func(t *testing.T) {
			d, err := dialect.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, d.Name)
		})
	}
}

func TestBracketAndBacktickDialects(t *testing.T) {
	tests := []struct {
		dialect   string
		wantQuote string
		wantTrue  string
	}{
		{"sqlserver", "[first name]", "1"},
		{"mysql", "`first name`", "1"},
		{"databricks", "`first name`", "true"},
		{"oracle", `"first name"`, "1"},
		{"postgres", `"first name"`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, ok := dialect.Get(tt.dialect)
			require.True(t, ok)
			assert.Equal(t, tt.wantQuote, d.Quote("`first name`"))
			assert.Equal(t, tt.wantTrue, d.ToBooleanValueString(true))
		})
	}
}

func TestMySQLNonReservedWordsQualify(t *testing.T) {
	d, ok := dialect.Get("mysql")
	require.True(t, ok)

	tests := []struct {
		input string
		want  string
	}{
		{"year = 4", "{@}.year = 4"},
		{"text like 'a%' and json is not null", "{@}.text like 'a%' and {@}.json is not null"},
		{"enum = 1 or bit = 0", "{@}.enum = 1 or {@}.bit = 0"},
		{"`key` = 1 and key = 2", "{@}.`key` = 1 and key = 2"},
		{"cast(a as unsigned)", "cast({@}.a as unsigned)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.input, d, d))
		})
	}
	assert.False(t, d.IsReservedWord("year"))
	assert.False(t, d.IsKnownTypeName("year"))
}
