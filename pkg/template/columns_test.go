package template

import (
	"testing"

	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/stretchr/testify/assert"
)

func TestCollectColumnNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two columns", "{@}.a = 1 and {@}.b = 2", []string{"a", "b"}},
		{"trailing", "{@}.last", []string{"last"}},
		{"duplicates", "{@}.a + {@}.a", []string{"a", "a"}},
		{"quoted", `{@}."first name" || {@}.x`, []string{`"first name"`, "x"}},
		{"backticks", "{@}.`a` + {@}.[b]", []string{"`a`", "[b]"}},
		{"nothing", "t.a = 1", nil},
		{"empty name", "{@}. + {@}.b", []string{"b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectColumnNames(tt.input))
		})
	}
}

func TestCollectColumnNamesRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"where a = 1 and b = 2", []string{"a", "b"}},
		{"upper(hello) || lower(world) || hello", []string{"hello", "world", "hello"}},
		{"extract(hour from time) + t.x", []string{"time"}},
		{"select first_name from users fetch first 10 rows only", []string{"first_name"}},
		{"cast(`val` as varchar(10))", []string{`"val"`}},
		{"'a' || date '2000-01-01'", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectColumnNames(Render(tt.input, dialect.Generic, nil)))
		})
	}
}

func TestRenderTransformerReadFragment(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		columns  []string
		want     string
	}{
		{"both columns", "col1 + col2", []string{"col1", "col2"}, "{@}.col1 + {@}.col2"},
		{"only listed", "col1 + col3", []string{"col1"}, "{@}.col1 + col3"},
		{"whole words", "col10 + col1", []string{"col1"}, "col10 + {@}.col1"},
		{"after dot", "t.col1 + col1", []string{"col1"}, "t.col1 + {@}.col1"},
		{"in strings", "col1 || 'col1'", []string{"col1"}, "{@}.col1 || 'col1'"},
		{"in functions", "upper(col1)", []string{"col1"}, "upper({@}.col1)"},
		{"exponent", "1e5 * e5", []string{"e5"}, "1e5 * {@}.e5"},
		{"case sensitive", "COL1", []string{"col1"}, "COL1"},
		{"no columns", "col1", nil, "col1"},
		{"already rendered", "{@}.col1", []string{"col1"}, "{@}.col1"},
		{"quoted names", "\"col1\" + col1 + `col1`", []string{"col1"}, "\"col1\" + {@}.col1 + `col1`"},
		{"brackets", "[col1] + col1", []string{"col1"}, "[col1] + {@}.col1"},
		{"subscript", "tags[col1]", []string{"col1", "tags"}, "{@}.tags[{@}.col1]"},
		{"line comment", "col1 -- col1\n+ col1", []string{"col1"}, "{@}.col1 -- col1\n+ {@}.col1"},
		{"block comment", "/* col1 */ col1", []string{"col1"}, "/* col1 */ {@}.col1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTransformerReadFragment(tt.fragment, tt.columns...))
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		rendered string
		alias    string
		want     string
	}{
		{"alias", "{@}.a = {@}.b", "t0", "t0.a = t0.b"},
		{"no alias", "{@}.a = {@}.b", "", "a = b"},
		{"strings untouched", "{@}.a = '{@}.b'", "x", "x.a = '{@}.b'"},
		{"nothing to do", "a = 1", "x", "a = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.rendered, tt.alias))
		})
	}
}
