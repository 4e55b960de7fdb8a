package template

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapfrag/pkg/token"
)

// CollectColumnNames returns, in order and with duplicates, every name that
// follows a {@}. marker in a rendered fragment. Quoted names are returned in
// their quoted form.
func CollectColumnNames(rendered string) []string {
	var names []string
	for i := 0; ; {
		idx := strings.Index(rendered[i:], Qualifier)
		if idx < 0 {
			return names
		}
		start := i + idx + len(Qualifier)
		end := scanColumnName(rendered, start)
		if end > start {
			names = append(names, rendered[start:end])
		}
		i = end
	}
}

func scanColumnName(s string, i int) int {
	c, _ := runeAt(s, i)
	switch c {
	case '"', '`':
		end, _ := scanQuoted(s, i, c)
		return end
	case '[':
		end, _ := scanQuoted(s, i, ']')
		return end
	}
	return scanWord(s, i)
}

// RenderTransformerReadFragment qualifies the given column names wherever they
// appear as standalone identifiers in fragment. It needs no SQL grammar and is
// meant for column read expressions whose column set is known up front.
// String literals, quoted identifiers, comments and names directly after a
// '.' are left alone.
func RenderTransformerReadFragment(fragment string, columnNames ...string) string {
	if fragment == "" || len(columnNames) == 0 {
		return fragment
	}
	columns := make(map[string]struct{}, len(columnNames))
	for _, name := range columnNames {
		columns[name] = struct{}{}
	}

	var out strings.Builder
	out.Grow(len(fragment) + len(columnNames)*len(Qualifier))
	for i := 0; i < len(fragment); {
		c, size := runeAt(fragment, i)
		next, _ := runeAt(fragment, i+size)
		switch {
		case c == '\'':
			end := scanString(fragment, i)
			out.WriteString(fragment[i:end])
			i = end
		case c == '-' && next == '-', c == '/' && next == '*':
			end := scanComment(fragment, i)
			out.WriteString(fragment[i:end])
			i = end
		case c == '"', c == '`', c == '[' && bracketQuoted(fragment, i):
			closeQuote := c
			if c == '[' {
				closeQuote = ']'
			}
			end, _ := scanQuoted(fragment, i, closeQuote)
			out.WriteString(fragment[i:end])
			i = end
		case token.IsIdentifierStart(c):
			end := scanWord(fragment, i)
			name := fragment[i:end]
			if _, ok := columns[name]; ok && (i == 0 || fragment[i-1] != '.') {
				out.WriteString(Qualifier)
			}
			out.WriteString(name)
			i = end
		case token.IsDigit(c):
			// keep 1e5 from exposing "e5" as an identifier
			end := scanWord(fragment, i)
			out.WriteString(fragment[i:end])
			i = end
		default:
			out.WriteString(fragment[i : i+size])
			i += size
		}
	}
	return out.String()
}

// bracketQuoted reports whether the '[' at i opens a [name] identifier rather
// than an array subscript such as tags[1].
func bracketQuoted(s string, i int) bool {
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	return !token.IsIdentifierPart(prev) && !strings.ContainsRune(")]\"`", prev)
}

// Expand substitutes the table alias for the placeholder in a rendered
// fragment. An empty alias removes the qualifier. String literals are not
// touched.
func Expand(rendered, alias string) string {
	if !strings.Contains(rendered, Placeholder) {
		return rendered
	}
	from, to := Placeholder, alias
	if alias == "" {
		from = Qualifier
	}

	var out strings.Builder
	out.Grow(len(rendered))
	for i := 0; i < len(rendered); {
		switch {
		case rendered[i] == '\'':
			end := scanString(rendered, i)
			out.WriteString(rendered[i:end])
			i = end
		case strings.HasPrefix(rendered[i:], from):
			out.WriteString(to)
			i += len(from)
		default:
			out.WriteByte(rendered[i])
			i++
		}
	}
	return out.String()
}
