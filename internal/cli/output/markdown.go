package output

import (
	"fmt"
	"strings"
)

// FormatHeader returns a markdown header.
func FormatHeader(level int, title string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + title
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatList returns a markdown bullet list, each item in code spans.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- `" + item + "`"
	}
	return strings.Join(lines, "\n")
}
