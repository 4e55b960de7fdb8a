package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// Table writes rows under headers: a markdown table when piped,
// a box table in text mode.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = titleCase.String(h)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	if r.isTTY {
		t.Style().Color.Header = text.Colors{text.Bold}
	}
	t.Render()
}
