package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/leapfrag/pkg/template"
)

// Styles holds lipgloss styles for text output.
// Without a terminal every style renders its input unchanged.
type Styles struct {
	Header      lipgloss.Style
	Bold        lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Placeholder lipgloss.Style
}

// NewStyles returns styles for a terminal, or plain styles when color is false.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return &Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:        lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

// Highlight styles every placeholder in a rendered fragment.
func (s *Styles) Highlight(rendered string) string {
	styled := s.Placeholder.Render(template.Placeholder)
	if styled == template.Placeholder {
		return rendered
	}
	return strings.ReplaceAll(rendered, template.Placeholder, styled)
}
