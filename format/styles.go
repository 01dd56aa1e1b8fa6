package format

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles colour the parts of a tree dump line.
type Styles struct {
	Kind    lipgloss.Style
	Error   lipgloss.Style
	Range   lipgloss.Style
	Text    lipgloss.Style
	Message lipgloss.Style
}

// NewStyles returns plain styles, or coloured ones that always emit ANSI
// codes, whatever the process stdout is connected to.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Kind:    plain,
			Error:   plain,
			Range:   plain,
			Text:    plain,
			Message: plain,
		}
	}
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.ANSI256)
	return &Styles{
		Kind:    r.NewStyle().Foreground(lipgloss.Color("12")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Range:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Text:    r.NewStyle().Foreground(lipgloss.Color("10")),
		Message: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// ColorEnabled reports whether output to w should be coloured. mode is
// "always", "never" or "auto"; auto colours terminals unless NO_COLOR is set.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
