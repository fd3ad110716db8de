package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// printer renders styled text on terminals and plain text elsewhere.
type printer struct {
	out    io.Writer
	styled bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, styled: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) title(s string) {
	_, _ = io.WriteString(p.out, p.render(titleStyle, s)+"\n")
}

func (p *printer) box(s string) {
	_, _ = io.WriteString(p.out, p.render(boxStyle, s)+"\n")
}

func (p *printer) ok(s string) {
	_, _ = io.WriteString(p.out, p.render(okStyle, s)+"\n")
}

func (p *printer) fail(s string) {
	_, _ = io.WriteString(p.out, p.render(errStyle, s)+"\n")
}

func (p *printer) note(s string) {
	_, _ = io.WriteString(p.out, p.render(dimStyle, s)+"\n")
}
