package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles renders command output. Colors are dropped when the output is not
// a terminal.
type styles struct {
	ok    lipgloss.Style
	bad   lipgloss.Style
	due   lipgloss.Style
	skip  lipgloss.Style
	dim   lipgloss.Style
	caret lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		due:   r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		skip:  r.NewStyle().Faint(true),
		dim:   r.NewStyle().Faint(true),
		caret: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// column pads s to width cells.
func column(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}

	return s
}

// caretLine returns a line that points at byte offset pos of src, followed by
// msg. Offsets past the end point just after the last character.
func (s styles) caretLine(src string, pos int, msg string) string {
	pos = min(max(pos, 0), len(src))

	return strings.Repeat(" ", lipgloss.Width(src[:pos])) +
		s.caret.Render("^") + " " + msg
}
