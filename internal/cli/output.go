package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// errorStyle highlights error prefixes on a terminal.
var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("196"))

// errorPrefix renders prefix in red when w is a terminal and NO_COLOR is unset.
func errorPrefix(w io.Writer, prefix string) string {
	if !useColor(w) {
		return prefix
	}
	return errorStyle.Render(prefix)
}

func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
