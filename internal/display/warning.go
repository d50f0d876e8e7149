package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// MaxListedPaths caps how many paths a warning prints before summarizing the rest
const MaxListedPaths = 20

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when out is a color-capable terminal
func (w Warning) Display(out io.Writer) {
	w.render(out, useColor(out))
}

func (w Warning) render(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		if len(w.Paths) == 1 {
			b.WriteString("    Affected path:\n")
		} else {
			b.WriteString("    Affected paths:\n")
		}

		listed := w.Paths
		if len(listed) > MaxListedPaths {
			listed = listed[:MaxListedPaths]
		}
		for i, path := range listed {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, path)
		}
		if rest := len(w.Paths) - len(listed); rest > 0 {
			fmt.Fprintf(&b, "      ... and %d more\n", rest)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colored {
		c := color.New(color.FgYellow)
		c.EnableColor()
		fmt.Fprint(out, c.Sprint(b.String()))
		return
	}
	fmt.Fprint(out, b.String())
}

// WarnInaccessible builds the warning shown after a search that skipped paths
func WarnInaccessible(paths []string) Warning {
	noun := "paths"
	if len(paths) == 1 {
		noun = "path"
	}
	return Warning{
		Title:      fmt.Sprintf("%d %s could not be searched", len(paths), noun),
		Message:    "These entries were skipped; results from the rest of the tree are complete.",
		Paths:      paths,
		Suggestion: "Check permissions and broken symlinks, or rerun with --log-level debug for details.",
	}
}

// useColor reports whether out is a terminal that should receive ANSI colors
func useColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
