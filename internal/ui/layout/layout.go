package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hintz/internal/ui/theme"
)

// DefaultWidth is the render width when the terminal size is unknown.
const DefaultWidth = 80

// Rule renders a horizontal divider line.
func Rule(width int) string {
	if width < 1 {
		width = 1
	}
	return theme.Rule.Render(strings.Repeat("─", width))
}

// KeyValue renders an aligned "key  value" line with a dim key column.
func KeyValue(key, value string, keyWidth int) string {
	k := theme.Subtitle.Render(fmt.Sprintf("%-*s", keyWidth, key))
	return k + "  " + value
}

// Wrap re-flows text to the given width, preserving words.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	if n < 1 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
