package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hintz/internal/ui/theme"
)

// ProgressBar renders a horizontal completion bar, used by the bench
// screen to track records evaluated.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar returns a bar rendered at the given cell width.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar into Width cells: label, track, then the
// percentage when requested. The track never drops below 4 cells even
// on narrow terminals.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = len("  100%")
	}
	track := p.Width - lipgloss.Width(b.String()) - percentWidth
	if track < 4 {
		track = 4
	}

	filled := clampInt(int(float64(track)*p.Percent), 0, track)
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", track-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}

	return b.String()
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
