package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hintz/internal/ui/theme"
)

// Spinner wraps bubbles/spinner with hintz styling.
type Spinner struct {
	Model spinner.Model
}

// NewSpinner creates a styled activity spinner.
func NewSpinner() Spinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
	)
	return Spinner{Model: s}
}

// Init returns the command that starts the spinner's tick loop.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// Update advances the animation on spinner tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the current spinner frame.
func (s Spinner) View() string {
	return s.Model.View()
}
