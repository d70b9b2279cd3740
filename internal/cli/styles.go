package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hmendes/storyflow/internal/domain"
)

// Status colors shared by the CLI output and the board.
var (
	styleNotStarted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleActive     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleBlocked    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	styleOnHold     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleID         = lipgloss.NewStyle().Bold(true)
)

// renderStatus returns the display name of a status in its color.
func renderStatus(s domain.Status) string {
	switch {
	case s == domain.StatusCompleted:
		return styleCompleted.Render(s.Display())
	case s == domain.StatusBlocked:
		return styleBlocked.Render(s.Display())
	case s == domain.StatusOnHold:
		return styleOnHold.Render(s.Display())
	case s.IsActive() || s == domain.StatusInProgress:
		return styleActive.Render(s.Display())
	default:
		return styleNotStarted.Render(s.Display())
	}
}
