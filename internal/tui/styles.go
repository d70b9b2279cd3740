package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hmendes/storyflow/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Muted      lipgloss.Color
	NotStarted lipgloss.Color
	Active     lipgloss.Color
	Blocked    lipgloss.Color
	OnHold     lipgloss.Color
	Done       lipgloss.Color
	Header     lipgloss.Color
}{
	Muted:      lipgloss.Color("#636E72"),
	NotStarted: lipgloss.Color("#74B9FF"),
	Active:     lipgloss.Color("#FDCB6E"),
	Blocked:    lipgloss.Color("#D63031"),
	OnHold:     lipgloss.Color("#E17055"),
	Done:       lipgloss.Color("#00B894"),
	Header:     lipgloss.Color("#DFE6E9"),
}

// Styles contains the lipgloss styles for the board.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style
	Group  lipgloss.Style
	Err    lipgloss.Style
	ID     lipgloss.Style

	NotStarted lipgloss.Style
	Active     lipgloss.Style
	Blocked    lipgloss.Style
	OnHold     lipgloss.Style
	Done       lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:    lipgloss.NewStyle().Padding(0, 1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(Colors.Header),
		Group:  lipgloss.NewStyle().Foreground(Colors.Muted),
		Err:    lipgloss.NewStyle().Foreground(Colors.Blocked),
		ID:     lipgloss.NewStyle().Bold(true),

		NotStarted: lipgloss.NewStyle().Foreground(Colors.NotStarted),
		Active:     lipgloss.NewStyle().Foreground(Colors.Active),
		Blocked:    lipgloss.NewStyle().Foreground(Colors.Blocked),
		OnHold:     lipgloss.NewStyle().Foreground(Colors.OnHold),
		Done:       lipgloss.NewStyle().Foreground(Colors.Done),
	}
}

// Status returns the style for a task status.
func (s Styles) Status(st domain.Status) lipgloss.Style {
	switch {
	case st == domain.StatusCompleted:
		return s.Done
	case st == domain.StatusBlocked:
		return s.Blocked
	case st == domain.StatusOnHold:
		return s.OnHold
	case st.IsActive() || st == domain.StatusInProgress:
		return s.Active
	default:
		return s.NotStarted
	}
}
