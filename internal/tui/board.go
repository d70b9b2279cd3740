// Package tui provides the interactive backlog board.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmendes/storyflow/internal/app"
	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/usecase"
)

// taskItem adapts a task to the bubbles list.
type taskItem struct {
	loc    *domain.TaskLocation
	styles Styles
}

func (i taskItem) Title() string {
	t := i.loc.Task
	marker := ""
	if t.Intermittent {
		marker = " ~"
	}
	return fmt.Sprintf("%s %s%s  %s",
		i.styles.ID.Render("T"+t.ID), t.Title, marker,
		i.styles.Status(t.Status).Render(t.Status.Display()))
}

func (i taskItem) Description() string {
	return fmt.Sprintf("F%s %s / S%s %s",
		i.loc.Feature.ID, i.loc.Feature.Title, i.loc.Story.ID, i.loc.Story.Title)
}

func (i taskItem) FilterValue() string {
	return i.loc.Task.ID + " " + i.loc.Task.Title + " " + i.loc.Story.Title
}

// Messages.
type msgLoaded struct{ out *usecase.ShowStatusOutput }
type msgError struct{ err error }

// Model is the bubbletea model for the backlog board. It is read-only: the
// workflow commands stay on the CLI.
type Model struct {
	container *app.Container
	err       error

	active  *domain.TaskLocation
	project string

	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model

	width  int
	height int
}

// New creates a new board Model with the given container.
func New(c *app.Container) *Model {
	styles := DefaultStyles()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		BorderForeground(Colors.Active).Foreground(Colors.Header)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		BorderForeground(Colors.Active).Foreground(Colors.Muted)

	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetFilteringEnabled(true)
	taskList.DisableQuitKeybindings()

	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		taskList:  taskList,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// load returns a command that reloads the backlog from disk.
func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowStatusUseCase().Execute(context.Background(), usecase.ShowStatusInput{})
		if err != nil {
			return msgError{err: err}
		}
		return msgLoaded{out: out}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.taskList.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case msgLoaded:
		m.err = nil
		m.project = msg.out.Graph.Project
		m.active = msg.out.Active
		m.taskList.SetItems(m.items(msg.out.Graph))
		return m, nil

	case msgError:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		// The list's filter input owns the keyboard while filtering.
		if m.taskList.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

// View renders the board.
func (m *Model) View() string {
	header := m.styles.Header.Render("storyflow · " + m.project)
	if m.active != nil {
		header += m.styles.Group.Render(
			fmt.Sprintf("  (active: T%s %s)", m.active.Task.ID, m.active.Task.Title))
	}

	body := m.taskList.View()
	if m.err != nil {
		body = m.styles.Err.Render("Error: " + m.err.Error())
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.help.View(m.keys),
	))
}

// items flattens the graph into list items in backlog order.
func (m *Model) items(g *domain.Graph) []list.Item {
	var items []list.Item
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				items = append(items, taskItem{
					loc:    &domain.TaskLocation{Feature: f, Story: s, Task: t},
					styles: m.styles,
				})
			}
		}
	}
	return items
}

// Run starts the board and blocks until it exits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
