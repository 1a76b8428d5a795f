// Package info provides the info tab: configuration, build details and the
// recent insight runs.
package info

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/app"
	"github.com/j-veylop/focusflow-insights/internal/config"
	"github.com/j-veylop/focusflow-insights/internal/models"
)

// RunSource is the part of the services manager the info tab reads from.
type RunSource interface {
	NextScheduledRun() time.Time
	Run(id string) (*models.InsightsResult, error)
}

// runLoadedMsg carries a stored run decoded for the detail panel.
type runLoadedMsg struct {
	ID     string
	Result *models.InsightsResult
	Err    error
}

// keyMap defines the key bindings specific to the info tab.
type keyMap struct {
	Reload key.Binding
	Prev   key.Binding
	Next   key.Binding
	Open   key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// defaultKeyMap returns the default key bindings for the info tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload runs"),
		),
		Prev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "newer run"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "older run"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open run"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	source   RunSource
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	selected  int
	detail    *runLoadedMsg
	detailErr error
}

// New creates a new info model. source may be nil, in which case runs
// cannot be opened and no schedule is shown.
func New(state *app.State, cfg *config.Config, source RunSource) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		source:   source,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.detail != nil && key.Matches(msg, m.keys.Close, m.keys.Open):
			m.detail = nil
		case key.Matches(msg, m.keys.Close):
			m.detailErr = nil
		case key.Matches(msg, m.keys.Reload):
			return m, func() tea.Msg {
				return app.RefreshMsg{Resource: "runs"}
			}
		case key.Matches(msg, m.keys.Prev):
			m.selected = max(m.selected-1, 0)
		case key.Matches(msg, m.keys.Next):
			m.selected = min(m.selected+1, max(len(m.state.GetRuns())-1, 0))
		case key.Matches(msg, m.keys.Open):
			return m, m.openSelected()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case runLoadedMsg:
		if msg.Err != nil {
			m.detailErr = msg.Err
			m.detail = nil
		} else {
			m.detailErr = nil
			m.detail = &msg
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabInfo {
			cmds = append(cmds, func() tea.Msg {
				return app.RefreshMsg{Resource: "stats"}
			})
		}
	}

	return m, tea.Batch(cmds...)
}

// openSelected loads the selected run from the store.
func (m *Model) openSelected() tea.Cmd {
	runs := m.state.GetRuns()
	if m.source == nil || len(runs) == 0 {
		return nil
	}
	id := runs[min(m.selected, len(runs)-1)].ID
	source := m.source
	return func() tea.Msg {
		result, err := source.Run(id)
		return runLoadedMsg{ID: id, Result: result, Err: err}
	}
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.detail != nil {
		return []key.Binding{m.keys.Close}
	}
	return []key.Binding{
		m.keys.Prev,
		m.keys.Next,
		m.keys.Open,
		m.keys.Reload,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Prev, m.keys.Next, m.keys.Open, m.keys.Close},
		{m.keys.Reload, m.keys.Up, m.keys.Down},
	}
}
