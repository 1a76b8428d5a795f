// Package forecast provides the tab plotting daily productivity history
// against the weekly forecast.
package forecast

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/app"
	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services"
)

// window is how many trailing days of history are plotted.
type window int

const (
	window14Days window = 14
	window30Days window = 30
	window90Days window = 90
)

// Next cycles through the available windows.
func (w window) Next() window {
	switch w {
	case window14Days:
		return window30Days
	case window30Days:
		return window90Days
	default:
		return window14Days
	}
}

func (w window) String() string {
	return fmt.Sprintf("%d days", int(w))
}

// keyMap defines the key bindings specific to the forecast tab.
type keyMap struct {
	ToggleWindow key.Binding
	Reload       key.Binding
	Up           key.Binding
	Down         key.Binding
}

// defaultKeyMap returns the default key bindings for the forecast tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleWindow: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle history window"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// historyLoadedMsg is sent when history data is loaded.
type historyLoadedMsg struct {
	points []models.HistoricalPoint
}

// historyErrorMsg is sent when there's an error loading history.
type historyErrorMsg struct {
	err string
}

// Model represents the forecast tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	window      window
	history     []models.HistoricalPoint
	loading     bool
	lastRefresh time.Time
	errorMsg    string
}

// New creates a new forecast model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		window:   window30Days,
	}
}

// Init initializes the forecast tab.
func (m *Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

// loadHistoryCmd creates a command to load the plotted history.
func (m *Model) loadHistoryCmd() tea.Cmd {
	svc := m.services
	limit := int(m.window)
	return func() tea.Msg {
		if svc == nil {
			return historyErrorMsg{err: "Services not initialized"}
		}
		points, err := svc.History(limit)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		return historyLoadedMsg{points: points}
	}
}

// Update handles messages for the forecast tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.history = msg.points
		m.loading = false
		m.lastRefresh = time.Now()
		m.errorMsg = ""

	case historyErrorMsg:
		m.loading = false
		m.errorMsg = msg.err
		cmds = append(cmds, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  fmt.Sprintf("History error: %s", msg.err),
				Duration: app.LongNotificationDuration,
			}
		})

	case app.InsightsLoadedMsg:
		// a new run may have stored today's score
		cmds = append(cmds, m.reload())

	case app.TabSwitchMsg:
		if msg.Tab == app.TabForecast {
			cmds = append(cmds, m.reload())
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) reload() tea.Cmd {
	if m.loading || m.services == nil {
		return nil
	}
	m.loading = true
	return m.loadHistoryCmd()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd
	switch {
	case key.Matches(msg, m.keys.ToggleWindow):
		m.window = m.window.Next()
		m.loading = true
		cmds = append(cmds, m.loadHistoryCmd())

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		cmds = append(cmds, m.loadHistoryCmd())

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the forecast tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleWindow,
		m.keys.Reload,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleWindow, m.keys.Reload},
		{m.keys.Up, m.keys.Down},
	}
}
