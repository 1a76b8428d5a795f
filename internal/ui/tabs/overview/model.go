// Package overview provides the main insights tab: score, burnout risk,
// optimal hours and recommendations.
package overview

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/app"
	"github.com/j-veylop/focusflow-insights/internal/ui/components"
)

type animationTickMsg time.Time

func animationTickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*40, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// keyMap defines the key bindings specific to the overview tab.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// defaultKeyMap returns the default key bindings for the overview tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// Model represents the overview tab state.
type Model struct {
	state          *app.State
	spinner        components.LoadingSpinner
	keys           keyMap
	viewport       viewport.Model
	scoreBar       components.ScoreBar
	width          int
	height         int
	animationFrame int
}

// New creates a new overview model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Analyzing snapshot..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		scoreBar: components.NewScoreBar(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), animationTickCmd())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case animationTickMsg:
		m.animationFrame++
		if m.state.IsInitialLoading() || m.state.AnyLoading() {
			cmds = append(cmds, animationTickCmd())
		}

	case app.StartLoadingMsg:
		cmds = append(cmds, animationTickCmd())

	case app.InsightsLoadedMsg, app.TabSwitchMsg:
		cmds = append(cmds, m.syncScore())

	case components.AnimationTickMsg:
		var cmd tea.Cmd
		m.scoreBar, cmd = m.scoreBar.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncScore points the score bar animation at the latest result.
func (m *Model) syncScore() tea.Cmd {
	result := m.state.GetResult()
	if result == nil || result.ProductivityScore == m.scoreBar.Score() {
		return nil
	}
	return m.scoreBar.SetScore(result.ProductivityScore)
}

// displayScore is the animated score while the bar catches up with the
// current result, and the result itself otherwise.
func (m *Model) displayScore(actual float64) float64 {
	if m.scoreBar.Score() == actual {
		return m.scoreBar.CurrentScore()
	}
	return actual
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// SetSize sets the available size for the overview.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Top, m.keys.Bottom},
	}
}
