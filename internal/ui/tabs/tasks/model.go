// Package tasks provides the tab listing tasks flagged as procrastination.
package tasks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/app"
	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/ui/components"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// sortOrder is how the flagged tasks are ordered in the table.
type sortOrder int

const (
	sortByScore sortOrder = iota
	sortByTitle
	sortInput
)

func (s sortOrder) String() string {
	switch s {
	case sortByScore:
		return "score"
	case sortByTitle:
		return "title"
	default:
		return "input"
	}
}

// keyMap defines the key bindings specific to the tasks tab.
type keyMap struct {
	Details key.Binding
	Filter  key.Binding
	Sort    key.Binding
	Escape  key.Binding
}

// defaultKeyMap returns the default key bindings for the tasks tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show reasons"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Model represents the tasks tab state.
type Model struct {
	state       *app.State
	table       table.Model
	filterInput textinput.Model
	spinner     components.LoadingSpinner
	keys        keyMap
	width       int
	height      int
	filtering   bool
	order       sortOrder
	detail      *models.ProcrastinationPattern
	visible     []models.ProcrastinationPattern
}

// New creates a new tasks model.
func New(state *app.State) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "Filter by title..."
	filterInput.CharLimit = 100
	filterInput.Width = 40

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle.Padding(0, 1)
	s.Cell = styles.TableCellStyle
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	return &Model{
		state:       state,
		table:       t,
		filterInput: filterInput,
		spinner:     components.NewSpinner("Analyzing tasks..."),
		keys:        defaultKeyMap(),
	}
}

func columns(width int) []table.Column {
	titleWidth := min(max(width-50, 20), 60)
	return []table.Column{
		{Title: "Task", Width: titleWidth},
		{Title: "ID", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Reasons", Width: 20},
	}
}

// Init initializes the tasks tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tasks tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	if m.detail != nil {
		return m.updateDetail(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Details):
			m.updateTableData()
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.visible) {
				p := m.visible[idx]
				m.detail = &p
			}

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Sort):
			m.order = (m.order + 1) % 3
			m.updateTableData()

		case key.Matches(msg, m.keys.Escape):
			if m.filterInput.Value() != "" {
				m.filterInput.SetValue("")
				m.updateTableData()
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.InsightsLoadedMsg, app.TabSwitchMsg:
		m.updateTableData()
	}

	return m, tea.Batch(cmds...)
}

// updateFilter feeds keys to the filter input until enter or esc.
func (m *Model) updateFilter(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.updateTableData()
			return m, nil
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			m.updateTableData()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.updateTableData()
	return m, cmd
}

// updateDetail closes the reasons panel.
func (m *Model) updateDetail(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", "q":
			m.detail = nil
		}
	}
	return m, nil
}

// patterns returns the flagged tasks after filtering and sorting.
func (m *Model) patterns() []models.ProcrastinationPattern {
	result := m.state.GetResult()
	if result == nil {
		return nil
	}

	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	out := make([]models.ProcrastinationPattern, 0, len(result.ProcrastinationPatterns))
	for _, p := range result.ProcrastinationPatterns {
		if query != "" && !strings.Contains(strings.ToLower(p.TaskTitle), query) {
			continue
		}
		out = append(out, p)
	}

	switch m.order {
	case sortByScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ProcrastinationScore > out[j].ProcrastinationScore
		})
	case sortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].TaskTitle) < strings.ToLower(out[j].TaskTitle)
		})
	}
	return out
}

// updateTableData updates the table with the current flagged tasks.
func (m *Model) updateTableData() {
	m.visible = m.patterns()
	rows := make([]table.Row, 0, len(m.visible))

	for _, p := range m.visible {
		reasons := "-"
		if len(p.Reasons) > 0 {
			reasons = fmt.Sprintf("%d: %s", len(p.Reasons), shortReason(p.Reasons[0]))
		}
		rows = append(rows, table.Row{
			p.TaskTitle,
			p.TaskID,
			fmt.Sprintf("%.3f", p.ProcrastinationScore),
			reasons,
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// shortReason abbreviates a reason for the table column.
func shortReason(reason string) string {
	reason = strings.TrimPrefix(reason, "Task ")
	if len(reason) > 16 {
		return reason[:15] + "…"
	}
	return reason
}

// SetSize sets the available size for the tasks tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 3))
	m.table.SetColumns(columns(width))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Details,
		m.keys.Filter,
		m.keys.Sort,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Details, m.keys.Escape},
		{m.keys.Filter, m.keys.Sort},
	}
}
