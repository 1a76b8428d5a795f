package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focusflow-insights/internal/ui/components"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// View renders the tasks tab.
func (m *Model) View() string {
	if m.state.GetResult() == nil && m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	m.updateTableData()

	sections := []string{m.renderTitle()}

	if m.filtering || m.filterInput.Value() != "" {
		sections = append(sections, m.renderFilter())
	}

	switch {
	case m.detail != nil:
		sections = append(sections, m.renderDetail())
	case len(m.visible) == 0:
		sections = append(sections, m.renderEmptyState())
	default:
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderTitle renders the tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Procrastination Patterns")

	total := 0
	if result := m.state.GetResult(); result != nil {
		total = len(result.ProcrastinationPatterns)
	}

	text := fmt.Sprintf("%d tasks flagged · sorted by %s", total, m.order)
	if len(m.visible) != total {
		text = fmt.Sprintf("%d of %d tasks flagged · sorted by %s", len(m.visible), total, m.order)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(text), "")
}

func (m *Model) renderFilter() string {
	style := styles.BlurredBorderStyle
	if m.filtering {
		style = styles.FocusedBorderStyle
	}
	return style.Width(max(m.width-10, 30)).Render(m.filterInput.View())
}

func (m *Model) renderTable() string {
	cardWidth := max(m.width-6, 60)
	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderEmptyState renders the state when no tasks are flagged.
func (m *Model) renderEmptyState() string {
	cardWidth := max(m.width-6, 40)

	var lines []string
	switch {
	case m.filterInput.Value() != "":
		lines = []string{
			styles.SubTitleStyle.Render("No Matching Tasks"),
			"",
			styles.HelpStyle.Render(fmt.Sprintf("Nothing flagged matches %q.", m.filterInput.Value())),
		}
	case m.state.GetResult() == nil:
		lines = []string{
			styles.SubTitleStyle.Render("No Insights Yet"),
			"",
			styles.HelpStyle.Render("Flagged tasks appear once a snapshot has been analyzed."),
		}
	default:
		lines = []string{
			styles.SubTitleStyle.Render("No Procrastination Detected"),
			"",
			styles.HelpStyle.Render("Either no task stands out or there are fewer than 50 tasks to learn from."),
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, append(append([]string{""}, lines...), "")...)
	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderDetail renders the reasons panel for the selected task.
func (m *Model) renderDetail() string {
	cardWidth := min(max(m.width-10, 50), 90)
	p := m.detail

	rows := []string{
		styles.CardTitleStyle.Render(p.TaskTitle),
		styles.HelpStyle.Render(fmt.Sprintf("Task %s · anomaly score %.3f", p.TaskID, p.ProcrastinationScore)),
		"",
	}

	if len(p.Reasons) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Unusual compared to your other tasks, but no single rule explains it."))
	}
	for _, r := range p.Reasons {
		rows = append(rows, fmt.Sprintf("%s %s", styles.WarningTextStyle.Render("▲"), r))
	}

	rows = append(rows, "", styles.HelpStyle.Render("Esc/Enter: close"))

	return styles.CenterHorizontal(
		styles.ModalContentStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		m.width,
	)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	switch {
	case m.filtering:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " apply",
			styles.HelpKeyStyle.Render("Esc") + " clear",
		}
	case m.detail != nil:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Esc") + " close",
		}
	default:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " reasons",
			styles.HelpKeyStyle.Render("/") + " filter",
			styles.HelpKeyStyle.Render("s") + " sort",
		}
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(strings.Join(shortcuts, styles.HelpSeparatorStyle.Render(" | ")))
}
