package info

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focusflow-insights/internal/ui/components"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
	"github.com/j-veylop/focusflow-insights/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}
	if m.detail != nil {
		sections = append(sections, m.renderRunDetail())
	}
	sections = append(sections,
		m.renderConfigCard(),
		m.renderStatusCard(),
		m.renderRunsCard(),
		m.renderAboutCard(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, run history and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		schedule := m.config.RefreshSchedule
		if schedule == "" {
			schedule = "disabled"
		}
		rows = append(rows,
			m.renderConfigRow("Snapshot", m.config.SnapshotPath),
			m.renderConfigRow("Database", m.config.DatabasePath),
			m.renderConfigRow("Log File", m.config.LogPath),
			m.renderConfigRow("Log Level", m.config.LogLevel),
			m.renderConfigRow("Schedule", schedule),
			m.renderConfigRow("Watch Debounce", m.config.WatchDebounce.String()),
			m.renderConfigRow("Notifications", onOff(m.config.NotificationsEnabled)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderStatusCard renders snapshot and scheduler status.
func (m *Model) renderStatusCard() string {
	rows := []string{styles.CardTitleStyle.Render("Status"), ""}

	snapshot := styles.SuccessTextStyle.Render("loaded")
	if m.state.IsSnapshotMissing() {
		snapshot = styles.WarningTextStyle.Render("missing")
	}
	rows = append(rows, m.renderConfigRow("Snapshot", snapshot))

	if stats := m.state.GetStats(); stats != nil {
		rows = append(rows,
			m.renderConfigRow("Stored Runs", strconv.Itoa(stats.RunCount)),
			m.renderConfigRow("History Days", strconv.Itoa(stats.HistoryDays)),
			m.renderConfigRow("Last Run", formatTime(stats.LastRun)),
		)
	}

	next := time.Time{}
	if m.source != nil {
		next = m.source.NextScheduledRun()
	}
	rows = append(rows, m.renderConfigRow("Next Scheduled", formatTime(next)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRunsCard lists the most recent insight runs with a score trend.
func (m *Model) renderRunsCard() string {
	rows := []string{styles.CardTitleStyle.Render("Recent Runs"), ""}

	runs := m.state.GetRuns()
	if len(runs) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No runs recorded yet"))
	} else {
		// runs arrive newest first
		scores := make([]float64, len(runs))
		for i, run := range runs {
			scores[len(runs)-1-i] = run.ProductivityScore
		}
		rows = append(rows,
			m.renderConfigRow("Score Trend", components.RenderSparkline(scores, len(scores))),
			"",
		)
	}

	selected := min(m.selected, len(runs)-1)
	for i, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		status := styles.SuccessTextStyle.Render("ok")
		if run.Error != "" {
			status = styles.ErrorTextStyle.Render("partial")
		}
		cursor := "  "
		if i == selected {
			cursor = styles.HelpKeyStyle.Render("▸ ")
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s  %s  %s  %s  %s",
			cursor,
			styles.HelpStyle.Render(id),
			run.GeneratedAt.Local().Format("Jan 02 15:04"),
			styles.GetScoreStyle(run.ProductivityScore).Width(5).Align(lipgloss.Right).Render(fmt.Sprintf("%.1f", run.ProductivityScore)),
			styles.GetRiskStyle(string(run.BurnoutLevel)).Width(7).Render(string(run.BurnoutLevel)),
			lipgloss.NewStyle().Width(9).Render(fmt.Sprintf("%d flagged", run.FlagCount)),
			status,
		))
	}

	if m.detailErr != nil {
		rows = append(rows, "", styles.ErrorTextStyle.Render("Could not open run: "+m.detailErr.Error()))
	}

	rows = append(rows, "", styles.HelpStyle.Render("Press '[' and ']' to select, Enter to open, 'R' to reload"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRunDetail shows the stored result of the opened run.
func (m *Model) renderRunDetail() string {
	result := m.detail.Result
	rows := []string{
		styles.CardTitleStyle.Render("Run " + m.detail.ID),
		m.renderConfigRow("Generated", formatTime(result.GeneratedAt)),
		m.renderConfigRow("Score", styles.GetScoreStyle(result.ProductivityScore).Render(fmt.Sprintf("%.1f", result.ProductivityScore))),
		m.renderConfigRow("Burnout", styles.GetRiskStyle(string(result.BurnoutRisk.RiskLevel)).Render(
			fmt.Sprintf("%s (%d)", result.BurnoutRisk.RiskLevel, result.BurnoutRisk.RiskScore))),
		m.renderConfigRow("Flagged Tasks", strconv.Itoa(len(result.ProcrastinationPatterns))),
	}

	if len(result.OptimalWorkingHours) > 0 {
		hours := make([]string, len(result.OptimalWorkingHours))
		for i, h := range result.OptimalWorkingHours {
			hours[i] = fmt.Sprintf("%02d:00", h)
		}
		rows = append(rows, m.renderConfigRow("Best Hours", strings.Join(hours, ", ")))
	}
	if result.Error != "" {
		rows = append(rows, m.renderConfigRow("Error", styles.ErrorTextStyle.Render(result.Error)))
	}

	if len(result.Recommendations) > 0 {
		rows = append(rows, "", styles.SubTitleStyle.Render("Recommendations"))
		for _, r := range result.Recommendations {
			rows = append(rows, "• "+r)
		}
	}

	rows = append(rows, "", styles.HelpStyle.Render("Esc/Enter: close"))

	return styles.ModalContentStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About FocusFlow Insights"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
