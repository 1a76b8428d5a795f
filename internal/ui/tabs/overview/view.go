package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/ui/components"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	result := m.state.GetResult()

	if result == nil {
		if m.state.IsSnapshotMissing() {
			return m.renderMissingSnapshot()
		}
		if m.state.IsInitialLoading() || m.state.AnyLoading() {
			return m.renderLoading()
		}
		return m.renderEmpty()
	}

	cardWidth := max(m.width-6, 40)

	sections := []string{
		m.renderTitle(result),
		m.renderScoreCard(result, cardWidth),
		m.renderBurnoutCard(result.BurnoutRisk, cardWidth),
		m.renderHoursCard(result, cardWidth),
		m.renderRecommendationsCard(result.Recommendations, cardWidth),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderMissingSnapshot() string {
	path := m.state.SnapshotPath
	if path == "" {
		path = "SNAPSHOT_PATH"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("FocusFlow Insights"),
		"",
		styles.WarningTextStyle.Render("No snapshot found"),
		styles.HelpStyle.Render("Waiting for "+path),
		"",
		styles.InfoTextStyle.Render("  ╰─▶ Export your tasks, habits and time logs there to see insights"),
	)
	return styles.DocStyle.Width(m.width).Height(m.height).Render(content)
}

func (m *Model) renderEmpty() string {
	lines := []string{
		styles.TitleStyle.Render("FocusFlow Insights"),
		"",
		styles.HelpStyle.Render("No insights generated yet."),
		styles.HelpStyle.Render("Press r to analyze the current snapshot."),
	}
	if err := m.state.GetResultError(); err != nil {
		lines = append(lines, "", styles.ErrorTextStyle.Render("Last attempt failed: "+err.Error()))
	}
	return styles.DocStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// renderTitle renders the tab title.
func (m *Model) renderTitle(result *models.InsightsResult) string {
	title := styles.TitleStyle.Render("FocusFlow Insights")

	subtitle := "Generated " + result.GeneratedAt.Local().Format("Jan 2 15:04")
	if runID := m.state.GetRunID(); len(runID) >= 8 {
		subtitle += " · run " + runID[:8]
	}

	lines := []string{title, styles.HelpStyle.Render(subtitle)}
	if result.Failed() {
		lines = append(lines, styles.WarningTextStyle.Render("⚠ Some insights could not be computed; showing defaults for those sections"))
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cardHeader(icon, title string) string {
	iconStr := lipgloss.NewStyle().Foreground(styles.Primary).Render(icon)
	return fmt.Sprintf("%s %s", iconStr, styles.CardTitleStyle.Render(title))
}

func (m *Model) renderScoreCard(result *models.InsightsResult, width int) string {
	score := m.displayScore(result.ProductivityScore)

	rows := []string{
		cardHeader("◈", "Productivity Score"),
		"",
		"  " + m.scoreBar.ViewCompact(score, width-8),
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderBurnoutCard(risk models.BurnoutRisk, width int) string {
	level := string(risk.RiskLevel)
	badge := styles.GetRiskStyle(level).Render(strings.ToUpper(level))

	barWidth := max(width-20, 10)
	rows := []string{
		cardHeader("♨", "Burnout Risk"),
		"",
		fmt.Sprintf("  %s %s %s",
			components.RenderRiskBar(risk.RiskScore, barWidth),
			styles.GetRiskStyle(level).Render(fmt.Sprintf("%3d", risk.RiskScore)),
			badge,
		),
	}

	if len(risk.RiskFactors) == 0 {
		rows = append(rows, "", styles.SuccessTextStyle.Render("  ● No risk factors detected"))
	} else {
		rows = append(rows, "")
		for _, f := range risk.RiskFactors {
			rows = append(rows, fmt.Sprintf("  %s %s", styles.WarningTextStyle.Render("▲"), f.Description))
		}
	}

	if len(risk.Recommendations) > 0 {
		rows = append(rows, "")
		for _, r := range risk.Recommendations {
			rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ "+r))
		}
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderHoursCard(result *models.InsightsResult, width int) string {
	rows := []string{cardHeader("◷", "Optimal Working Hours"), ""}

	if len(result.OptimalWorkingHours) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  Not enough time logs to find your best hours"))
	} else {
		hours := make([]string, len(result.OptimalWorkingHours))
		for i, h := range result.OptimalWorkingHours {
			hours[i] = formatHour(h)
		}
		rows = append(rows, "  "+styles.SuccessTextStyle.Render(strings.Join(hours, "  ")))
	}

	if len(result.ProductivityByHour) > 0 {
		rows = append(rows, "", "  "+components.RenderHourlyHeatmap(result.ProductivityByHour))
	}

	for _, band := range result.ProductivityBands {
		hours := make([]string, len(band.Hours))
		for i, h := range band.Hours {
			hours[i] = fmt.Sprintf("%02d", h)
		}
		label := styles.GetBandStyle(band.Label).Width(8).Render(band.Label)
		rows = append(rows, fmt.Sprintf("  %s %s %s",
			label,
			styles.HelpStyle.Render(fmt.Sprintf("avg %5.1f", band.Centroid)),
			strings.Join(hours, " "),
		))
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderRecommendationsCard(recs []string, width int) string {
	rows := []string{cardHeader("✦", "Recommendations"), ""}

	if len(recs) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  Nothing to suggest right now"))
	}
	for i, r := range recs {
		rows = append(rows, fmt.Sprintf("  %s %s", styles.HelpKeyStyle.Render(fmt.Sprintf("%d.", i+1)), r))
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
