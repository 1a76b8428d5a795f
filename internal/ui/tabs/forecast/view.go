package forecast

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services/trend"
	"github.com/j-veylop/focusflow-insights/internal/ui/components"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// steadyDelta is the largest average change still reported as steady.
const steadyDelta = 2.0

// View renders the forecast tab.
func (m *Model) View() string {
	if m.loading && m.history == nil {
		return m.renderLoading()
	}
	if m.errorMsg != "" {
		return m.renderError()
	}

	predictions := m.predictions()
	if len(m.history) == 0 && len(predictions) == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(),
		m.renderChart(predictions),
		m.renderPredictions(predictions),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) predictions() []models.Prediction {
	if result := m.state.GetResult(); result != nil {
		return result.WeeklyPredictions
	}
	return nil
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading history data..."))
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Forecast"),
		"",
		styles.HelpStyle.Render("No productivity history available yet."),
		styles.HelpStyle.Render("Daily scores appear here as snapshots are analyzed."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Productivity Forecast")

	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", m.window.String()))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	var subtitle string
	if len(m.history) > 0 {
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("History: %s → %s (%d days)",
			formatDay(m.history[0].Date),
			formatDay(m.history[len(m.history)-1].Date),
			len(m.history),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderChart(predictions []models.Prediction) string {
	cardWidth := max(m.width-6, 40)

	rows := []string{
		fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(styles.Primary).Render("📈"),
			styles.CardTitleStyle.Render("Daily Productivity"),
		),
		"",
	}

	history := historyScores(m.history)
	forecast := predictionScores(predictions)

	chartWidth := max(cardWidth-12, 30)
	chart := components.RenderForecastChart(history, forecast, chartWidth, 10,
		fmt.Sprintf("%d observed, %d forecast", len(history), len(forecast)))
	for line := range strings.SplitSeq(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "",
		"  "+components.RenderLegend([]components.LegendItem{
			{Label: "Observed", Color: components.ChartHistoryColor},
			{Label: "Forecast", Color: components.ChartForecastColor},
		}),
	)

	if len(history) > 0 {
		rows = append(rows, "  "+components.RenderColoredSparkline(history, chartWidth))
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderPredictions(predictions []models.Prediction) string {
	cardWidth := max(m.width-6, 40)

	rows := []string{
		fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(styles.Forecast).Render("◆"),
			styles.CardTitleStyle.Render("Next 7 Days"),
		),
		"",
	}

	if len(predictions) == 0 {
		rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("  At least %d days of history are needed for a forecast", trend.MinHistory)))
		return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	barWidth := max(cardWidth-50, 10)
	for _, p := range predictions {
		rows = append(rows, fmt.Sprintf("  %s %s %s %s",
			lipgloss.NewStyle().Width(12).Render(formatDay(p.Date)),
			components.RenderGradientBar(p.PredictedScore, barWidth),
			styles.GetScoreStyle(p.PredictedScore).Width(6).Align(lipgloss.Right).Render(fmt.Sprintf("%.1f", p.PredictedScore)),
			styles.HelpStyle.Render(string(p.Confidence)+" confidence"),
		))
	}

	rows = append(rows, "", "  "+outlook(historyScores(m.history), predictionScores(predictions)))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// outlook compares the forecast average with the last week of history.
func outlook(history, forecast []float64) string {
	if len(history) == 0 || len(forecast) == 0 {
		return styles.HelpStyle.Render("Outlook: not enough data")
	}

	recent := history[max(len(history)-7, 0):]
	delta := mean(forecast) - mean(recent)

	switch {
	case math.Abs(delta) < steadyDelta:
		return styles.InfoTextStyle.Render(fmt.Sprintf("Outlook: steady (%+.1f)", delta))
	case delta > 0:
		return styles.SuccessTextStyle.Render(fmt.Sprintf("Outlook: improving (%+.1f)", delta))
	default:
		return styles.WarningTextStyle.Render(fmt.Sprintf("Outlook: declining (%+.1f)", delta))
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func historyScores(points []models.HistoricalPoint) []float64 {
	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.ProductivityScore
	}
	return scores
}

func predictionScores(predictions []models.Prediction) []float64 {
	scores := make([]float64, len(predictions))
	for i, p := range predictions {
		scores[i] = p.PredictedScore
	}
	return scores
}

// formatDay renders a stored date as "Mon Jan 2", or as-is when unparseable.
func formatDay(date string) string {
	t, err := models.ParseTimestamp(date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 2")
}
