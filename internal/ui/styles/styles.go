// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the FocusFlow theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Forecast series on charts. Observed history uses Secondary.
	Forecast = lipgloss.Color("208") // Orange

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Layout styles.
var (
	// TitleStyle is used for main headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// SubTitleStyle is used for section headings.
	SubTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginBottom(1)

	// DocStyle provides consistent document margins.
	DocStyle = lipgloss.NewStyle().
			Margin(1, 2).
			Padding(0, 1)

	// CardStyle is the bordered container every tab lays its sections out in.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// ModalContentStyle frames the task detail panel.
	ModalContentStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(Primary).
				Padding(1, 2).
				Background(BgDark)

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Input styles for the task filter box.
var (
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	BlurredBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Subtle).
				Padding(0, 1)
)

// Help and footer styles.
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpSeparatorStyle = lipgloss.NewStyle().
				Foreground(Subtle)

	// HelpPanelStyle creates the help overlay panel.
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgDark)
)

// Table styles for the flagged task list.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Subtle)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Background(BgAccent).
				Foreground(TextPrimary).
				Bold(true)
)

// ProgressLabelStyle styles score bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Width(20)

// Status text styles.
var (
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// Score and risk styles. Scores of 70 and above are high, below 40 low.
var (
	ScoreHighStyle   = lipgloss.NewStyle().Foreground(Success)
	ScoreMediumStyle = lipgloss.NewStyle().Foreground(Warning)
	ScoreLowStyle    = lipgloss.NewStyle().Foreground(Error)

	RiskLowStyle     = lipgloss.NewStyle().Foreground(Success)
	RiskMediumStyle  = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	RiskHighStyle    = lipgloss.NewStyle().Foreground(Error).Bold(true)
	RiskUnknownStyle = lipgloss.NewStyle().Foreground(Subtle)
)

// GetScoreStyle returns the appropriate style for a 0-100 productivity score.
func GetScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return ScoreHighStyle
	case score >= 40:
		return ScoreMediumStyle
	default:
		return ScoreLowStyle
	}
}

// GetRiskStyle returns the badge style for a burnout risk level.
func GetRiskStyle(level string) lipgloss.Style {
	switch level {
	case "low":
		return RiskLowStyle
	case "medium":
		return RiskMediumStyle
	case "high":
		return RiskHighStyle
	default:
		return RiskUnknownStyle
	}
}

// GetBandStyle returns the style for a productivity band label.
func GetBandStyle(label string) lipgloss.Style {
	switch label {
	case "peak":
		return ScoreHighStyle
	case "steady":
		return ScoreMediumStyle
	case "low":
		return ScoreLowStyle
	default:
		return HelpStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
