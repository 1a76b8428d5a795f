// Package components provides reusable UI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// Gradient endpoints for score and risk bars.
const (
	lowScoreHex  = "#ff6b6b"
	highScoreHex = "#51cf66"
)

type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// ScoreBar renders a 0-100 score as a progress bar with label and value.
type ScoreBar struct {
	progress     progress.Model
	label        string
	score        float64
	isAnimating  bool
	targetScore  float64
	currentScore float64
}

// NewScoreBar creates a new score bar with gradient colors.
func NewScoreBar() ScoreBar {
	return NewScoreBarWithWidth(30)
}

// NewScoreBarWithWidth creates a score bar with a specific width.
func NewScoreBarWithWidth(width int) ScoreBar {
	p := progress.New(
		progress.WithScaledGradient(lowScoreHex, highScoreHex),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return ScoreBar{progress: p}
}

// Init initializes the progress bar model.
func (s ScoreBar) Init() tea.Cmd {
	return nil
}

// Update steps the fill animation toward the target score.
func (s ScoreBar) Update(msg tea.Msg) (ScoreBar, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(AnimationTickMsg); ok && s.isAnimating {
		switch {
		case s.currentScore < s.targetScore:
			s.currentScore = min(s.currentScore+animationStep(s.targetScore-s.currentScore), s.targetScore)
			cmds = append(cmds, animationTick())
		case s.currentScore > s.targetScore:
			s.currentScore = max(s.currentScore-animationStep(s.currentScore-s.targetScore), s.targetScore)
			cmds = append(cmds, animationTick())
		default:
			s.isAnimating = false
		}
	}

	model, cmd := s.progress.Update(msg)
	s.progress = model.(progress.Model)
	cmds = append(cmds, cmd)

	return s, tea.Batch(cmds...)
}

func animationStep(gap float64) float64 {
	return max(gap/10, 0.5)
}

// SetScore sets the target score and starts animating toward it.
func (s *ScoreBar) SetScore(score float64) tea.Cmd {
	s.score = score
	s.targetScore = score

	if !s.isAnimating {
		s.isAnimating = true
		return tea.Batch(s.progress.SetPercent(score/100), animationTick())
	}
	return s.progress.SetPercent(score / 100)
}

// Score returns the score last set.
func (s ScoreBar) Score() float64 {
	return s.score
}

// CurrentScore returns the animated value currently displayed.
func (s ScoreBar) CurrentScore() float64 {
	return s.currentScore
}

// SetLabel sets the bar label.
func (s *ScoreBar) SetLabel(label string) {
	s.label = label
}

// SetWidth sets the progress bar width.
func (s *ScoreBar) SetWidth(width int) {
	s.progress.Width = width
}

// View renders the bar with label and score.
func (s ScoreBar) View(score float64, label string, width int) string {
	s.progress.Width = max(width-30, 10)

	bar := s.progress.ViewAs(score / 100)
	scoreStr := styles.GetScoreStyle(score).Width(6).Align(lipgloss.Right).Render(fmt.Sprintf("%.1f", score))
	labelStr := styles.ProgressLabelStyle.Width(15).Render(label)

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", scoreStr)
}

// ViewCompact renders the bar and score without a label.
func (s ScoreBar) ViewCompact(score float64, width int) string {
	s.progress.Width = max(width-8, 5)

	bar := s.progress.ViewAs(score / 100)
	scoreStr := styles.GetScoreStyle(score).Render(fmt.Sprintf("%.0f", score))

	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", scoreStr)
}

// RenderGradientBar renders a bar filled to percent, red at the low end and
// green at the high end.
func RenderGradientBar(percent float64, width int) string {
	return renderGradient(percent, width, lowScoreHex, highScoreHex)
}

// RenderRiskBar renders a burnout risk score. Colors run green to red so a
// fuller bar reads as worse.
func RenderRiskBar(riskScore int, width int) string {
	return renderGradient(float64(riskScore), width, highScoreHex, lowScoreHex)
}

func renderGradient(percent float64, width int, fromHex, toHex string) string {
	if width < 1 {
		return ""
	}

	filled := min(max(int(float64(width)*percent/100), 0), width)

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor(fromHex, toHex, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
