// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/focusflow-insights/internal/ui/styles"
)

// ChartColors defines colors for chart elements.
var (
	ChartHistoryColor  = lipgloss.Color("#7D56F4")
	ChartForecastColor = lipgloss.Color("#ff8c00")
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	return graph
}

// RenderForecastChart plots observed scores followed by forecast scores.
// The forecast series starts at the last observed point so the lines join.
func RenderForecastChart(history, forecast []float64, width, height int, caption string) string {
	if len(history) == 0 && len(forecast) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if len(forecast) == 0 {
		return RenderLineChart(history, width, height, caption)
	}
	if len(history) == 0 {
		return RenderLineChart(forecast, width, height, caption)
	}

	width = max(width, 20)
	height = max(height, 3)

	total := len(history) + len(forecast)
	observed := make([]float64, total)
	predicted := make([]float64, total)
	for i := range total {
		observed[i] = math.NaN()
		predicted[i] = math.NaN()
	}
	copy(observed, history)
	predicted[len(history)-1] = history[len(history)-1]
	copy(predicted[len(history):], forecast)

	return asciigraph.PlotMany([][]float64{observed, predicted},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(
			asciigraph.Blue,
			asciigraph.DarkOrange,
		),
	)
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderHourlyHeatmap renders one cell per hour of the day. Hours with no
// data render as a blank cell, the rest are shaded and colored by score.
func RenderHourlyHeatmap(byHour map[int]float64) string {
	var result strings.Builder
	result.WriteString("00 ")

	for hour := range 24 {
		score, ok := byHour[hour]
		if !ok {
			result.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("·"))
		} else {
			intensity := min(max(int(score/100*float64(len(HeatmapBlocks)-1)+0.5), 0), len(HeatmapBlocks)-1)
			result.WriteString(styles.GetScoreStyle(score).Render(string(HeatmapBlocks[intensity])))
		}

		// Add gap at noon for readability
		if hour == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Find max value
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		val := values[idx]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		if normalized >= len(sparkChars) {
			normalized = len(sparkChars) - 1
		}
		if normalized < 0 {
			normalized = 0
		}
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderColoredSparkline creates a sparkline of 0-100 scores colored by score.
func RenderColoredSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		val := values[idx]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		if normalized >= len(sparkChars) {
			normalized = len(sparkChars) - 1
		}
		if normalized < 0 {
			normalized = 0
		}

		result.WriteString(styles.GetScoreStyle(val).Render(string(sparkChars[normalized])))
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
