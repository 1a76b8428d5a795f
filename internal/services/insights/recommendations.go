package insights

import (
	"fmt"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// MaxRecommendations caps the merged recommendation list.
const MaxRecommendations = 5

const (
	lowScoreThreshold  = 50
	highScoreThreshold = 80
)

var lowScoreAdvice = []string{
	"Focus on completing high-priority tasks first",
	"Break down large tasks into smaller, manageable chunks",
}

const highScoreAdvice = "Great job! Consider taking on more challenging tasks"

var copingStrategies = []string{
	"Use the 2-minute rule for tasks you're avoiding",
	"Set specific deadlines for each task",
	"Try timeboxing to limit task duration",
	"Start your day with the task you most want to postpone",
}

// Recommend derives the cross-component advice from a populated result.
// Sources are appended in a fixed order and the list is cut at
// MaxRecommendations.
func Recommend(r *models.InsightsResult) []string {
	recs := []string{}

	switch {
	case r.ProductivityScore < lowScoreThreshold:
		recs = append(recs, lowScoreAdvice...)
	case r.ProductivityScore > highScoreThreshold:
		recs = append(recs, highScoreAdvice)
	}

	if len(r.ProcrastinationPatterns) > 0 {
		recs = append(recs, copingStrategies...)
	}

	if r.BurnoutRisk.RiskLevel.Elevated() {
		recs = append(recs, r.BurnoutRisk.Recommendations...)
	}

	if len(r.OptimalWorkingHours) > 0 {
		recs = append(recs, fmt.Sprintf("Schedule your most important tasks around %d:00", r.OptimalWorkingHours[0]))
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
