// Package burnout assesses burnout risk with a fixed set of threshold rules.
package burnout

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// Thresholds holds the rule limits.
type Thresholds struct {
	MaxDailyHours      float64 // hours per day
	TrendWindow        int     // days of trend needed for the decline check
	MaxDecline         float64 // relative drop, 0-1
	MinHabitCompletion float64 // 0-1
	MaxOverdueRate     float64 // 0-1
}

// DefaultThresholds returns the standard rule limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxDailyHours:      10,
		TrendWindow:        7,
		MaxDecline:         0.3,
		MinHabitCompletion: 0.5,
		MaxOverdueRate:     0.3,
	}
}

// Points added to the risk score by each rule.
const (
	excessiveHoursPoints = 25
	declinePoints        = 30
	habitPoints          = 20
	overduePoints        = 25
)

// Tier boundaries on the risk score.
const (
	HighRiskScore   = 70
	MediumRiskScore = 40
)

var tierRecommendations = map[models.RiskLevel][]string{
	models.RiskHigh: {
		"Consider taking a day off to recharge",
		"Reduce working hours to under 8 hours per day",
		"Schedule regular breaks during work sessions",
		"Practice stress management techniques",
	},
	models.RiskMedium: {
		"Focus on maintaining work-life balance",
		"Ensure adequate sleep and nutrition",
		"Consider delegating non-essential tasks",
	},
}

// reasonRecommendations are appended after the tier advice, in this order.
var reasonRecommendations = []struct {
	reason models.RiskReason
	text   string
}{
	{models.ReasonExcessiveHours, "Set strict boundaries for work hours"},
	{models.ReasonProductivityDecline, "Review and optimize your work processes"},
	{models.ReasonLowHabitConsistency, "Focus on maintaining your daily routines"},
}

// Detector is a stateless rule engine.
type Detector struct {
	thresholds Thresholds
}

// New creates a detector with the default thresholds.
func New() *Detector {
	return &Detector{thresholds: DefaultThresholds()}
}

// NewWithThresholds creates a detector with custom thresholds.
func NewWithThresholds(t Thresholds) *Detector {
	return &Detector{thresholds: t}
}

// Assess evaluates the rules against the user's wellbeing signals.
func (d *Detector) Assess(s models.WellbeingSignals) models.BurnoutRisk {
	risk := models.BurnoutRisk{
		RiskFactors:     []models.RiskFactor{},
		Recommendations: []string{},
	}

	if s.AvgDailyWorkingHours > d.thresholds.MaxDailyHours {
		risk.RiskFactors = append(risk.RiskFactors, models.RiskFactor{
			Reason:      models.ReasonExcessiveHours,
			Description: fmt.Sprintf("Excessive working hours: %.1fh/day", s.AvgDailyWorkingHours),
		})
		risk.RiskScore += excessiveHoursPoints
	}

	if decline, ok := Decline(s.ProductivityTrend, d.thresholds.TrendWindow); ok && decline > d.thresholds.MaxDecline {
		risk.RiskFactors = append(risk.RiskFactors, models.RiskFactor{
			Reason:      models.ReasonProductivityDecline,
			Description: fmt.Sprintf("Productivity declined by %.1f%%", decline*100),
		})
		risk.RiskScore += declinePoints
	}

	if s.HabitCompletionRate < d.thresholds.MinHabitCompletion {
		risk.RiskFactors = append(risk.RiskFactors, models.RiskFactor{
			Reason:      models.ReasonLowHabitConsistency,
			Description: fmt.Sprintf("Low habit consistency: %.1f%%", s.HabitCompletionRate*100),
		})
		risk.RiskScore += habitPoints
	}

	if s.TaskOverdueRate > d.thresholds.MaxOverdueRate {
		risk.RiskFactors = append(risk.RiskFactors, models.RiskFactor{
			Reason:      models.ReasonHighOverdueRate,
			Description: fmt.Sprintf("High overdue task rate: %.1f%%", s.TaskOverdueRate*100),
		})
		risk.RiskScore += overduePoints
	}

	risk.RiskLevel = Level(risk.RiskScore)
	risk.Recommendations = recommendations(risk)

	return risk
}

// Level maps a risk score onto its tier.
func Level(score int) models.RiskLevel {
	switch {
	case score >= HighRiskScore:
		return models.RiskHigh
	case score >= MediumRiskScore:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Decline compares the mean of the last three trend values with the mean of
// the four before them. ok is false when the trend is shorter than window or
// the earlier mean is zero.
func Decline(trend []float64, window int) (decline float64, ok bool) {
	if len(trend) < max(window, 7) {
		return 0, false
	}

	recent := stat.Mean(trend[len(trend)-3:], nil)
	earlier := stat.Mean(trend[len(trend)-7:len(trend)-3], nil)
	if earlier == 0 {
		return 0, false
	}

	return (earlier - recent) / earlier, true
}

func recommendations(risk models.BurnoutRisk) []string {
	recs := append([]string{}, tierRecommendations[risk.RiskLevel]...)
	for _, r := range reasonRecommendations {
		if risk.HasReason(r.reason) {
			recs = append(recs, r.text)
		}
	}
	return recs
}
