package models

import "time"

// RiskLevel is the coarse burnout tier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Elevated reports whether the tier warrants intervention (medium or high).
func (r RiskLevel) Elevated() bool {
	return r == RiskMedium || r == RiskHigh
}

// RiskReason identifies which burnout rule fired.
type RiskReason string

const (
	ReasonExcessiveHours      RiskReason = "excessive_hours"
	ReasonProductivityDecline RiskReason = "productivity_decline"
	ReasonLowHabitConsistency RiskReason = "low_habit_consistency"
	ReasonHighOverdueRate     RiskReason = "high_overdue_rate"
)

// RiskFactor is one fired burnout rule with its human-readable detail.
type RiskFactor struct {
	Reason      RiskReason `json:"reason"`
	Description string     `json:"description"`
}

// BurnoutRisk is the output of the burnout rule engine.
type BurnoutRisk struct {
	RiskLevel       RiskLevel    `json:"risk_level"`
	RiskScore       int          `json:"risk_score"`
	RiskFactors     []RiskFactor `json:"risk_factors"`
	Recommendations []string     `json:"recommendations"`
}

// HasReason reports whether the given rule contributed to the risk.
func (b BurnoutRisk) HasReason(reason RiskReason) bool {
	for _, f := range b.RiskFactors {
		if f.Reason == reason {
			return true
		}
	}
	return false
}

// ProcrastinationPattern is a task the anomaly model flagged.
type ProcrastinationPattern struct {
	TaskID               string   `json:"task_id"`
	TaskTitle            string   `json:"task_title"`
	ProcrastinationScore float64  `json:"procrastination_score"`
	Reasons              []string `json:"reasons"`
}

// Confidence is a coarse qualitative label attached to a forecast.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
)

// Prediction is one forecast day.
type Prediction struct {
	Date           string     `json:"date"`
	PredictedScore float64    `json:"predicted_score"`
	Confidence     Confidence `json:"confidence"`
}

// ProductivityBand groups hours with similar average productivity.
type ProductivityBand struct {
	Label    string  `json:"label"` // "peak", "steady" or "low"
	Hours    []int   `json:"hours"`
	Centroid float64 `json:"centroid"`
}

// TimeAnalysis is the output of the optimal time analyzer.
type TimeAnalysis struct {
	OptimalHours       []int              `json:"optimal_hours"`
	ProductivityByHour map[int]float64    `json:"productivity_by_hour"`
	Bands              []ProductivityBand `json:"productivity_bands,omitempty"`
}

// InsightsResult merges the output of every analytical component.
type InsightsResult struct {
	ProductivityScore       float64                  `json:"productivity_score"`
	ProcrastinationPatterns []ProcrastinationPattern `json:"procrastination_patterns"`
	OptimalWorkingHours     []int                    `json:"optimal_working_hours"`
	ProductivityByHour      map[int]float64          `json:"productivity_by_hour,omitempty"`
	ProductivityBands       []ProductivityBand       `json:"productivity_bands,omitempty"`
	BurnoutRisk             BurnoutRisk              `json:"burnout_risk"`
	WeeklyPredictions       []Prediction             `json:"weekly_predictions"`
	Recommendations         []string                 `json:"recommendations"`
	GeneratedAt             time.Time                `json:"generated_at"`
	Error                   string                   `json:"error,omitempty"`
}

// NewInsightsResult returns a result holding the neutral defaults every
// field falls back to when its component cannot contribute.
func NewInsightsResult(now time.Time) *InsightsResult {
	return &InsightsResult{
		ProcrastinationPatterns: []ProcrastinationPattern{},
		OptimalWorkingHours:     []int{},
		BurnoutRisk: BurnoutRisk{
			RiskLevel:       RiskLow,
			RiskFactors:     []RiskFactor{},
			Recommendations: []string{},
		},
		WeeklyPredictions: []Prediction{},
		Recommendations:   []string{},
		GeneratedAt:       now,
	}
}

// Failed reports whether any component failed while producing the result.
func (r *InsightsResult) Failed() bool {
	return r != nil && r.Error != ""
}
