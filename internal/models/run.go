package models

import "time"

// InsightRun is one stored Generate call.
type InsightRun struct {
	ID                string
	GeneratedAt       time.Time
	ProductivityScore float64
	BurnoutLevel      RiskLevel
	BurnoutScore      int
	FlagCount         int
	Error             string
	Payload           []byte // JSON-encoded InsightsResult
}

// DailyScore is the latest productivity score recorded for a day.
type DailyScore struct {
	Day       string // 2006-01-02
	Score     float64
	UpdatedAt time.Time
}

// DayLayout is the layout of DailyScore.Day.
const DayLayout = "2006-01-02"

// NewInsightRun summarises a result for storage.
func NewInsightRun(id string, r *InsightsResult, payload []byte) InsightRun {
	return InsightRun{
		ID:                id,
		GeneratedAt:       r.GeneratedAt,
		ProductivityScore: r.ProductivityScore,
		BurnoutLevel:      r.BurnoutRisk.RiskLevel,
		BurnoutScore:      r.BurnoutRisk.RiskScore,
		FlagCount:         len(r.ProcrastinationPatterns),
		Error:             r.Error,
		Payload:           payload,
	}
}
