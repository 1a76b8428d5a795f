// Package models defines data structures and domain types.
package models

// Priority is the urgency a user assigned to a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Weight maps a priority onto an ordinal scale (low=1 ... urgent=4).
// Unknown values weigh the same as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 2
	}
}

// TaskRecord is a single task from the user's recent history.
// Timestamps are ISO-8601 strings; an empty string means the event never happened.
type TaskRecord struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	CreatedAt         string   `json:"created_at,omitempty"`
	StartedAt         string   `json:"started_at,omitempty"`
	CompletedAt       string   `json:"completed_at,omitempty"`
	EstimatedMinutes  float64  `json:"estimated_minutes"`
	ActualMinutes     float64  `json:"actual_minutes"`
	Priority          Priority `json:"priority"`
	PostponementCount int      `json:"postponement_count"`

	// HasEstimate and HasActual report whether the snapshot carried the
	// minutes before defaults were filled in.
	HasEstimate bool `json:"-"`
	HasActual   bool `json:"-"`
}

// TimeLogEntry is one tracked work session.
type TimeLogEntry struct {
	StartTime         string  `json:"start_time,omitempty"`
	ProductivityScore float64 `json:"productivity_score"`
}

// HistoricalPoint is the productivity score recorded for one day.
type HistoricalPoint struct {
	Date              string  `json:"date"`
	ProductivityScore float64 `json:"productivity_score"`
}

// DailyCounters holds the aggregate counters for the current day.
type DailyCounters struct {
	TasksCompleted    int     `json:"tasks_completed"`
	TotalTasks        int     `json:"total_tasks"`
	EstimatedMinutes  float64 `json:"estimated_minutes"`
	ActualMinutes     float64 `json:"actual_minutes"`
	HabitsCompleted   int     `json:"habits_completed"`
	TotalHabits       int     `json:"total_habits"`
	FocusSessions     int     `json:"focus_sessions"`
	DistractionEvents int     `json:"distraction_events"`
}

// WellbeingSignals are the derived trend fields the burnout rules read.
type WellbeingSignals struct {
	AvgDailyWorkingHours float64   `json:"avg_daily_working_hours"`
	ProductivityTrend    []float64 `json:"productivity_trend"`
	HabitCompletionRate  float64   `json:"habit_completion_rate"` // 0-1
	TaskOverdueRate      float64   `json:"task_overdue_rate"`     // 0-1
}

// UserData is one user's snapshot, already resolved against neutral defaults.
// It is treated as read-only while insights are generated.
type UserData struct {
	DailyCounters
	WellbeingSignals

	RecentTasks    []TaskRecord      `json:"recent_tasks"`
	TimeLogs       []TimeLogEntry    `json:"time_logs"`
	HistoricalData []HistoricalPoint `json:"historical_data"`
}
