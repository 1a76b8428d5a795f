// Package snapshot decodes user snapshot files into models.UserData.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// Format is the encoding of a snapshot file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Record is the on-disk form of a snapshot. Pointer fields are optional.
type Record struct {
	TasksCompleted    *int     `json:"tasks_completed" yaml:"tasks_completed"`
	TotalTasks        *int     `json:"total_tasks" yaml:"total_tasks"`
	EstimatedMinutes  *float64 `json:"estimated_minutes" yaml:"estimated_minutes"`
	ActualMinutes     *float64 `json:"actual_minutes" yaml:"actual_minutes"`
	HabitsCompleted   *int     `json:"habits_completed" yaml:"habits_completed"`
	TotalHabits       *int     `json:"total_habits" yaml:"total_habits"`
	FocusSessions     *int     `json:"focus_sessions" yaml:"focus_sessions"`
	DistractionEvents *int     `json:"distraction_events" yaml:"distraction_events"`

	AvgDailyWorkingHours *float64  `json:"avg_daily_working_hours" yaml:"avg_daily_working_hours"`
	ProductivityTrend    []float64 `json:"productivity_trend" yaml:"productivity_trend"`
	HabitCompletionRate  *float64  `json:"habit_completion_rate" yaml:"habit_completion_rate"`
	TaskOverdueRate      *float64  `json:"task_overdue_rate" yaml:"task_overdue_rate"`

	RecentTasks    []TaskRecord      `json:"recent_tasks" yaml:"recent_tasks"`
	TimeLogs       []TimeLogRecord   `json:"time_logs" yaml:"time_logs"`
	HistoricalData []HistoricalEntry `json:"historical_data" yaml:"historical_data"`
}

// TaskRecord is the on-disk form of a task.
type TaskRecord struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	CreatedAt         string   `json:"created_at" yaml:"created_at"`
	StartedAt         string   `json:"started_at" yaml:"started_at"`
	CompletedAt       string   `json:"completed_at" yaml:"completed_at"`
	EstimatedMinutes  *float64 `json:"estimated_minutes" yaml:"estimated_minutes"`
	ActualMinutes     *float64 `json:"actual_minutes" yaml:"actual_minutes"`
	Priority          *string  `json:"priority" yaml:"priority"`
	PostponementCount *int     `json:"postponement_count" yaml:"postponement_count"`
}

// TimeLogRecord is the on-disk form of a work session.
type TimeLogRecord struct {
	StartTime         string   `json:"start_time" yaml:"start_time"`
	ProductivityScore *float64 `json:"productivity_score" yaml:"productivity_score"`
}

// HistoricalEntry is the on-disk form of one day of history.
type HistoricalEntry struct {
	Date              string   `json:"date" yaml:"date"`
	ProductivityScore *float64 `json:"productivity_score" yaml:"productivity_score"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a snapshot and resolves it against the default values.
func Decode(data []byte, format Format) (models.UserData, error) {
	var rec Record

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return DefaultValues().Resolve(&rec), nil
	}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return models.UserData{}, fmt.Errorf("failed to parse yaml snapshot: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rec); err != nil {
			return models.UserData{}, fmt.Errorf("failed to parse json snapshot: %w", err)
		}
	}

	return DefaultValues().Resolve(&rec), nil
}

// Load reads and decodes the snapshot at path.
func Load(path string) (models.UserData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UserData{}, err
	}
	return Decode(data, FormatFromPath(path))
}
