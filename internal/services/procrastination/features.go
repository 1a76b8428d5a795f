package procrastination

import (
	"fmt"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// defaultCompletionHour stands in for tasks that were never completed.
const defaultCompletionHour = 12

// Features is the numeric description of one task.
type Features struct {
	DelayHours     float64 // creation to start
	TimeRatio      float64 // actual / estimated
	Postponements  float64
	CompletionHour float64
	PriorityWeight float64
}

// Vector returns the features in model column order.
func (f Features) Vector() []float64 {
	return []float64{f.DelayHours, f.TimeRatio, f.Postponements, f.CompletionHour, f.PriorityWeight}
}

// ExtractFeatures computes the feature vector of a task. It fails only on
// a timestamp that is present but cannot be parsed.
func ExtractFeatures(task models.TaskRecord) (Features, error) {
	f := Features{
		TimeRatio:      task.ActualMinutes / max(task.EstimatedMinutes, 1),
		Postponements:  float64(task.PostponementCount),
		CompletionHour: defaultCompletionHour,
		PriorityWeight: float64(task.Priority.Weight()),
	}

	created, hasCreated, err := models.ParseOptionalTimestamp(task.CreatedAt)
	if err != nil {
		return Features{}, fmt.Errorf("task %s created_at: %w", task.ID, err)
	}
	started, hasStarted, err := models.ParseOptionalTimestamp(task.StartedAt)
	if err != nil {
		return Features{}, fmt.Errorf("task %s started_at: %w", task.ID, err)
	}
	completed, hasCompleted, err := models.ParseOptionalTimestamp(task.CompletedAt)
	if err != nil {
		return Features{}, fmt.Errorf("task %s completed_at: %w", task.ID, err)
	}

	if hasCreated && hasStarted {
		f.DelayHours = models.HoursBetween(created, started)
	}
	if hasCompleted {
		f.CompletionHour = float64(completed.Hour())
	}

	return f, nil
}

// featureMatrix extracts one row per task.
func featureMatrix(tasks []models.TaskRecord) ([][]float64, error) {
	rows := make([][]float64, 0, len(tasks))
	for _, task := range tasks {
		f, err := ExtractFeatures(task)
		if err != nil {
			return nil, err
		}
		rows = append(rows, f.Vector())
	}
	return rows, nil
}

// Reason texts attached to flagged tasks.
const (
	ReasonLateStart     = "Task started more than 24 hours after creation"
	ReasonOverran       = "Task took significantly longer than estimated"
	ReasonUrgentDelayed = "Urgent task completed with significant delay"
)

// Reasons explains a flagged task from its raw fields. The overrun rule
// only applies when the snapshot supplied both estimate and actual minutes.
func Reasons(task models.TaskRecord) ([]string, error) {
	reasons := []string{}

	created, hasCreated, err := models.ParseOptionalTimestamp(task.CreatedAt)
	if err != nil {
		return nil, err
	}
	started, hasStarted, err := models.ParseOptionalTimestamp(task.StartedAt)
	if err != nil {
		return nil, err
	}
	completed, hasCompleted, err := models.ParseOptionalTimestamp(task.CompletedAt)
	if err != nil {
		return nil, err
	}

	if hasCreated && hasStarted && models.HoursBetween(created, started) > 24 {
		reasons = append(reasons, ReasonLateStart)
	}

	if task.HasEstimate && task.HasActual &&
		task.EstimatedMinutes > 0 && task.ActualMinutes > 0 &&
		task.ActualMinutes > task.EstimatedMinutes*2 {
		reasons = append(reasons, ReasonOverran)
	}

	if task.Priority == models.PriorityUrgent && hasCreated && hasCompleted &&
		models.HoursBetween(created, completed) > 4 {
		reasons = append(reasons, ReasonUrgentDelayed)
	}

	return reasons, nil
}
