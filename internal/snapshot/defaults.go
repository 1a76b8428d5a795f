package snapshot

import "github.com/j-veylop/focusflow-insights/internal/models"

// Defaults lists the neutral value of every optional snapshot field.
// They are applied once, when a snapshot is decoded.
type Defaults struct {
	TaskEstimatedMinutes float64
	TaskActualMinutes    float64
	TaskPriority         models.Priority
	TimeLogScore         float64
	HistoricalScore      float64
	HabitCompletionRate  float64
	TaskOverdueRate      float64
	AvgDailyWorkingHours float64
}

// DefaultValues returns the defaults used by Load and Decode.
func DefaultValues() Defaults {
	return Defaults{
		TaskEstimatedMinutes: 60,
		TaskActualMinutes:    60,
		TaskPriority:         models.PriorityMedium,
		TimeLogScore:         50,
		HistoricalScore:      50,
		HabitCompletionRate:  1.0,
	}
}

// Resolve converts a wire record into a UserData, filling every missing field.
func (d Defaults) Resolve(r *Record) models.UserData {
	data := models.UserData{
		DailyCounters: models.DailyCounters{
			TasksCompleted:    intOr(r.TasksCompleted, 0),
			TotalTasks:        intOr(r.TotalTasks, 0),
			EstimatedMinutes:  floatOr(r.EstimatedMinutes, 0),
			ActualMinutes:     floatOr(r.ActualMinutes, 0),
			HabitsCompleted:   intOr(r.HabitsCompleted, 0),
			TotalHabits:       intOr(r.TotalHabits, 0),
			FocusSessions:     intOr(r.FocusSessions, 0),
			DistractionEvents: intOr(r.DistractionEvents, 0),
		},
		WellbeingSignals: models.WellbeingSignals{
			AvgDailyWorkingHours: floatOr(r.AvgDailyWorkingHours, d.AvgDailyWorkingHours),
			ProductivityTrend:    append([]float64{}, r.ProductivityTrend...),
			HabitCompletionRate:  floatOr(r.HabitCompletionRate, d.HabitCompletionRate),
			TaskOverdueRate:      floatOr(r.TaskOverdueRate, d.TaskOverdueRate),
		},
		RecentTasks:    make([]models.TaskRecord, 0, len(r.RecentTasks)),
		TimeLogs:       make([]models.TimeLogEntry, 0, len(r.TimeLogs)),
		HistoricalData: make([]models.HistoricalPoint, 0, len(r.HistoricalData)),
	}

	for _, t := range r.RecentTasks {
		priority := d.TaskPriority
		if t.Priority != nil && *t.Priority != "" {
			priority = models.Priority(*t.Priority)
		}
		data.RecentTasks = append(data.RecentTasks, models.TaskRecord{
			ID:                t.ID,
			Title:             t.Title,
			CreatedAt:         t.CreatedAt,
			StartedAt:         t.StartedAt,
			CompletedAt:       t.CompletedAt,
			EstimatedMinutes:  floatOr(t.EstimatedMinutes, d.TaskEstimatedMinutes),
			ActualMinutes:     floatOr(t.ActualMinutes, d.TaskActualMinutes),
			Priority:          priority,
			PostponementCount: intOr(t.PostponementCount, 0),
			HasEstimate:       t.EstimatedMinutes != nil,
			HasActual:         t.ActualMinutes != nil,
		})
	}

	for _, l := range r.TimeLogs {
		data.TimeLogs = append(data.TimeLogs, models.TimeLogEntry{
			StartTime:         l.StartTime,
			ProductivityScore: floatOr(l.ProductivityScore, d.TimeLogScore),
		})
	}

	for _, h := range r.HistoricalData {
		data.HistoricalData = append(data.HistoricalData, models.HistoricalPoint{
			Date:              h.Date,
			ProductivityScore: floatOr(h.ProductivityScore, d.HistoricalScore),
		})
	}

	return data
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
