// Package scoring computes the composite daily productivity score.
package scoring

import "github.com/j-veylop/focusflow-insights/internal/models"

// Weights are the contribution of each sub-score to the daily score.
type Weights struct {
	TaskCompletion   float64
	TimeEfficiency   float64
	HabitConsistency float64
	FocusQuality     float64
}

// DefaultWeights returns the standard 0.4/0.3/0.2/0.1 split.
func DefaultWeights() Weights {
	return Weights{
		TaskCompletion:   0.4,
		TimeEfficiency:   0.3,
		HabitConsistency: 0.2,
		FocusQuality:     0.1,
	}
}

// neutralScore is used for a sub-score that has no data behind it.
const neutralScore = 50.0

// Breakdown holds the individual sub-scores, each in [0, 100].
type Breakdown struct {
	TaskCompletion   float64
	TimeEfficiency   float64
	HabitConsistency float64
	FocusQuality     float64
}

// Scorer is a stateless weighted-formula scorer.
type Scorer struct {
	weights Weights
}

// New creates a scorer with the default weights.
func New() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// NewWithWeights creates a scorer with custom weights.
func NewWithWeights(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Breakdown computes the four sub-scores for the day.
func (s *Scorer) Breakdown(c models.DailyCounters) Breakdown {
	b := Breakdown{
		TaskCompletion:   float64(c.TasksCompleted) / float64(max(c.TotalTasks, 1)) * 100,
		TimeEfficiency:   neutralScore,
		HabitConsistency: float64(c.HabitsCompleted) / float64(max(c.TotalHabits, 1)) * 100,
		FocusQuality:     neutralScore,
	}

	if c.EstimatedMinutes > 0 {
		b.TimeEfficiency = min(c.EstimatedMinutes/max(c.ActualMinutes, 1)*100, 100)
	}

	if c.FocusSessions > 0 {
		b.FocusQuality = max(100-float64(c.DistractionEvents)*10, 0)
	}

	return b
}

// Score returns the weighted daily score clamped to [0, 100].
func (s *Scorer) Score(c models.DailyCounters) float64 {
	b := s.Breakdown(c)
	total := b.TaskCompletion*s.weights.TaskCompletion +
		b.TimeEfficiency*s.weights.TimeEfficiency +
		b.HabitConsistency*s.weights.HabitConsistency +
		b.FocusQuality*s.weights.FocusQuality

	return min(max(total, 0), 100)
}
