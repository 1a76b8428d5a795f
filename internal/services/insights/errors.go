package insights

import (
	"fmt"
	"strings"
)

// FailureMarker is set on a result when any stage failed.
const FailureMarker = "Failed to generate complete insights"

// Stage names a step of the pipeline.
type Stage string

const (
	StageProductivity    Stage = "productivity_score"
	StageProcrastination Stage = "procrastination_patterns"
	StageOptimalTime     Stage = "optimal_working_hours"
	StageBurnout         Stage = "burnout_risk"
	StageTrend           Stage = "weekly_predictions"
	StageRecommendations Stage = "recommendations"
)

// StageError is a failure confined to one stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e StageError) Unwrap() error {
	return e.Err
}

// PipelineError lists every stage that failed during one Generate call.
type PipelineError struct {
	Stages []StageError
}

func (e *PipelineError) Error() string {
	parts := make([]string, len(e.Stages))
	for i, s := range e.Stages {
		parts[i] = s.Error()
	}
	return fmt.Sprintf("insights: %d stage(s) failed: %s", len(e.Stages), strings.Join(parts, "; "))
}

// Unwrap exposes the stage errors to errors.Is and errors.As.
func (e *PipelineError) Unwrap() []error {
	errs := make([]error, len(e.Stages))
	for i, s := range e.Stages {
		errs[i] = s
	}
	return errs
}

// Failed reports whether the given stage is among the failures.
func (e *PipelineError) Failed(stage Stage) bool {
	for _, s := range e.Stages {
		if s.Stage == stage {
			return true
		}
	}
	return false
}

// PanicError wraps a value recovered from a panicking stage.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
