// Package insights runs every analytical component against one user
// snapshot and merges their output into a single result.
package insights

import (
	"errors"
	"time"

	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services/burnout"
	"github.com/j-veylop/focusflow-insights/internal/services/optimaltime"
	"github.com/j-veylop/focusflow-insights/internal/services/procrastination"
	"github.com/j-veylop/focusflow-insights/internal/services/scoring"
	"github.com/j-veylop/focusflow-insights/internal/services/trend"
)

// Config holds engine configuration.
type Config struct {
	Weights    scoring.Weights
	Thresholds burnout.Thresholds
	Forest     procrastination.ForestOptions
	Now        func() time.Time
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:    scoring.DefaultWeights(),
		Thresholds: burnout.DefaultThresholds(),
		Forest:     procrastination.DefaultForestOptions(),
		Now:        time.Now,
	}
}

// Engine generates insights. The stateless components are shared; the
// trainable models are fitted per call and never leave it, so an Engine
// is safe for concurrent use.
type Engine struct {
	scorer   *scoring.Scorer
	analyzer *optimaltime.Analyzer
	burnout  *burnout.Detector
	forest   procrastination.ForestOptions
	now      func() time.Time
}

// New creates an engine.
func New(cfg Config) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		scorer:   scoring.NewWithWeights(cfg.Weights),
		analyzer: optimaltime.New(),
		burnout:  burnout.NewWithThresholds(cfg.Thresholds),
		forest:   cfg.Forest,
		now:      cfg.Now,
	}
}

// Generate runs all components against data. The result is always non-nil:
// a failing stage leaves its fields at their neutral defaults, sets the
// result's error marker and is reported in the returned *PipelineError.
//
// data is used as given. Snapshot defaults such as the 1.0 habit completion
// rate are filled in by snapshot.Decode, so a zero-valued UserData is read
// as a habit completion rate of 0.
func (e *Engine) Generate(data models.UserData) (*models.InsightsResult, error) {
	result := models.NewInsightsResult(e.now())
	var failures []StageError

	run := func(stage Stage, fn func() error) {
		if err := runStage(fn); err != nil {
			logger.Error("Error generating insights", "stage", string(stage), "error", err)
			failures = append(failures, StageError{Stage: stage, Err: err})
		}
	}

	run(StageProductivity, func() error {
		result.ProductivityScore = e.scorer.Score(data.DailyCounters)
		return nil
	})

	run(StageProcrastination, func() error {
		patterns, err := e.detectProcrastination(data.RecentTasks)
		if err != nil {
			return err
		}
		result.ProcrastinationPatterns = patterns
		return nil
	})

	run(StageOptimalTime, func() error {
		if len(data.TimeLogs) == 0 {
			return nil
		}
		analysis, err := e.analyzer.Analyze(data.TimeLogs)
		if err != nil {
			return err
		}
		result.OptimalWorkingHours = analysis.OptimalHours
		result.ProductivityByHour = analysis.ProductivityByHour
		result.ProductivityBands = analysis.Bands
		return nil
	})

	run(StageBurnout, func() error {
		result.BurnoutRisk = e.burnout.Assess(data.WellbeingSignals)
		return nil
	})

	run(StageTrend, func() error {
		predictions, err := e.predictTrend(data.HistoricalData)
		if err != nil {
			return err
		}
		result.WeeklyPredictions = predictions
		return nil
	})

	run(StageRecommendations, func() error {
		result.Recommendations = Recommend(result)
		return nil
	})

	if len(failures) > 0 {
		result.Error = FailureMarker
		return result, &PipelineError{Stages: failures}
	}
	return result, nil
}

func (e *Engine) detectProcrastination(tasks []models.TaskRecord) ([]models.ProcrastinationPattern, error) {
	if len(tasks) == 0 {
		return []models.ProcrastinationPattern{}, nil
	}

	detector := procrastination.NewWithOptions(e.forest)
	if err := detector.Train(tasks); err != nil && !errors.Is(err, procrastination.ErrInsufficientData) {
		return nil, err
	}
	return detector.Detect(tasks)
}

func (e *Engine) predictTrend(history []models.HistoricalPoint) ([]models.Prediction, error) {
	if len(history) == 0 {
		return []models.Prediction{}, nil
	}

	predictor := trend.New()
	if err := predictor.Train(history); err != nil && !errors.Is(err, trend.ErrInsufficientData) {
		return nil, err
	}
	return predictor.PredictNextWeek(history)
}

// runStage calls fn, converting a panic into an error.
func runStage(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r}
		}
	}()
	return fn()
}
