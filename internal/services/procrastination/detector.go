// Package procrastination flags tasks whose timing pattern is anomalous
// for the user, using an isolation forest over standardised task features.
package procrastination

import (
	"errors"
	"fmt"
	"sync"

	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/models"
)

// MinTrainingSamples is the smallest task history a model is fitted on.
const MinTrainingSamples = 50

// ErrInsufficientData is returned when there are too few tasks to train on.
var ErrInsufficientData = errors.New("insufficient data for training procrastination detector")

// Model is a fitted scaler and forest. It is safe for concurrent use.
type Model struct {
	scaler *Scaler
	forest *Forest
	n      int
}

// Fit trains a model on tasks.
func Fit(tasks []models.TaskRecord, opts ForestOptions) (*Model, error) {
	if len(tasks) < MinTrainingSamples {
		return nil, fmt.Errorf("%w: have %d tasks, need %d", ErrInsufficientData, len(tasks), MinTrainingSamples)
	}

	rows, err := featureMatrix(tasks)
	if err != nil {
		return nil, err
	}

	scaler := FitScaler(rows)
	return &Model{
		scaler: scaler,
		forest: FitForest(scaler.Transform(rows), opts),
		n:      len(rows),
	}, nil
}

// Samples returns the number of tasks the model was trained on.
func (m *Model) Samples() int {
	return m.n
}

// Detect returns the flagged tasks in input order.
func (m *Model) Detect(tasks []models.TaskRecord) ([]models.ProcrastinationPattern, error) {
	patterns := []models.ProcrastinationPattern{}
	if len(tasks) == 0 {
		return patterns, nil
	}

	rows, err := featureMatrix(tasks)
	if err != nil {
		return nil, err
	}

	for i, row := range m.scaler.Transform(rows) {
		decision := m.forest.Decision(row)
		if decision >= 0 {
			continue
		}

		reasons, err := Reasons(tasks[i])
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", tasks[i].ID, err)
		}

		patterns = append(patterns, models.ProcrastinationPattern{
			TaskID:               tasks[i].ID,
			TaskTitle:            tasks[i].Title,
			ProcrastinationScore: -decision,
			Reasons:              reasons,
		})
	}

	return patterns, nil
}

// Detector holds the most recently trained model.
type Detector struct {
	mu    sync.RWMutex
	model *Model
	opts  ForestOptions
}

// New creates an untrained detector.
func New() *Detector {
	return &Detector{opts: DefaultForestOptions()}
}

// NewWithOptions creates an untrained detector with custom forest options.
func NewWithOptions(opts ForestOptions) *Detector {
	return &Detector{opts: opts}
}

// Train fits a new model and swaps it in. With fewer than
// MinTrainingSamples tasks it logs a warning and keeps the previous model.
func (d *Detector) Train(tasks []models.TaskRecord) error {
	model, err := Fit(tasks, d.opts)
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			logger.Warn("Insufficient data for training procrastination detector",
				"component", "procrastination", "samples", len(tasks))
		}
		return err
	}

	d.mu.Lock()
	d.model = model
	d.mu.Unlock()

	logger.Info("Procrastination detector trained", "component", "procrastination", "samples", model.n)
	return nil
}

// IsTrained reports whether a model has been fitted.
func (d *Detector) IsTrained() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model != nil
}

// Model returns the current fitted model, or nil.
func (d *Detector) Model() *Model {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model
}

// Detect flags tasks using the current model. An untrained detector
// returns an empty list.
func (d *Detector) Detect(tasks []models.TaskRecord) ([]models.ProcrastinationPattern, error) {
	model := d.Model()
	if model == nil {
		return []models.ProcrastinationPattern{}, nil
	}
	return model.Detect(tasks)
}
