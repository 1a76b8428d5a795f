// Package trend fits a linear trend to daily productivity and forecasts
// the following week.
package trend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/models"
)

const (
	// MinHistory is the number of daily points needed to fit a trend.
	MinHistory = 7
	// ForecastDays is the length of a forecast.
	ForecastDays = 7
	// MediumConfidenceHistory is the history length at which forecasts
	// are reported with medium confidence.
	MediumConfidenceHistory = 30
)

// ErrInsufficientData is returned when the history is too short to fit.
var ErrInsufficientData = errors.New("insufficient data for trend prediction")

type datedScore struct {
	date  time.Time
	score float64
	zoned bool
}

// series parses and sorts history by date. Entries with equal dates keep
// their input order.
func series(history []models.HistoricalPoint) ([]datedScore, error) {
	points := make([]datedScore, 0, len(history))
	for _, h := range history {
		d, err := models.ParseTimestamp(h.Date)
		if err != nil {
			return nil, fmt.Errorf("historical date: %w", err)
		}
		points = append(points, datedScore{date: d, score: h.ProductivityScore, zoned: models.HasZone(h.Date)})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].date.Before(points[j].date)
	})
	return points, nil
}

// Line is a fitted ordinary least squares line over day offsets.
// It is immutable once fitted.
type Line struct {
	Slope     float64
	Intercept float64
	Samples   int
}

// At evaluates the line at a day offset.
func (l *Line) At(day float64) float64 {
	return l.Intercept + l.Slope*day
}

// Fit sorts history by date and fits score against whole days since the
// earliest date.
func Fit(history []models.HistoricalPoint) (*Line, error) {
	if len(history) < MinHistory {
		return nil, fmt.Errorf("%w: have %d points, need %d", ErrInsufficientData, len(history), MinHistory)
	}

	points, err := series(history)
	if err != nil {
		return nil, err
	}

	start := points[0].date
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(models.WholeDaysBetween(start, p.date))
		ys[i] = p.score
	}

	slope, intercept := leastSquares(xs, ys)
	return &Line{Slope: slope, Intercept: intercept, Samples: len(points)}, nil
}

// leastSquares returns the OLS slope and intercept. With no variance in x
// the line is flat at the mean of y.
func leastSquares(xs, ys []float64) (slope, intercept float64) {
	if floats.Min(xs) == floats.Max(xs) {
		return 0, stat.Mean(ys, nil)
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return slope, intercept
}

// Forecast predicts the seven days after the latest date in history, with
// offsets measured from the earliest date. Short history yields no points.
func (l *Line) Forecast(history []models.HistoricalPoint) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	if len(history) < MinHistory {
		return predictions, nil
	}

	points, err := series(history)
	if err != nil {
		return nil, err
	}

	first := points[0].date
	last := points[len(points)-1].date

	// forecast dates keep the offset of the latest input date
	layout := models.DateLayout
	if points[len(points)-1].zoned {
		layout = models.ZonedDateLayout
	}

	confidence := models.ConfidenceLow
	if len(history) >= MediumConfidenceHistory {
		confidence = models.ConfidenceMedium
	}

	for i := 1; i <= ForecastDays; i++ {
		day := last.AddDate(0, 0, i)
		score := l.At(float64(models.WholeDaysBetween(first, day)))
		score = min(max(score, 0), 100)

		predictions = append(predictions, models.Prediction{
			Date:           day.Format(layout),
			PredictedScore: math.Round(score*10) / 10,
			Confidence:     confidence,
		})
	}

	return predictions, nil
}

// Predictor holds the most recently fitted trend line.
type Predictor struct {
	mu   sync.RWMutex
	line *Line
}

// New creates an untrained predictor.
func New() *Predictor {
	return &Predictor{}
}

// Train fits a new line and swaps it in. Short history logs a warning and
// keeps the previous line.
func (p *Predictor) Train(history []models.HistoricalPoint) error {
	line, err := Fit(history)
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			logger.Warn("Insufficient data for trend prediction", "component", "trend", "points", len(history))
		}
		return err
	}

	p.mu.Lock()
	p.line = line
	p.mu.Unlock()

	logger.Info("Trend predictor trained", "component", "trend", "points", line.Samples, "slope", line.Slope)
	return nil
}

// IsTrained reports whether a line has been fitted.
func (p *Predictor) IsTrained() bool {
	return p.Line() != nil
}

// Line returns the current fitted line, or nil.
func (p *Predictor) Line() *Line {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.line
}

// PredictNextWeek forecasts from history with the current line. An untrained
// predictor returns an empty list.
func (p *Predictor) PredictNextWeek(history []models.HistoricalPoint) ([]models.Prediction, error) {
	line := p.Line()
	if line == nil {
		return []models.Prediction{}, nil
	}
	return line.Forecast(history)
}
