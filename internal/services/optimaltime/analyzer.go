// Package optimaltime finds the hours of the day when a user works best.
package optimaltime

import (
	"fmt"
	"sort"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

// TopHours is the number of optimal hours reported.
const TopHours = 3

// Analyzer aggregates session productivity by hour of day.
type Analyzer struct {
	bands int
}

// New creates an analyzer that groups hours into up to three bands.
func New() *Analyzer {
	return &Analyzer{bands: 3}
}

type hourBucket struct {
	hour  int
	total float64
	count int
}

func (b hourBucket) mean() float64 {
	return b.total / float64(b.count)
}

// Analyze buckets logs by the hour of their start time. Logs without a start
// time are skipped; a start time that cannot be parsed is an error.
func (a *Analyzer) Analyze(logs []models.TimeLogEntry) (models.TimeAnalysis, error) {
	result := models.TimeAnalysis{
		OptimalHours:       []int{},
		ProductivityByHour: map[int]float64{},
	}

	// buckets keep first-seen order so ties rank by appearance
	var buckets []*hourBucket
	byHour := make(map[int]*hourBucket)

	for _, log := range logs {
		start, ok, err := models.ParseOptionalTimestamp(log.StartTime)
		if err != nil {
			return result, fmt.Errorf("time log start_time: %w", err)
		}
		if !ok {
			continue
		}

		b, exists := byHour[start.Hour()]
		if !exists {
			b = &hourBucket{hour: start.Hour()}
			byHour[b.hour] = b
			buckets = append(buckets, b)
		}
		b.total += log.ProductivityScore
		b.count++
	}

	if len(buckets) == 0 {
		return result, nil
	}

	for _, b := range buckets {
		result.ProductivityByHour[b.hour] = b.mean()
	}

	ranked := make([]*hourBucket, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].mean() > ranked[j].mean()
	})

	for _, b := range ranked[:min(TopHours, len(ranked))] {
		result.OptimalHours = append(result.OptimalHours, b.hour)
	}

	result.Bands = Bands(result.ProductivityByHour, a.bands)

	return result, nil
}
