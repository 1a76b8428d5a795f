package optimaltime

import (
	"math"
	"sort"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

const maxIterations = 100

// Band labels ordered from most to least productive.
const (
	BandPeak   = "peak"
	BandSteady = "steady"
	BandLow    = "low"
)

func bandLabels(k int) []string {
	switch k {
	case 1:
		return []string{BandSteady}
	case 2:
		return []string{BandPeak, BandLow}
	default:
		return []string{BandPeak, BandSteady, BandLow}
	}
}

// Bands groups hours by mean productivity with one-dimensional k-means.
// Centroids start at evenly spaced ranks of the sorted means, so the result
// is deterministic. Bands are ordered from peak to low.
func Bands(byHour map[int]float64, k int) []models.ProductivityBand {
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	k = min(k, len(hours))
	if k <= 0 {
		return nil
	}

	values := make([]float64, len(hours))
	for i, h := range hours {
		values[i] = byHour[h]
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	centroids := make([]float64, k)
	for c := range k {
		if k == 1 {
			centroids[c] = sorted[len(sorted)/2]
			continue
		}
		centroids[c] = sorted[c*(len(sorted)-1)/(k-1)]
	}

	assign := make([]int, len(values))
	for range maxIterations {
		changed := false
		for i, v := range values {
			best := nearest(centroids, v)
			if best != assign[i] {
				assign[i] = best
				changed = true
			}
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[assign[i]] += v
			counts[assign[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	groups := make([]models.ProductivityBand, k)
	for c := range groups {
		groups[c] = models.ProductivityBand{Centroid: centroids[c], Hours: []int{}}
	}
	for i, h := range hours {
		groups[assign[i]].Hours = append(groups[assign[i]].Hours, h)
	}

	bands := make([]models.ProductivityBand, 0, k)
	for _, g := range groups {
		if len(g.Hours) > 0 {
			bands = append(bands, g)
		}
	}
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].Centroid > bands[j].Centroid
	})

	labels := bandLabels(len(bands))
	for i := range bands {
		bands[i].Label = labels[i]
	}

	return bands
}

func nearest(centroids []float64, v float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := math.Abs(v - centroid); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
