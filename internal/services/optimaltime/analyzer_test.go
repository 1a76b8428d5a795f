package optimaltime

import (
	"testing"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

func logAt(ts string, score float64) models.TimeLogEntry {
	return models.TimeLogEntry{StartTime: ts, ProductivityScore: score}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAnalyze_Empty(t *testing.T) {
	got, err := New().Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got.OptimalHours == nil || len(got.OptimalHours) != 0 {
		t.Errorf("OptimalHours = %v, want empty list", got.OptimalHours)
	}
	if got.ProductivityByHour == nil || len(got.ProductivityByHour) != 0 {
		t.Errorf("ProductivityByHour = %v, want empty map", got.ProductivityByHour)
	}
	if len(got.Bands) != 0 {
		t.Errorf("Bands = %v, want none", got.Bands)
	}
}

func TestAnalyze_RanksByMean(t *testing.T) {
	logs := []models.TimeLogEntry{
		logAt("2024-01-15T11:05:00", 60),
		logAt("2024-01-15T09:00:00", 95),
		logAt("2024-01-15T10:30:00", 80),
		logAt("2024-01-16T09:15:00", 85),
		logAt("2024-01-16T11:45:00", 80),
	}

	got, err := New().Analyze(logs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !equalInts(got.OptimalHours, []int{9, 10, 11}) {
		t.Errorf("OptimalHours = %v, want [9 10 11]", got.OptimalHours)
	}
	if got.ProductivityByHour[9] != 90 || got.ProductivityByHour[11] != 70 {
		t.Errorf("ProductivityByHour = %v", got.ProductivityByHour)
	}
}

func TestAnalyze_TiesKeepFirstSeenOrder(t *testing.T) {
	logs := []models.TimeLogEntry{
		logAt("2024-01-15T14:00:00", 70),
		logAt("2024-01-15T08:00:00", 70),
		logAt("2024-01-15T16:00:00", 90),
		logAt("2024-01-15T10:00:00", 70),
	}

	got, err := New().Analyze(logs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !equalInts(got.OptimalHours, []int{16, 14, 8}) {
		t.Errorf("OptimalHours = %v, want [16 14 8]", got.OptimalHours)
	}
}

func TestAnalyze_SkipsMissingStartTime(t *testing.T) {
	logs := []models.TimeLogEntry{
		{ProductivityScore: 100},
		logAt("2024-01-15T13:00:00", 40),
	}

	got, err := New().Analyze(logs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !equalInts(got.OptimalHours, []int{13}) {
		t.Errorf("OptimalHours = %v, want [13]", got.OptimalHours)
	}
}

func TestAnalyze_MalformedStartTime(t *testing.T) {
	_, err := New().Analyze([]models.TimeLogEntry{logAt("9am", 80)})
	if err == nil {
		t.Error("Analyze should fail on a malformed start time")
	}
}

func TestBands(t *testing.T) {
	byHour := map[int]float64{
		8:  40,
		9:  92,
		10: 90,
		13: 65,
		14: 62,
		17: 38,
	}

	bands := Bands(byHour, 3)
	if len(bands) != 3 {
		t.Fatalf("len(bands) = %d, want 3: %+v", len(bands), bands)
	}

	want := []struct {
		label string
		hours []int
	}{
		{BandPeak, []int{9, 10}},
		{BandSteady, []int{13, 14}},
		{BandLow, []int{8, 17}},
	}
	for i, w := range want {
		if bands[i].Label != w.label || !equalInts(bands[i].Hours, w.hours) {
			t.Errorf("band %d = %+v, want %s %v", i, bands[i], w.label, w.hours)
		}
	}
	if bands[0].Centroid != 91 {
		t.Errorf("peak centroid = %v, want 91", bands[0].Centroid)
	}
}

func TestBands_FewHours(t *testing.T) {
	bands := Bands(map[int]float64{9: 80}, 3)
	if len(bands) != 1 || bands[0].Label != BandSteady {
		t.Errorf("single hour bands = %+v, want one steady band", bands)
	}

	bands = Bands(map[int]float64{9: 80, 15: 20}, 3)
	if len(bands) != 2 || bands[0].Label != BandPeak || bands[1].Label != BandLow {
		t.Errorf("two hour bands = %+v, want peak and low", bands)
	}

	if bands := Bands(map[int]float64{}, 3); bands != nil {
		t.Errorf("empty bands = %+v, want nil", bands)
	}
}

func TestAnalyze_BandsDoNotChangeOptimalHours(t *testing.T) {
	logs := []models.TimeLogEntry{
		logAt("2024-01-15T09:00:00", 90),
		logAt("2024-01-15T10:00:00", 89),
		logAt("2024-01-15T11:00:00", 88),
		logAt("2024-01-15T15:00:00", 87),
	}

	got, err := New().Analyze(logs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !equalInts(got.OptimalHours, []int{9, 10, 11}) {
		t.Errorf("OptimalHours = %v, want [9 10 11]", got.OptimalHours)
	}
	if len(got.Bands) == 0 {
		t.Error("expected productivity bands")
	}
}
