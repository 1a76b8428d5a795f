package burnout

import (
	"math"
	"testing"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name        string
		signals     models.WellbeingSignals
		wantScore   int
		wantLevel   models.RiskLevel
		wantReasons []models.RiskReason
	}{
		{
			name:      "Healthy",
			signals:   models.WellbeingSignals{AvgDailyWorkingHours: 7, HabitCompletionRate: 0.9},
			wantScore: 0,
			wantLevel: models.RiskLow,
		},
		{
			name: "LongHoursOnly",
			signals: models.WellbeingSignals{
				AvgDailyWorkingHours: 12,
				HabitCompletionRate:  1.0,
				ProductivityTrend:    []float64{},
			},
			wantScore:   25,
			wantLevel:   models.RiskLow,
			wantReasons: []models.RiskReason{models.ReasonExcessiveHours},
		},
		{
			name: "Medium",
			signals: models.WellbeingSignals{
				AvgDailyWorkingHours: 11,
				HabitCompletionRate:  0.4,
			},
			wantScore:   45,
			wantLevel:   models.RiskMedium,
			wantReasons: []models.RiskReason{models.ReasonExcessiveHours, models.ReasonLowHabitConsistency},
		},
		{
			name: "AllRules",
			signals: models.WellbeingSignals{
				AvgDailyWorkingHours: 11,
				ProductivityTrend:    []float64{80, 80, 80, 80, 40, 40, 40},
				HabitCompletionRate:  0.2,
				TaskOverdueRate:      0.5,
			},
			wantScore: 100,
			wantLevel: models.RiskHigh,
			wantReasons: []models.RiskReason{
				models.ReasonExcessiveHours,
				models.ReasonProductivityDecline,
				models.ReasonLowHabitConsistency,
				models.ReasonHighOverdueRate,
			},
		},
		{
			name: "ZeroEarlierAverage",
			signals: models.WellbeingSignals{
				ProductivityTrend:   []float64{0, 0, 0, 0, 10, 10, 10},
				HabitCompletionRate: 1.0,
			},
			wantScore: 0,
			wantLevel: models.RiskLow,
		},
		{
			name: "BoundaryValuesDoNotFire",
			signals: models.WellbeingSignals{
				AvgDailyWorkingHours: 10,
				HabitCompletionRate:  0.5,
				TaskOverdueRate:      0.3,
			},
			wantScore: 0,
			wantLevel: models.RiskLow,
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Assess(tt.signals)

			if got.RiskScore != tt.wantScore {
				t.Errorf("RiskScore = %d, want %d", got.RiskScore, tt.wantScore)
			}
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %q, want %q", got.RiskLevel, tt.wantLevel)
			}
			if len(got.RiskFactors) != len(tt.wantReasons) {
				t.Fatalf("RiskFactors = %+v, want reasons %v", got.RiskFactors, tt.wantReasons)
			}
			for i, r := range tt.wantReasons {
				if got.RiskFactors[i].Reason != r {
					t.Errorf("RiskFactors[%d].Reason = %q, want %q", i, got.RiskFactors[i].Reason, r)
				}
			}
			if got.Recommendations == nil {
				t.Error("Recommendations should never be nil")
			}
		})
	}
}

func TestAssess_Descriptions(t *testing.T) {
	got := New().Assess(models.WellbeingSignals{
		AvgDailyWorkingHours: 12.345,
		ProductivityTrend:    []float64{100, 100, 100, 100, 50, 50, 50},
		HabitCompletionRate:  0.25,
		TaskOverdueRate:      0.4,
	})

	want := []string{
		"Excessive working hours: 12.3h/day",
		"Productivity declined by 50.0%",
		"Low habit consistency: 25.0%",
		"High overdue task rate: 40.0%",
	}
	for i, w := range want {
		if got.RiskFactors[i].Description != w {
			t.Errorf("Description[%d] = %q, want %q", i, got.RiskFactors[i].Description, w)
		}
	}
}

func TestAssess_Recommendations(t *testing.T) {
	tests := []struct {
		name    string
		signals models.WellbeingSignals
		want    []string
	}{
		{
			name:    "LowWithHoursSnippet",
			signals: models.WellbeingSignals{AvgDailyWorkingHours: 12, HabitCompletionRate: 1},
			want:    []string{"Set strict boundaries for work hours"},
		},
		{
			name:    "MediumOverdueHasNoSnippet",
			signals: models.WellbeingSignals{HabitCompletionRate: 0.1, TaskOverdueRate: 0.9},
			want: []string{
				"Focus on maintaining work-life balance",
				"Ensure adequate sleep and nutrition",
				"Consider delegating non-essential tasks",
				"Focus on maintaining your daily routines",
			},
		},
		{
			name: "High",
			signals: models.WellbeingSignals{
				AvgDailyWorkingHours: 13,
				ProductivityTrend:    []float64{90, 90, 90, 90, 30, 30, 30},
				HabitCompletionRate:  1,
				TaskOverdueRate:      0.5,
			},
			want: []string{
				"Consider taking a day off to recharge",
				"Reduce working hours to under 8 hours per day",
				"Schedule regular breaks during work sessions",
				"Practice stress management techniques",
				"Set strict boundaries for work hours",
				"Review and optimize your work processes",
			},
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Assess(tt.signals).Recommendations
			if len(got) != len(tt.want) {
				t.Fatalf("Recommendations = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Recommendations[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecline(t *testing.T) {
	tests := []struct {
		name   string
		trend  []float64
		want   float64
		wantOK bool
	}{
		{"TooShort", []float64{1, 2, 3, 4, 5, 6}, 0, false},
		{"Flat", []float64{50, 50, 50, 50, 50, 50, 50}, 0, true},
		{"UsesLastSeven", []float64{0, 0, 100, 100, 100, 100, 70, 70, 70}, 0.3, true},
		{"Improving", []float64{50, 50, 50, 50, 75, 75, 75}, -0.5, true},
		{"ZeroEarlier", []float64{0, 0, 0, 0, 5, 5, 5}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decline(tt.trend, 7)
			if ok != tt.wantOK || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Decline() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{39, models.RiskLow},
		{40, models.RiskMedium},
		{69, models.RiskMedium},
		{70, models.RiskHigh},
		{100, models.RiskHigh},
	}
	for _, tt := range tests {
		if got := Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
