package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPriorityWeight(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityLow, 1},
		{PriorityMedium, 2},
		{PriorityHigh, 3},
		{PriorityUrgent, 4},
		{"", 2},
		{"someday", 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := tt.priority.Weight(); got != tt.want {
				t.Errorf("Weight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
	}{
		{"Naive", "2024-01-15T09:00:00", 9},
		{"Fractional", "2024-01-15T09:30:00.123456", 9},
		{"UTC", "2024-01-15T14:00:00Z", 14},
		{"Offset", "2024-01-15T14:00:00+02:00", 14},
		{"SpaceSeparated", "2024-01-15 18:45:00", 18},
		{"DateOnly", "2024-01-15", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tt.input, err)
			}
			if got.Hour() != tt.wantHour {
				t.Errorf("Hour() = %d, want %d", got.Hour(), tt.wantHour)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"yesterday", "2024-13-45", "15/01/2024"} {
		if _, err := ParseTimestamp(input); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", input)
		}
	}
}

func TestHasZone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-15T09:00:00", false},
		{"2024-01-15", false},
		{"2024-01-15T09:00:00Z", true},
		{"2024-01-15T09:00:00.5+02:00", true},
		{" 2024-01-15T09:00:00-05:00 ", true},
		{"not a date", false},
	}
	for _, tt := range tests {
		if got := HasZone(tt.input); got != tt.want {
			t.Errorf("HasZone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseOptionalTimestamp(t *testing.T) {
	_, ok, err := ParseOptionalTimestamp("  ")
	if err != nil || ok {
		t.Errorf("empty input: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	_, ok, err = ParseOptionalTimestamp("2024-01-15T09:00:00")
	if err != nil || !ok {
		t.Errorf("valid input: ok=%v err=%v, want ok=true err=nil", ok, err)
	}

	if _, _, err = ParseOptionalTimestamp("not a date"); err == nil {
		t.Error("malformed input should return an error")
	}
}

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		end  time.Time
		want int
	}{
		{start, 0},
		{start.Add(23 * time.Hour), 0},
		{start.Add(48 * time.Hour), 2},
		{start.Add(-time.Hour), -1},
	}

	for _, tt := range tests {
		if got := WholeDaysBetween(start, tt.end); got != tt.want {
			t.Errorf("WholeDaysBetween(%v) = %d, want %d", tt.end, got, tt.want)
		}
	}
}

func TestNewInsightsResult_MarshalsEmptyLists(t *testing.T) {
	r := NewInsightsResult(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)

	for _, field := range []string{
		`"procrastination_patterns":[]`,
		`"optimal_working_hours":[]`,
		`"weekly_predictions":[]`,
		`"recommendations":[]`,
		`"risk_level":"low"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("marshalled result missing %s: %s", field, out)
		}
	}
	if strings.Contains(out, `"error"`) {
		t.Errorf("error field should be omitted: %s", out)
	}
	if r.Failed() {
		t.Error("fresh result should not be marked failed")
	}
}

func TestBurnoutRisk_HasReason(t *testing.T) {
	risk := BurnoutRisk{
		RiskFactors: []RiskFactor{{Reason: ReasonExcessiveHours}},
	}
	if !risk.HasReason(ReasonExcessiveHours) {
		t.Error("HasReason(excessive_hours) = false, want true")
	}
	if risk.HasReason(ReasonHighOverdueRate) {
		t.Error("HasReason(high_overdue_rate) = true, want false")
	}
}

func TestRiskLevel_Elevated(t *testing.T) {
	if RiskLow.Elevated() {
		t.Error("low should not be elevated")
	}
	if !RiskMedium.Elevated() || !RiskHigh.Elevated() {
		t.Error("medium and high should be elevated")
	}
}
