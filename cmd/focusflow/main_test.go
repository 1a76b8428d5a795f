package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/j-veylop/focusflow-insights/internal/models"
)

func TestOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	snapshot := `
tasks_completed: 8
total_tasks: 8
estimated_minutes: 60
actual_minutes: 60
habits_completed: 4
total_habits: 4
focus_sessions: 4
time_logs:
  - start_time: "2024-01-15T09:00:00"
    productivity_score: 90
`
	if err := os.WriteFile(path, []byte(snapshot), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var out bytes.Buffer
	if err := once(path, &out); err != nil {
		t.Fatalf("once failed: %v", err)
	}

	var result models.InsightsResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if result.ProductivityScore < 99.9 {
		t.Errorf("ProductivityScore = %v, want 100", result.ProductivityScore)
	}
	if len(result.OptimalWorkingHours) != 1 || result.OptimalWorkingHours[0] != 9 {
		t.Errorf("OptimalWorkingHours = %v, want [9]", result.OptimalWorkingHours)
	}
	if !bytes.Contains(out.Bytes(), []byte("\n  \"productivity_score\"")) {
		t.Error("output should be indented")
	}
}

func TestOnce_MissingSnapshot(t *testing.T) {
	var out bytes.Buffer
	if err := once(filepath.Join(t.TempDir(), "missing.json"), &out); err == nil {
		t.Error("a missing snapshot should be an error")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}
