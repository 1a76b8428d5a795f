package services

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/focusflow-insights/internal/config"
	"github.com/j-veylop/focusflow-insights/internal/models"
)

const testSnapshot = `{
  "tasks_completed": 5, "total_tasks": 8,
  "estimated_minutes": 240, "actual_minutes": 300,
  "habits_completed": 3, "total_habits": 4,
  "focus_sessions": 4, "distraction_events": 2,
  "time_logs": [
    {"start_time": "2024-01-15T09:00:00", "productivity_score": 90},
    {"start_time": "2024-01-15T14:00:00", "productivity_score": 60}
  ]
}`

const highRiskSnapshot = `{
  "avg_daily_working_hours": 12,
  "habit_completion_rate": 0.2,
  "task_overdue_rate": 0.6
}`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Config{
		SnapshotPath:  filepath.Join(tmpDir, "snapshot.json"),
		DatabasePath:  filepath.Join(tmpDir, "test.db"),
		WatchDebounce: 20 * time.Millisecond,
	}
}

func newTestManager(t *testing.T, snapshot string) *Manager {
	t.Helper()
	cfg := newTestConfig(t)
	if snapshot != "" {
		if err := os.WriteFile(cfg.SnapshotPath, []byte(snapshot), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

// waitForInsights drains ch until an InsightsUpdatedEvent arrives.
func waitForInsights(t *testing.T, ch <-chan ServiceEvent) InsightsUpdatedEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-ch:
			if ev, ok := e.(InsightsUpdatedEvent); ok {
				return ev
			}
		case <-timeout:
			t.Fatal("timeout waiting for InsightsUpdatedEvent")
			return InsightsUpdatedEvent{}
		}
	}
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t, testSnapshot)

	if mgr.snapshots == nil {
		t.Error("Snapshot service should be initialized")
	}
	if mgr.database == nil {
		t.Error("Database should be initialized")
	}
	if !mgr.NextScheduledRun().IsZero() {
		t.Error("no schedule configured, next run should be zero")
	}
}

func TestNewManager_InvalidSchedule(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.RefreshSchedule = "not a schedule"

	if _, err := NewManager(cfg); err == nil {
		t.Error("NewManager should reject an invalid schedule")
	}
}

func TestNewManager_Schedule(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.RefreshSchedule = "@every 1h"

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	// entries are populated once the scheduler goroutine has started
	deadline := time.Now().Add(time.Second)
	for mgr.NextScheduledRun().IsZero() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	next := mgr.NextScheduledRun()
	if next.IsZero() || next.Before(time.Now()) {
		t.Errorf("NextScheduledRun() = %v, want a future time", next)
	}
}

func TestManager_Regenerate(t *testing.T) {
	mgr := newTestManager(t, testSnapshot)

	runID, result, err := mgr.Regenerate()
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if runID == "" {
		t.Fatal("Regenerate returned an empty run ID")
	}
	if result.ProductivityScore < 72.999 || result.ProductivityScore > 73.001 {
		t.Errorf("ProductivityScore = %v, want 73", result.ProductivityScore)
	}
	if len(result.OptimalWorkingHours) == 0 || result.OptimalWorkingHours[0] != 9 {
		t.Errorf("OptimalWorkingHours = %v, want 9 first", result.OptimalWorkingHours)
	}

	stored, err := mgr.Run(runID)
	if err != nil {
		t.Fatalf("run was not stored: %v", err)
	}
	if stored.ProductivityScore != result.ProductivityScore {
		t.Errorf("stored score = %v, want %v", stored.ProductivityScore, result.ProductivityScore)
	}

	stats := mgr.GetStats()
	if stats.RunCount < 1 || stats.HistoryDays != 1 || !stats.SnapshotLoaded {
		t.Errorf("GetStats() = %+v", stats)
	}
}

func TestManager_RegenerateWithoutSnapshot(t *testing.T) {
	mgr := newTestManager(t, "")

	if _, _, err := mgr.Regenerate(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Regenerate() error = %v, want ErrNoSnapshot", err)
	}
}

func TestManager_RegenerateIsDeterministic(t *testing.T) {
	mgr := newTestManager(t, `{
  "historical_data": [
    {"date": "2024-01-01", "productivity_score": 50},
    {"date": "2024-01-02", "productivity_score": 55},
    {"date": "2024-01-03", "productivity_score": 53},
    {"date": "2024-01-04", "productivity_score": 60},
    {"date": "2024-01-05", "productivity_score": 62},
    {"date": "2024-01-06", "productivity_score": 58},
    {"date": "2024-01-07", "productivity_score": 66},
    {"date": "2024-01-08", "productivity_score": 70},
    {"date": "2024-01-09", "productivity_score": 68},
    {"date": "2024-01-10", "productivity_score": 74}
  ]
}`)

	_, first, err := mgr.Regenerate()
	if err != nil {
		t.Fatalf("first Regenerate failed: %v", err)
	}
	_, second, err := mgr.Regenerate()
	if err != nil {
		t.Fatalf("second Regenerate failed: %v", err)
	}

	if len(first.WeeklyPredictions) != 7 {
		t.Fatalf("len(WeeklyPredictions) = %d, want 7", len(first.WeeklyPredictions))
	}
	if len(second.WeeklyPredictions) != len(first.WeeklyPredictions) {
		t.Fatalf("prediction count changed: %d then %d", len(first.WeeklyPredictions), len(second.WeeklyPredictions))
	}
	for i := range first.WeeklyPredictions {
		if first.WeeklyPredictions[i] != second.WeeklyPredictions[i] {
			t.Errorf("prediction %d = %+v then %+v", i, first.WeeklyPredictions[i], second.WeeklyPredictions[i])
		}
	}
}

func TestManager_RunUnknownID(t *testing.T) {
	mgr := newTestManager(t, "")

	if _, err := mgr.Run("missing"); err == nil {
		t.Error("Run should fail for an unknown ID")
	}
}

func TestManager_RegeneratesOnSnapshotChange(t *testing.T) {
	mgr := newTestManager(t, testSnapshot)
	ch, _ := mgr.Subscribe()

	if err := os.WriteFile(mgr.Config().SnapshotPath, []byte(`{"tasks_completed": 8, "total_tasks": 8, "estimated_minutes": 60, "actual_minutes": 60, "habits_completed": 4, "total_habits": 4, "focus_sessions": 4}`), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		ev := waitForInsights(t, ch)
		if ev.Result.ProductivityScore > 80 {
			if ev.Trigger != "snapshot" {
				t.Errorf("Trigger = %q, want snapshot", ev.Trigger)
			}
			return
		}
		select {
		case <-timeout:
			t.Fatal("snapshot change did not regenerate insights")
		default:
		}
	}
}

func TestManager_NotifiesOnHighBurnout(t *testing.T) {
	mgr := newTestManager(t, "")
	mgr.cfg.NotificationsEnabled = true

	var mu sync.Mutex
	var titles []string
	mgr.SetNotifier(func(title, _ string) error {
		mu.Lock()
		titles = append(titles, title)
		mu.Unlock()
		return nil
	})

	low := models.NewInsightsResult(time.Now())
	high := models.NewInsightsResult(time.Now())
	high.BurnoutRisk = models.BurnoutRisk{
		RiskLevel:   models.RiskHigh,
		RiskScore:   70,
		RiskFactors: []models.RiskFactor{{Reason: models.ReasonExcessiveHours, Description: "Excessive working hours: 12.0h/day"}},
	}

	mgr.checkNotifications(high) // baseline only
	mgr.checkNotifications(low)
	mgr.checkNotifications(high) // crossing
	mgr.checkNotifications(high) // still high

	mu.Lock()
	defer mu.Unlock()
	if len(titles) != 1 || titles[0] != "Burnout risk is high (70)" {
		t.Errorf("notifications = %v, want exactly one", titles)
	}
}

func TestManager_NotificationsDisabled(t *testing.T) {
	mgr := newTestManager(t, highRiskSnapshot)

	called := false
	mgr.SetNotifier(func(string, string) error {
		called = true
		return nil
	})

	low := models.NewInsightsResult(time.Now())
	high := models.NewInsightsResult(time.Now())
	high.BurnoutRisk.RiskLevel = models.RiskHigh

	mgr.checkNotifications(low)
	mgr.checkNotifications(high)

	if called {
		t.Error("notifier should not run when notifications are disabled")
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t, "")

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	if err := mgr.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Channel should be closed after Close")
		}
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t, "")

	ch, _ := mgr.Subscribe()

	event := StatsEvent{RunCount: 1}
	mgr.broadcast(event)

	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if e == ServiceEvent(event) {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for broadcast")
		}
	}
}

func TestMergeHistory(t *testing.T) {
	history := []models.HistoricalPoint{
		{Date: "2024-01-02T00:00:00", ProductivityScore: 70},
		{Date: "2024-01-03", ProductivityScore: 75},
	}
	stored := []models.DailyScore{
		{Day: "2024-01-03", Score: 10},
		{Day: "2024-01-01", Score: 60},
		{Day: "2024-01-02", Score: 20},
		{Day: "2024-01-04", Score: 80},
	}

	merged := MergeHistory(history, stored)
	if len(merged) != 4 {
		t.Fatalf("len(merged) = %d, want 4: %+v", len(merged), merged)
	}
	if merged[1].ProductivityScore != 75 {
		t.Errorf("snapshot point should win, got %v", merged[1].ProductivityScore)
	}
	if merged[2].Date != "2024-01-01" || merged[3].Date != "2024-01-04" {
		t.Errorf("stored points = %+v, want days 01 and 04 in order", merged[2:])
	}

	if got := MergeHistory(history, nil); len(got) != 2 {
		t.Errorf("MergeHistory with no stored scores = %+v", got)
	}
}

func TestMergeHistory_DoesNotModifyInput(t *testing.T) {
	history := make([]models.HistoricalPoint, 1, 4)
	history[0] = models.HistoricalPoint{Date: "2024-01-01", ProductivityScore: 50}

	_ = MergeHistory(history, []models.DailyScore{{Day: "2024-01-02", Score: 40}})

	if extended := history[:2]; extended[1].Date != "" {
		t.Error("MergeHistory wrote into the caller's backing array")
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- StatsEvent{}

	if msg := waitForEvent(ch)(); msg == nil {
		t.Error("waitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = SnapshotChangedEvent{}
	var _ ServiceEvent = InsightsUpdatedEvent{}
	var _ ServiceEvent = ErrorEvent{}
	var _ ServiceEvent = StatsEvent{}

	SnapshotChangedEvent{}.isServiceEvent()
	InsightsUpdatedEvent{}.isServiceEvent()
	ErrorEvent{}.isServiceEvent()
	StatsEvent{}.isServiceEvent()
}

func TestManager_Close(t *testing.T) {
	mgr := &Manager{}
	if err := mgr.Close(); err != nil {
		t.Errorf("Close on empty manager = %v", err)
	}

	full := newTestManager(t, testSnapshot)
	if err := full.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := full.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestManager_History(t *testing.T) {
	mgr := newTestManager(t, `{
  "historical_data": [
    {"date": "2024-01-10", "productivity_score": 70},
    {"date": "2024-01-08", "productivity_score": 50},
    {"date": "2024-01-09", "productivity_score": 60}
  ]
}`)

	if err := mgr.database.UpsertDailyScore(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 40); err != nil {
		t.Fatalf("UpsertDailyScore failed: %v", err)
	}

	history, err := mgr.History(0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) < 4 {
		t.Fatalf("History len = %d, want at least 4", len(history))
	}
	if history[0].Date != "2024-01-05" || history[0].ProductivityScore != 40 {
		t.Errorf("first point = %+v, want the stored 2024-01-05 score", history[0])
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].Date > history[i].Date {
			t.Errorf("history not in date order: %s before %s", history[i-1].Date, history[i].Date)
		}
	}

	limited, err := mgr.History(2)
	if err != nil {
		t.Fatalf("History(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("History(2) len = %d, want 2", len(limited))
	}
}
