package app

import (
	"errors"
	"testing"
	"time"

	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetResult() != nil {
		t.Error("Result should be nil before the first run")
	}
	if s.Loading.Initial != true {
		t.Error("Initial loading should be true")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("insights", true)
	if !s.Loading.Insights {
		t.Error("Insights loading should be true")
	}
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("insights", false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	resources := s.GetLoadingResources()
	if len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading("stats", true)
	resources = s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != "stats" {
		t.Errorf("GetLoadingResources should contain stats, got %v", resources)
	}
}

func TestState_Result(t *testing.T) {
	s := NewState()

	first := models.NewInsightsResult(time.Now())
	first.ProductivityScore = 73
	s.SetResult("run-1", first, nil)

	if s.GetResult() != first || s.GetRunID() != "run-1" {
		t.Fatalf("result = %v, run = %q", s.GetResult(), s.GetRunID())
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}

	// a failed regeneration keeps the previous result
	failure := errors.New("no snapshot")
	s.SetResult("", nil, failure)
	if s.GetResult() != first || s.GetRunID() != "run-1" {
		t.Error("nil result should not replace the previous one")
	}
	if !errors.Is(s.GetResultError(), failure) {
		t.Errorf("GetResultError() = %v", s.GetResultError())
	}
}

func TestState_SnapshotStatus(t *testing.T) {
	s := NewState()
	s.SetSnapshotStatus("/tmp/snapshot.json", true)
	if !s.IsSnapshotMissing() || s.SnapshotPath != "/tmp/snapshot.json" {
		t.Error("snapshot status not recorded")
	}
	s.SetSnapshotStatus("/tmp/snapshot.json", false)
	if s.IsSnapshotMissing() {
		t.Error("snapshot should no longer be missing")
	}
}

func TestState_Runs(t *testing.T) {
	s := NewState()
	s.SetRuns([]models.InsightRun{{ID: "a"}, {ID: "b"}})

	runs := s.GetRuns()
	if len(runs) != 2 {
		t.Fatalf("GetRuns len = %d, want 2", len(runs))
	}
	runs[0].ID = "mutated"
	if s.GetRuns()[0].ID != "a" {
		t.Error("GetRuns should return a copy")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState()
	for range 15 {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}
	if got := len(s.GetNotifications()); got != 10 {
		t.Errorf("GetNotifications len = %d, want 10", got)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should empty the list")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState()
	s.SetStats(services.StatsEvent{RunCount: 10, HistoryDays: 4})

	got := s.GetStats()
	if got == nil {
		t.Fatal("GetStats returned nil")
	}
	if got.RunCount != 10 || got.HistoryDays != 4 {
		t.Errorf("GetStats() = %+v", got)
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any result")
	}

	s.SetResult("run", models.NewInsightsResult(time.Now()), nil)
	time.Sleep(time.Millisecond)
	if s.TimeSinceUpdate() == 0 {
		t.Error("TimeSinceUpdate should be > 0")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
