package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const initialSnapshot = `{"tasks_completed": 3, "total_tasks": 6}`

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(initialSnapshot), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	svc, err := New(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})

	return svc, path
}

// waitFor drains events until one of type want arrives.
func waitFor(t *testing.T, svc *Service, want EventType) Event {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == want {
				return event
			}
		case <-timeout:
			t.Fatalf("timeout waiting for event %v", want)
			return Event{}
		}
	}
}

func TestNew_LoadsSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	waitFor(t, svc, EventSnapshotLoaded)

	data, ok := svc.Snapshot()
	if !ok {
		t.Fatal("snapshot should be loaded")
	}
	if data.TasksCompleted != 3 || data.TotalTasks != 6 {
		t.Errorf("counters = %d/%d, want 3/6", data.TasksCompleted, data.TotalTasks)
	}
	if data.HabitCompletionRate != 1.0 {
		t.Errorf("HabitCompletionRate = %v, want default 1.0", data.HabitCompletionRate)
	}
	if svc.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set")
	}
}

func TestNew_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later", "snapshot.yaml")

	svc, err := New(path, 0)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	waitFor(t, svc, EventSnapshotMissing)
	if _, ok := svc.Snapshot(); ok {
		t.Error("snapshot should not be loaded yet")
	}

	if err := os.WriteFile(path, []byte("total_tasks: 9\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	waitFor(t, svc, EventSnapshotChanged)
	data, ok := svc.Snapshot()
	if !ok || data.TotalTasks != 9 {
		t.Errorf("snapshot = %+v, ok=%v, want TotalTasks 9", data.DailyCounters, ok)
	}
}

func TestNew_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := New(path, 0); err == nil {
		t.Error("New() should fail on an unreadable snapshot")
	}
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := New("", 0); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestWatchFileChange(t *testing.T) {
	svc, path := newTestService(t)
	waitFor(t, svc, EventSnapshotLoaded)

	if err := os.WriteFile(path, []byte(`{"tasks_completed": 7, "total_tasks": 8}`), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	waitFor(t, svc, EventSnapshotChanged)

	data, _ := svc.Snapshot()
	if data.TasksCompleted != 7 {
		t.Errorf("TasksCompleted = %d, want 7 after reload", data.TasksCompleted)
	}
}

func TestHandleFileChange_KeepsPreviousOnError(t *testing.T) {
	svc, path := newTestService(t)
	waitFor(t, svc, EventSnapshotLoaded)

	if err := os.WriteFile(path, []byte("{invalid"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	event := waitFor(t, svc, EventError)
	if event.Error == nil {
		t.Error("error event should carry the error")
	}

	data, ok := svc.Snapshot()
	if !ok || data.TasksCompleted != 3 {
		t.Errorf("previous snapshot should be kept, got %+v", data.DailyCounters)
	}
}

func TestReload(t *testing.T) {
	svc, path := newTestService(t)
	waitFor(t, svc, EventSnapshotLoaded)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"total_tasks": 42}`), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	data, _ := svc.Snapshot()
	if data.TotalTasks != 42 {
		t.Errorf("TotalTasks = %d, want 42", data.TotalTasks)
	}
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	content := `{"historical_data": [{"date": "2024-01-01", "productivity_score": 70}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	svc, err := New(path, 0)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	first, _ := svc.Snapshot()
	first.HistoricalData[0].ProductivityScore = 1

	second, _ := svc.Snapshot()
	if second.HistoricalData[0].ProductivityScore != 70 {
		t.Error("Snapshot() should not expose internal slices")
	}
}

func TestSendEvent_Full(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 110; i++ {
		svc.sendEvent(Event{Type: EventSnapshotChanged})
	}

	if len(svc.Events()) != 100 {
		t.Errorf("expected 100 events, got %d", len(svc.Events()))
	}
}

func TestClose_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
