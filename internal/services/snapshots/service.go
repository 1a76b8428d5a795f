// Package snapshots loads the user snapshot file and watches it for changes.
package snapshots

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/snapshot"
)

// Event represents a snapshot service event.
type Event struct {
	Type  EventType
	Error error
}

// EventType defines the type of snapshot event.
type EventType int

const (
	EventSnapshotLoaded EventType = iota
	EventSnapshotChanged
	EventSnapshotMissing
	EventError
)

// errEmptySnapshot is returned for a zero-length file, which is usually a
// writer that has truncated the file but not yet written it.
var errEmptySnapshot = errors.New("snapshot file is empty")

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 100 * time.Millisecond

// Service holds the latest decoded snapshot and reloads it when the file changes.
type Service struct {
	mu            sync.RWMutex
	data          models.UserData
	loaded        bool
	loadedAt      time.Time
	filePath      string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// New creates a snapshot service for filePath and starts watching it.
// A missing file is not an error: the service starts empty and picks the
// file up once it is created.
func New(filePath string, debounce time.Duration) (*Service, error) {
	if filePath == "" {
		return nil, errors.New("snapshot path is empty")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		filePath:  filePath,
		debounce:  debounce,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	switch err := s.reload(); {
	case err == nil:
		s.sendEvent(Event{Type: EventSnapshotLoaded})
	case os.IsNotExist(err), errors.Is(err, errEmptySnapshot):
		logger.Warn("Snapshot file not found, waiting for it", "path", filePath)
		s.sendEvent(Event{Type: EventSnapshotMissing})
	default:
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	return s, nil
}

// Events returns the event channel for subscribing to snapshot changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the watched file path.
func (s *Service) Path() string {
	return s.filePath
}

// Snapshot returns the latest snapshot and whether one has been loaded.
// Slices are copied so callers may not mutate the service's state.
func (s *Service) Snapshot() (models.UserData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUserData(s.data), s.loaded
}

// LoadedAt returns when the snapshot was last read successfully.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Reload rereads the file immediately.
func (s *Service) Reload() error {
	if err := s.reload(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}
	s.sendEvent(Event{Type: EventSnapshotChanged})
	return nil
}

// reload reads and decodes the file, keeping the previous snapshot on error.
func (s *Service) reload() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errEmptySnapshot
	}

	data, err := snapshot.Decode(raw, snapshot.FormatFromPath(s.filePath))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation and atomic renames)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the snapshot after an external change.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	if err := s.reload(); err != nil {
		// a rename or truncate leaves the file briefly unusable
		if os.IsNotExist(err) || errors.Is(err, errEmptySnapshot) {
			return
		}
		logger.Warn("Failed to reload snapshot", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	s.sendEvent(Event{Type: EventSnapshotChanged})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func cloneUserData(d models.UserData) models.UserData {
	out := d
	out.ProductivityTrend = append([]float64(nil), d.ProductivityTrend...)
	out.RecentTasks = append([]models.TaskRecord(nil), d.RecentTasks...)
	out.TimeLogs = append([]models.TimeLogEntry(nil), d.TimeLogs...)
	out.HistoricalData = append([]models.HistoricalPoint(nil), d.HistoricalData...)
	return out
}
