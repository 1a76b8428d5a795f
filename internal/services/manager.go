// Package services provides service orchestration for the TUI.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/j-veylop/focusflow-insights/internal/config"
	"github.com/j-veylop/focusflow-insights/internal/db"
	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services/insights"
	"github.com/j-veylop/focusflow-insights/internal/services/snapshots"
)

// ErrNoSnapshot is returned when insights are requested before any
// snapshot has been loaded.
var ErrNoSnapshot = errors.New("no snapshot loaded")

// maxStoredRuns bounds the insight_runs table.
const maxStoredRuns = 500

type (
	// SnapshotChangedEvent is emitted when the snapshot file is loaded or changes.
	SnapshotChangedEvent struct {
		Path     string
		Missing  bool
		LoadedAt time.Time
	}

	// InsightsUpdatedEvent is emitted after every generation.
	// Err carries the pipeline error when some stages failed.
	InsightsUpdatedEvent struct {
		RunID   string
		Result  *models.InsightsResult
		Err     error
		Trigger string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent summarises stored state.
	StatsEvent struct {
		RunCount       int
		HistoryDays    int
		SnapshotLoaded bool
		LastRun        time.Time
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SnapshotChangedEvent) isServiceEvent() {}
func (InsightsUpdatedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}
func (StatsEvent) isServiceEvent()           {}

// Notifier sends a desktop notification.
type Notifier func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	genMu       sync.Mutex
	cfg         *config.Config
	snapshots   *snapshots.Service
	engine      *insights.Engine
	database    *db.DB
	scheduler   *cron.Cron
	notify      Notifier
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	latest        *models.InsightsResult
	latestErr     error
	latestRunID   string
	previousLevel models.RiskLevel
	closeOnce     sync.Once
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		engine:    insights.New(insights.DefaultConfig()),
		notify:    desktopNotify,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.snapshots, err = snapshots.New(cfg.SnapshotPath, cfg.WatchDebounce)
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	if cfg.RefreshSchedule != "" {
		m.scheduler = cron.New()
		if _, err := m.scheduler.AddFunc(cfg.RefreshSchedule, func() {
			_, _, _ = m.regenerate("schedule")
		}); err != nil {
			_ = m.snapshots.Close()
			_ = m.database.Close()
			return nil, fmt.Errorf("invalid refresh schedule: %w", err)
		}
		m.scheduler.Start()
	}

	go m.routeEvents()

	return m, nil
}

// SetNotifier replaces the desktop notifier.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = n
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.snapshots.Events():
			m.handleSnapshotEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleSnapshotEvent converts snapshot events and regenerates on change.
func (m *Manager) handleSnapshotEvent(event snapshots.Event) {
	switch event.Type {
	case snapshots.EventSnapshotLoaded, snapshots.EventSnapshotChanged:
		m.broadcast(SnapshotChangedEvent{
			Path:     m.snapshots.Path(),
			LoadedAt: m.snapshots.LoadedAt(),
		})
		_, _, _ = m.regenerate("snapshot")

	case snapshots.EventSnapshotMissing:
		m.broadcast(SnapshotChangedEvent{
			Path:    m.snapshots.Path(),
			Missing: true,
		})

	case snapshots.EventError:
		m.broadcast(ErrorEvent{
			Service: "snapshots",
			Error:   event.Error,
		})
	}
}

// Regenerate runs the insights engine against the current snapshot now and
// returns the ID the run was stored under.
func (m *Manager) Regenerate() (string, *models.InsightsResult, error) {
	return m.regenerate("manual")
}

// regenerate trains on the snapshot alone. Stored daily scores are only
// merged in for display, see History.
func (m *Manager) regenerate(trigger string) (string, *models.InsightsResult, error) {
	m.genMu.Lock()
	defer m.genMu.Unlock()

	data, ok := m.snapshots.Snapshot()
	if !ok {
		m.broadcast(ErrorEvent{Service: "insights", Error: ErrNoSnapshot})
		return "", nil, ErrNoSnapshot
	}

	result, genErr := m.engine.Generate(data)
	runID := uuid.NewString()

	if err := m.record(runID, result); err != nil {
		logger.Error("Failed to record insight run", "run_id", runID, "error", err)
		m.broadcast(ErrorEvent{Service: "database", Error: err})
	}

	m.checkNotifications(result)

	m.mu.Lock()
	m.latest = result
	m.latestErr = genErr
	m.latestRunID = runID
	m.mu.Unlock()

	logger.Info("Insights generated",
		"run_id", runID,
		"trigger", trigger,
		"score", result.ProductivityScore,
		"burnout", string(result.BurnoutRisk.RiskLevel),
		"flags", len(result.ProcrastinationPatterns),
		"failed", result.Failed(),
	)

	m.broadcast(InsightsUpdatedEvent{
		RunID:   runID,
		Result:  result,
		Err:     genErr,
		Trigger: trigger,
	})

	return runID, result, genErr
}

// record stores the run and today's score.
func (m *Manager) record(runID string, result *models.InsightsResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode insights: %w", err)
	}

	if err := m.database.SaveInsightRun(models.NewInsightRun(runID, result, payload)); err != nil {
		return err
	}
	if _, err := m.database.PruneRuns(maxStoredRuns); err != nil {
		return err
	}
	return m.database.UpsertDailyScore(result.GeneratedAt, result.ProductivityScore)
}

// MergeHistory appends stored daily scores for days the snapshot does not
// already cover. Snapshot points win on conflict.
func MergeHistory(history []models.HistoricalPoint, stored []models.DailyScore) []models.HistoricalPoint {
	if len(stored) == 0 {
		return history
	}

	covered := make(map[string]bool, len(history))
	for _, h := range history {
		if t, err := models.ParseTimestamp(h.Date); err == nil {
			covered[t.Format(models.DayLayout)] = true
		}
	}

	merged := append([]models.HistoricalPoint{}, history...)
	var extra []models.HistoricalPoint
	for _, s := range stored {
		if covered[s.Day] {
			continue
		}
		extra = append(extra, models.HistoricalPoint{Date: s.Day, ProductivityScore: s.Score})
	}
	sort.SliceStable(extra, func(i, j int) bool {
		return extra[i].Date < extra[j].Date
	})

	return append(merged, extra...)
}

// History returns the daily productivity series shown next to the forecast:
// snapshot points merged with stored scores, in date order. A positive limit
// keeps only the most recent points. Unparseable dates are dropped.
func (m *Manager) History(limit int) ([]models.HistoricalPoint, error) {
	stored, err := m.database.GetDailyScores(0)
	if err != nil {
		return nil, err
	}

	var points []models.HistoricalPoint
	if data, ok := m.snapshots.Snapshot(); ok {
		points = data.HistoricalData
	}
	points = MergeHistory(points, stored)

	type dated struct {
		at    time.Time
		point models.HistoricalPoint
	}
	ordered := make([]dated, 0, len(points))
	for _, p := range points {
		t, err := models.ParseTimestamp(p.Date)
		if err != nil {
			continue
		}
		ordered = append(ordered, dated{at: t, point: p})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].at.Before(ordered[j].at)
	})

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}

	history := make([]models.HistoricalPoint, len(ordered))
	for i, d := range ordered {
		history[i] = d.point
	}
	return history, nil
}

// checkNotifications alerts when burnout risk rises to high. The first
// result only sets the baseline.
func (m *Manager) checkNotifications(result *models.InsightsResult) {
	m.mu.Lock()
	previous := m.previousLevel
	m.previousLevel = result.BurnoutRisk.RiskLevel
	notify := m.notify
	m.mu.Unlock()

	if previous == "" || !m.cfg.NotificationsEnabled || notify == nil {
		return
	}

	if result.BurnoutRisk.RiskLevel == models.RiskHigh && previous != models.RiskHigh {
		factors := make([]string, len(result.BurnoutRisk.RiskFactors))
		for i, f := range result.BurnoutRisk.RiskFactors {
			factors[i] = f.Description
		}
		title := fmt.Sprintf("Burnout risk is high (%d)", result.BurnoutRisk.RiskScore)
		body := strings.Join(factors, "\n")
		if err := notify(title, body); err != nil {
			logger.Warn("Failed to send notification", "error", err)
		}
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Latest returns the most recent result, its run ID and pipeline error.
func (m *Manager) Latest() (*models.InsightsResult, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.latestRunID, m.latestErr
}

// RecentRuns returns stored runs, newest first.
func (m *Manager) RecentRuns(limit int) ([]models.InsightRun, error) {
	return m.database.GetRecentRuns(limit)
}

// Run loads a stored run and decodes the result it produced.
func (m *Manager) Run(id string) (*models.InsightsResult, error) {
	run, err := m.database.GetInsightRun(id)
	if err != nil {
		return nil, err
	}

	var result models.InsightsResult
	if err := json.Unmarshal(run.Payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode insight run %s: %w", id, err)
	}
	return &result, nil
}

// GetStats returns aggregated statistics.
func (m *Manager) GetStats() StatsEvent {
	stats := StatsEvent{}

	if count, err := m.database.CountInsightRuns(); err == nil {
		stats.RunCount = count
	}
	if scores, err := m.database.GetDailyScores(0); err == nil {
		stats.HistoryDays = len(scores)
	}
	_, stats.SnapshotLoaded = m.snapshots.Snapshot()

	m.mu.RLock()
	if m.latest != nil {
		stats.LastRun = m.latest.GeneratedAt
	}
	m.mu.RUnlock()

	return stats
}

// NextScheduledRun returns the next cron-triggered regeneration, or the zero
// time when no schedule is configured.
func (m *Manager) NextScheduledRun() time.Time {
	if m.scheduler == nil {
		return time.Time{}
	}
	entries := m.scheduler.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		if m.scheduler != nil {
			<-m.scheduler.Stop().Done()
		}

		if m.stopChan != nil {
			close(m.stopChan)
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.snapshots != nil {
			if err := m.snapshots.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		// wait for an in-flight generation before closing the database
		m.genMu.Lock()
		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		m.genMu.Unlock()
	})

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
