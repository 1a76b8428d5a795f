package app

import (
	"time"

	"github.com/j-veylop/focusflow-insights/internal/models"
	"github.com/j-veylop/focusflow-insights/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// InsightsLoadedMsg carries an insights result and the stats read alongside it.
// Result is nil when no run has completed yet.
type InsightsLoadedMsg struct {
	RunID  string
	Result *models.InsightsResult
	Stats  services.StatsEvent
	Err    error
	// Trigger names what started the run: "manual", "snapshot" or
	// "schedule". Empty for a plain read of the latest result.
	Trigger string
}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats services.StatsEvent
}

// RunsLoadedMsg contains the most recent stored insight runs.
type RunsLoadedMsg struct {
	Runs []models.InsightRun
	Err  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "insights", "stats", "runs"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// QuitMsg requests the application to quit.
type QuitMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
