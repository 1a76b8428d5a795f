package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/services"
	"github.com/j-veylop/focusflow-insights/internal/services/insights"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// RecentRunsLimit is how many stored runs the info tab lists.
	RecentRunsLimit = 10
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads all initial data.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadInsightsCmd(mgr),
		loadRunsCmd(mgr),
	)
}

// loadInsightsCmd returns a command that reads the latest result without
// regenerating.
func loadInsightsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		result, runID, err := mgr.Latest()
		return InsightsLoadedMsg{
			RunID:  runID,
			Result: result,
			Stats:  mgr.GetStats(),
			Err:    err,
		}
	}
}

// regenerateCmd returns a command that runs the insights pipeline now.
func regenerateCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		runID, result, err := mgr.Regenerate()
		return InsightsLoadedMsg{
			RunID:   runID,
			Result:  result,
			Stats:   mgr.GetStats(),
			Err:     err,
			Trigger: "manual",
		}
	}
}

// loadStatsCmd returns a command that loads statistics.
func loadStatsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return StatsLoadedMsg{Stats: mgr.GetStats()}
	}
}

// loadRunsCmd returns a command that loads the recent run history.
func loadRunsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		runs, err := mgr.RecentRuns(RecentRunsLimit)
		return RunsLoadedMsg{Runs: runs, Err: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// describeGenerationError turns a regeneration error into a toast message.
func describeGenerationError(err error) string {
	var pipeErr *insights.PipelineError
	switch {
	case errors.Is(err, services.ErrNoSnapshot):
		return "No snapshot to analyze yet"
	case errors.As(err, &pipeErr):
		stages := make([]string, len(pipeErr.Stages))
		for i, s := range pipeErr.Stages {
			stages[i] = string(s.Stage)
		}
		return fmt.Sprintf("Incomplete insights (%s failed)", strings.Join(stages, ", "))
	default:
		return err.Error()
	}
}
