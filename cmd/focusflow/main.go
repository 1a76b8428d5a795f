// Package main is the entry point for FocusFlow Insights.
// It initializes configuration, services, and runs the Bubble Tea program,
// or generates insights once and prints them with --once.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/focusflow-insights/internal/app"
	"github.com/j-veylop/focusflow-insights/internal/config"
	"github.com/j-veylop/focusflow-insights/internal/logger"
	"github.com/j-veylop/focusflow-insights/internal/services"
	"github.com/j-veylop/focusflow-insights/internal/services/insights"
	"github.com/j-veylop/focusflow-insights/internal/snapshot"
	"github.com/j-veylop/focusflow-insights/internal/ui/tabs/forecast"
	"github.com/j-veylop/focusflow-insights/internal/ui/tabs/info"
	"github.com/j-veylop/focusflow-insights/internal/ui/tabs/overview"
	"github.com/j-veylop/focusflow-insights/internal/ui/tabs/tasks"
	"github.com/j-veylop/focusflow-insights/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		path := ""
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		if err := once(path, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// once generates insights for a single snapshot and writes them as JSON.
// An empty path means the configured SNAPSHOT_PATH. Stage failures are
// logged and still produce output; only an unreadable snapshot is an error.
func once(path string, w io.Writer) error {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Setup(os.Stderr, logger.ParseLevel(cfg.LogLevel))
		path = cfg.SnapshotPath
	}

	data, err := snapshot.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	result, err := insights.New(insights.DefaultConfig()).Generate(data)
	var pipeErr *insights.PipelineError
	if errors.As(err, &pipeErr) {
		logger.Warn("Some insights could not be computed", "error", err)
	} else if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. The TUI owns the terminal, so logs go to a file
	logFile, err := logger.SetupFile(cfg.LogPath, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger.Info("Starting", "version", version.GetVersion(), "snapshot", cfg.SnapshotPath)

	// 3. Initialize the service manager
	// This starts the snapshot watcher and the regeneration schedule
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 4. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 5. Initialize tabs with shared state and services
	state := model.GetState()
	tabs := []app.Tab{
		overview.New(state),              // Tab 0: score, burnout, hours
		forecast.New(state, svcManager),  // Tab 1: history and forecast
		tasks.New(state),                 // Tab 2: procrastination flags
		info.New(state, cfg, svcManager), // Tab 3: configuration and runs
	}
	model.SetTabs(tabs)

	// 6. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 7. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`FocusFlow Insights - productivity analytics for your task, habit and time data

Usage:
  focusflow [flags]

Flags:
  -h, --help        Show this help message
  -v, --version     Show version information
  --once [path]     Analyze a snapshot once, print the insights as JSON and exit
                    (defaults to SNAPSHOT_PATH)

Keyboard Shortcuts:
  1-4             Switch between tabs (Overview, Forecast, Tasks, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll and navigate lists
  r               Regenerate insights
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  SNAPSHOT_PATH           Snapshot file to analyze (.json, .yaml or .yml)
  DATABASE_PATH           SQLite database path
  REFRESH_SCHEDULE        Cron spec for scheduled regeneration (default: @every 30m)
  WATCH_DEBOUNCE          Delay before reacting to snapshot changes (default: 250ms)
  NOTIFICATIONS_ENABLED   Desktop alert when burnout risk turns high (default: true)
  LOG_LEVEL               debug, info, warn or error (default: info)
  LOG_FILE                Log file used while the TUI is running

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/focusflow/.env
  - ~/.focusflow/.env
  - Parent directory`)
}
