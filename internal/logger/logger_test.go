package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logRecord struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Component string `json:"component"`
}

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := Logger
	Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { Logger = original })
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureJSON(t)

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
	}{
		{"Info", Info, "INFO"},
		{"Error", Error, "ERROR"},
		{"Warn", Warn, "WARN"},
		{"Debug", Debug, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.name + " message")

			var rec logRecord
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("failed to unmarshal log output: %v", err)
			}
			if rec.Level != tt.level {
				t.Errorf("level = %q, want %q", rec.Level, tt.level)
			}
			if rec.Msg != tt.name+" message" {
				t.Errorf("msg = %q", rec.Msg)
			}
		})
	}
}

func TestWith(t *testing.T) {
	buf := captureJSON(t)

	With("trend").Info("trained")

	var rec logRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to unmarshal log output: %v", err)
	}
	if rec.Component != "trend" {
		t.Errorf("component = %q, want trend", rec.Component)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupFile(t *testing.T) {
	original := Logger
	defer func() { Logger = original }()

	path := filepath.Join(t.TempDir(), "logs", "focusflow.log")
	closer, err := SetupFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("SetupFile failed: %v", err)
	}

	Info("written to file")
	Debug("filtered out")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing info line: %q", data)
	}
	if strings.Contains(string(data), "filtered out") {
		t.Errorf("debug line should be filtered at info level: %q", data)
	}
}
