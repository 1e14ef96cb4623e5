package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestNewWithoutPathIsNop verifies logging is disabled when no path is set.
func TestNewWithoutPathIsNop(t *testing.T) {
	log, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected nop core")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// TestNewWritesJSONLines verifies entries land in the log file as JSON.
func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "learner.log")
	log, closeFn, err := New(Options{Path: path, Level: "debug", MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("quiz completed", zap.String("lesson", "basics/jsx"), zap.Int("score", 80))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", line, err)
	}
	if entry["msg"] != "quiz completed" || entry["level"] != "info" || entry["lesson"] != "basics/jsx" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("expected caller field in %v", entry)
	}
}

// TestNewFiltersBelowLevel verifies the configured level gates entries.
func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learner.log")
	log, closeFn, err := New(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("dropped")
	log.Warn("kept")
	_ = closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected log contents %q", data)
	}
}

// TestParseLevelRejectsUnknown verifies invalid level names fail.
func TestParseLevelRejectsUnknown(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error")
	}
	level, err := ParseLevel(" WARN ")
	if err != nil || level != zapcore.WarnLevel {
		t.Fatalf("expected warn, got %v (%v)", level, err)
	}
}
