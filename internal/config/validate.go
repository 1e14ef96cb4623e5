package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks a normalized config.
func Validate(cfg Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendDuckDB:
	default:
		collector.add("storage.backend", fmt.Sprintf("unsupported backend %q (expected file or duckdb)", cfg.Storage.Backend))
	}
	if cfg.Storage.Path == "" {
		collector.add("storage.path", "is required")
	}
	if cfg.HistoryEnabled() && cfg.History.Path == "" {
		collector.add("history.path", "is required when history is enabled")
	}
	if cfg.Storage.Backend == BackendFile && cfg.HistoryEnabled() && cfg.Storage.Path == cfg.History.Path {
		collector.add("storage.path", "must differ from history.path for the file backend")
	}

	switch cfg.UI.Mode {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto, live, or plain)", cfg.UI.Mode))
	}

	if !contains(logLevels, cfg.Log.Level) {
		collector.add("log.level", fmt.Sprintf("unsupported level %q (expected %s)", cfg.Log.Level, strings.Join(logLevels, ", ")))
	}
	if cfg.Log.MaxSizeMB < 0 {
		collector.add("log.max_size_mb", "must be >= 0")
	}
	if cfg.Log.MaxBackups < 0 {
		collector.add("log.max_backups", "must be >= 0")
	}
	if cfg.Log.MaxAgeDays < 0 {
		collector.add("log.max_age_days", "must be >= 0")
	}

	return collector.result()
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
