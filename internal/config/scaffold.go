package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const scaffoldConfig = `version: 1

storage:
  # file keeps the profile in a JSON document; duckdb keeps it in a kv table.
  backend: file
  path: .learner/profile.json

history:
  enabled: true
  path: .learner/learner.duckdb

catalog:
  # Leave empty to use the built-in lessons.
  dir: ""

ui:
  mode: auto
  no_color: false

log:
  path: .learner/logs/learner.log
  level: info
  max_size_mb: 10
  max_backups: 3
  max_age_days: 28
`

// Scaffold writes a starter config to path. An existing file is left alone.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(scaffoldConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
